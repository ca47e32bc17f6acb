package hal

import (
	"sort"
	"sync/atomic"

	"github.com/llxisdsh/pb"
)

// ThreadInfo describes a live thread.
type ThreadInfo struct {
	ID       uint64
	TID      int
	Name     string
	Policy   Policy
	Priority int
	Auto     bool
}

var (
	registry pb.HashTrieMap[uint64, ThreadInfo]
	nextID   atomic.Uint64
)

func register(info ThreadInfo) {
	registry.Store(info.ID, info)
}

func unregister(id uint64) {
	registry.Delete(id)
}

// Live returns the number of threads that have been started and whose
// control block has not been released yet. Joinable threads count until
// Destroy; autodestroy threads count until their function returns.
func Live() int {
	return registry.Size()
}

// LiveThreads returns a snapshot of the live threads ordered by ID.
func LiveThreads() []ThreadInfo {
	out := make([]ThreadInfo, 0, registry.Size())
	registry.Range(func(_ uint64, v ThreadInfo) bool {
		out = append(out, v)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
