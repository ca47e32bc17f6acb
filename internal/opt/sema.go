package opt

import (
	_ "unsafe" // for linkname
)

// Sema is a zero-allocation binary wakeup channel backed by the runtime
// semaphore used by sync.Mutex and sync.WaitGroup.
//
// Acquire parks the calling goroutine until a matching Release. A Release
// that happens before the Acquire is remembered, so the pair never loses a
// wakeup.
type Sema uint32

func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

// Release wakes one parked Acquire. With handoff set, the woken goroutine
// runs immediately on the releasing P.
func (s *Sema) Release(handoff bool) {
	runtime_semrelease((*uint32)(s), handoff, 0)
}

//go:linkname runtime_semacquire sync.runtime_Semacquire
func runtime_semacquire(s *uint32)

//go:linkname runtime_semrelease sync.runtime_Semrelease
func runtime_semrelease(s *uint32, handoff bool, skipframes int)
