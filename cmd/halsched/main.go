// Command halsched reports the scheduling ranges of this host and checks
// that hal threads start with the requested class and priority.
//
// Usage:
//
//	halsched [--policy fifo] [--priority N] [--threads N] [--verbose]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/hal"
)

type report struct {
	tid      int
	policy   hal.Policy
	priority int
	err      error
	done     *hal.Semaphore
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "halsched:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("halsched", pflag.ContinueOnError)
	policyName := fs.StringP("policy", "p", hal.PolicyFIFO.String(), "scheduling policy: fifo, rr, other, inherit")
	priority := fs.IntP("priority", "r", 0, "static priority (0 selects the policy default)")
	threads := fs.IntP("threads", "n", 1, "number of probe threads")
	verbose := fs.BoolP("verbose", "v", false, "log thread lifecycle")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *threads < 1 {
		return fmt.Errorf("--threads must be at least 1, got %d", *threads)
	}

	policy, err := hal.ParsePolicy(*policyName)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if *verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer func() { _ = logger.Sync() }()

	for _, p := range []hal.Policy{hal.PolicyOther, hal.PolicyFIFO, hal.PolicyRR} {
		lo, hi, err := hal.PriorityRange(p)
		if err != nil {
			fmt.Printf("%-6s unavailable: %v\n", p, err)
			continue
		}
		fmt.Printf("%-6s priority %d..%d\n", p, lo, hi)
	}

	options := []func(*hal.ThreadConfig){hal.WithPolicy(policy), hal.WithLogger(logger)}
	if *priority != 0 {
		options = append(options, hal.WithPriority(*priority))
	}

	done, err := hal.NewSemaphore(0)
	if err != nil {
		return err
	}
	defer done.Destroy()

	reports := make([]*report, *threads)
	var g errgroup.Group
	for i := range reports {
		r := &report{done: done}
		reports[i] = r
		opts := append(options[:len(options):len(options)], hal.WithName(fmt.Sprintf("probe-%d", i)))
		g.Go(func() error {
			return hal.Go(probe, r, opts...)
		})
	}
	if err := g.Wait(); err != nil {
		if hal.IsPermission(err) {
			return errors.Join(err, errors.New("real-time scheduling needs CAP_SYS_NICE or RLIMIT_RTPRIO"))
		}
		return err
	}
	for range reports {
		done.Wait()
	}

	for i, r := range reports {
		if r.err != nil {
			fmt.Printf("probe-%d tid %d: %v\n", i, r.tid, r.err)
			continue
		}
		fmt.Printf("probe-%d tid %d: %s/%d\n", i, r.tid, r.policy, r.priority)
	}
	return nil
}

func probe(r *report) {
	r.tid = hal.CurrentTID()
	r.policy, r.priority, r.err = hal.CurrentSched()
	r.done.Post()
}
