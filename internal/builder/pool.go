package builder

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/altuslabsxyz/objbuild/internal/toolchain"
)

// compileFunc compiles one unit.
type compileFunc func(ctx context.Context, unit string) (toolchain.Artifacts, error)

// task is one dispatched compile. done is closed once res and err are set.
type task struct {
	unit string
	done chan struct{}
	res  toolchain.Artifacts
	err  error
}

// dispatch starts compile tasks on a pool of at most jobs workers, in unit
// order, and returns immediately. With jobs == 1 the units compile one after
// another in the order given.
//
// After the first failure no further task is started; those not yet started
// complete with the failure's cause. Tasks already running are not
// interrupted and finish in the background.
func dispatch(ctx context.Context, jobs int, units []string, compile compileFunc) []*task {
	tasks := make([]*task, len(units))
	for i, u := range units {
		tasks[i] = &task{unit: u, done: make(chan struct{})}
	}

	g, stop := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	go func() {
		for _, t := range tasks {
			t := t
			g.Go(func() error {
				defer close(t.done)
				if stop.Err() != nil {
					t.err = context.Cause(stop)
					return t.err
				}
				t.res, t.err = compile(ctx, t.unit)
				return t.err
			})
		}
		_ = g.Wait()
	}()
	return tasks
}

// collect waits for each task in submission order and returns the object
// list for the link step. The shared artifact appears once, ahead of the
// object of the first task that reported it. Collection stops at the first
// failed task.
func collect(tasks []*task) (objects []string, shared string, err error) {
	seen := make(map[string]bool)
	for _, t := range tasks {
		<-t.done
		if t.err != nil {
			return nil, "", t.err
		}
		if s := t.res.Shared; s != "" && !seen[s] {
			seen[s] = true
			if shared == "" {
				shared = s
			}
			objects = append(objects, s)
		}
		objects = append(objects, t.res.Object)
	}
	return objects, shared, nil
}
