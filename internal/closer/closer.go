// Package closer releases process-wide resources such as opened inputs and profilers at exit.
package closer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

type entry struct {
	name string
	f    func(context.Context) error
}

var (
	closerLocker sync.Mutex
	closers      []entry
)

// Add registers f to be run by Close. name identifies f in the returned error.
func Add(name string, f func(context.Context) error) {
	closerLocker.Lock()
	defer closerLocker.Unlock()
	closers = append(closers, entry{name: name, f: f})
}

// Close runs every registered function concurrently and forgets them.
// It returns the first error.
func Close(ctx context.Context) error {
	closerLocker.Lock()
	entries := closers
	closers = nil
	closerLocker.Unlock()

	eg, ctx := errgroup.WithContext(ctx)
	for _, e := range entries {
		eg.Go(func() error {
			if err := e.f(ctx); err != nil {
				return fmt.Errorf("close %s: %w", e.name, err)
			}
			return nil
		})
	}

	return eg.Wait()
}
