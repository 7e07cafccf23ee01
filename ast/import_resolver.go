package ast

import (
	"sync"

	"github.com/juju/errors"
)

// ImportResolver is the asynchronous, callback-per-file contract spec.md
// §5 describes for resolving an Import's path to its parsed Script. A
// single call may complete in-line (invoking cb before Resolve returns)
// or later, from another goroutine.
type ImportResolver interface {
	Resolve(path string, cb func(*Script, error))
}

// DrainImports resolves every Import reachable from script — transitively,
// since resolving one import may itself introduce new ones — using
// resolver, blocking until the queue empties and no callbacks remain
// outstanding (spec.md §5's completion rule). It returns the first error
// encountered, if any; Import nodes that did resolve before the error
// keep their Resolved Script.
func DrainImports(script *Script, resolver ImportResolver) error {
	var mu sync.Mutex
	cond := sync.NewCond(&mu)

	pending := 0
	var firstErr error
	seen := map[string]bool{}
	queue := []*Script{script}

	mu.Lock()
	for len(queue) > 0 || pending > 0 {
		if len(queue) == 0 {
			cond.Wait()
			continue
		}

		s := queue[0]
		queue = queue[1:]

		for _, imp := range s.Imports {
			path := pathOf(imp)
			if path == "" || seen[path] {
				continue
			}
			seen[path] = true
			pending++
			p, im := path, imp

			// Resolve is called with the lock released, so a resolver
			// that invokes cb synchronously (before Resolve returns)
			// doesn't deadlock against this goroutine's own lock.
			mu.Unlock()
			resolver.Resolve(p, func(resolved *Script, err error) {
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = errors.Annotatef(err, "resolving import %q", p)
					}
				} else {
					im.Resolved = resolved
					if resolved != nil {
						queue = append(queue, resolved)
					}
				}
				pending--
				cond.Broadcast()
			})
			mu.Lock()
		}
	}
	err := firstErr
	mu.Unlock()
	return err
}

func pathOf(imp *Import) string {
	if imp.Path == nil {
		return ""
	}
	var b []byte
	for _, p := range imp.Path.Parts {
		if raw, ok := p.(*RawPart); ok {
			b = append(b, raw.Text...)
		}
	}
	return string(b)
}
