package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight deduplicates concurrent loads of the same key, typically a
// sheet range, and hands every caller the typed result.
type SingleFlight[V any] struct {
	group singleflight.Group
}

// Do runs fn once per key among concurrent callers. shared reports whether the
// result was handed to more than one caller.
func (g *SingleFlight[V]) Do(key string, fn func() (V, error)) (v V, shared bool, err error) {
	out, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	if out != nil {
		v = out.(V)
	}
	return v, shared, err
}

