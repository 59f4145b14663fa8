// Package timeline gives random access to sketch frames.
//
// A sketch is a pure function of its configuration and frame number, so any
// frame can be rebuilt by constructing a fresh sketch that starts there.
// Rebuilt frames are kept in an LRU cache.
package timeline

import (
	"math/rand"

	lru "github.com/hashicorp/golang-lru"

	"github.com/echoflaresat/ribbons/config"
	"github.com/echoflaresat/ribbons/sketch"
)

// Factory builds a sketch positioned at frame start.
type Factory func(start uint64) (*sketch.Sketch, error)

// FromConfig returns a Factory that reseeds its random source on every
// call, so each sketch gets the same ribbon parameters.
func FromConfig(cfg config.Config, opts ...sketch.Option) Factory {
	return func(start uint64) (*sketch.Sketch, error) {
		src := rand.New(rand.NewSource(cfg.Seed))
		return sketch.New(cfg, src, start, opts...)
	}
}

type Timeline struct {
	factory Factory
	cache   *lru.Cache // frame number -> sketch.Frame
}

func New(factory Factory, size int) (*Timeline, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Timeline{factory: factory, cache: cache}, nil
}

// At returns the buffers of every ribbon at frame. The returned meshes are
// shared with the cache and must not be modified.
func (tl *Timeline) At(frame uint64) (sketch.Frame, error) {
	if val, ok := tl.cache.Get(frame); ok {
		return val.(sketch.Frame), nil
	}

	s, err := tl.factory(frame)
	if err != nil {
		return sketch.Frame{}, err
	}
	f := s.Capture()
	tl.cache.Add(frame, f)
	return f, nil
}

// Cached reports whether frame is held without rebuilding it.
func (tl *Timeline) Cached(frame uint64) bool {
	return tl.cache.Contains(frame)
}

func (tl *Timeline) Len() int {
	return tl.cache.Len()
}
