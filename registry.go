package smallptr

import (
	"sync"

	"go.uber.org/zap"
)

var layouts = &registry{layouts: make(map[config]*Layout)}

// registry memoises layouts so every configuration is computed once and
// identical configurations share one *Layout.
type registry struct {
	mu      sync.RWMutex
	layouts map[config]*Layout
}

func (r *registry) get(cfg config) (*Layout, error) {
	r.mu.RLock()
	if l, ok := r.layouts[cfg]; ok {
		r.mu.RUnlock()
		return l, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check
	if l, ok := r.layouts[cfg]; ok {
		return l, nil
	}

	l, err := newLayout(cfg)
	if err != nil {
		Logger().Debug("layout rejected", zap.Error(err))
		return nil, err
	}
	r.layouts[cfg] = l
	Logger().Debug("layout computed",
		zap.Stringer("kind", l.kind),
		zap.Int("bytes", l.numBytes),
		zap.Int("ptr_bits", l.ptrBits),
		zap.Int("align_bits", l.alignBits),
		zap.Int("tag_bits", l.tagBits),
		zap.Bool("packed", l.pack),
		zap.Stringer("rep", l.rep),
	)
	return l, nil
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.layouts)
}
