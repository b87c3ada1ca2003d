package tui

import (
	"strings"
	"sync"
)

// views are redrawn on every key press; builders that grew past this are
// dropped instead of pooled
const maxPooledViewBytes = 64 * 1024

var viewBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

func acquireViewBuilder() *strings.Builder {
	b := viewBuilderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func releaseViewBuilder(b *strings.Builder) {
	if b == nil || b.Cap() > maxPooledViewBytes {
		return
	}
	b.Reset()
	viewBuilderPool.Put(b)
}

// finishView returns the rendered view and hands b back to the pool
func finishView(b *strings.Builder) string {
	if b == nil {
		return ""
	}
	s := strings.Clone(b.String())
	releaseViewBuilder(b)
	return s
}
