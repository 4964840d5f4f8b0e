package render

import "fmt"

// ColorCache maps RGBA values to lazily created backend drawing contexts.
// One cache belongs to exactly one Bar; entries are append-only and live
// until the cache is closed with the Bar.
type ColorCache struct {
	backend  Backend
	contexts map[RGBA]ContextID
}

// NewColorCache returns an empty cache backed by the given provider.
func NewColorCache(backend Backend) *ColorCache {
	return &ColorCache{
		backend:  backend,
		contexts: make(map[RGBA]ContextID),
	}
}

// Ensure creates and memoizes a context for color if one does not exist yet.
// The layout engine calls this for every color a draw pass will use before
// issuing any fill.
func (c *ColorCache) Ensure(color RGBA) error {
	if _, ok := c.contexts[color]; ok {
		return nil
	}
	ctx, err := c.backend.CreateContext(color.Pixel())
	if err != nil {
		return fmt.Errorf("create context for %08x: %w", color.Pixel(), err)
	}
	c.contexts[color] = ctx
	return nil
}

// MustGet returns the cached context for color. Requesting a color that was
// never ensured is a programming error in the caller and panics.
func (c *ColorCache) MustGet(color RGBA) ContextID {
	ctx, ok := c.contexts[color]
	if !ok {
		panic(fmt.Sprintf("render: color %08x not cached", color.Pixel()))
	}
	return ctx
}

// Len reports the number of cached contexts.
func (c *ColorCache) Len() int { return len(c.contexts) }

// Close frees every cached context.
func (c *ColorCache) Close() {
	for color, ctx := range c.contexts {
		c.backend.FreeContext(ctx)
		delete(c.contexts, color)
	}
}
