// Package dsl provides the generic builder that typed SEO builders compose.
//
// A Builder accumulates flat key/value pairs and lets callers nest other
// builders under a key. A nested builder is built as soon as its block ends and
// its failure is recorded on the parent. Build returns a deep, detached copy of
// the accumulated data.
package dsl

import (
	"context"
	"fmt"
	"slices"

	"github.com/alessiobussolari/better-seo/engine/attrmap"
	"github.com/alessiobussolari/better-seo/engine/core"
	"github.com/alessiobussolari/better-seo/pkg/logger"
)

// Node is implemented by every builder that wraps a *Builder.
type Node interface {
	Base() *Builder
}

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithValidator installs the rule set Build runs after recorded errors. The validator should report every violation at once.
func WithValidator(fn func(ctx context.Context) error) Option {
	return func(b *Builder) {
		b.validator = fn
	}
}

// Builder is a single-owner accumulation buffer. It is not safe for concurrent
// use. Readers accept a nil receiver.
type Builder struct {
	data      map[string]any
	errors    []error
	validator func(context.Context) error
}

// New creates an empty builder.
func New(opts ...Option) *Builder {
	b := &Builder{data: make(map[string]any)}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Base returns b so a plain Builder satisfies Node.
func (b *Builder) Base() *Builder {
	return b
}

// Set stores value under key and returns b. An *attrmap.Map is stored as its
// plain form.
func (b *Builder) Set(key string, value any) *Builder {
	if m, ok := value.(*attrmap.Map); ok {
		value = m.ToMap()
	}
	b.data[key] = value
	return b
}

// Get returns the value stored under key, or nil when it was never set.
func (b *Builder) Get(key string) any {
	v, _ := b.Lookup(key)
	return v
}

// Lookup returns the value stored under key and whether it was set.
func (b *Builder) Lookup(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.data[key]
	return v, ok
}

// Has reports whether key was set.
func (b *Builder) Has(key string) bool {
	_, ok := b.Lookup(key)
	return ok
}

// Evaluate runs block against b. A nil block is a no-op.
func (b *Builder) Evaluate(block func(*Builder)) *Builder {
	if block != nil {
		block(b)
	}
	return b
}

// Nested builds a fresh Builder with block and stores its detached result under
// key.
func (b *Builder) Nested(key string, block func(*Builder)) *Builder {
	Nest(b, key, func() *Builder { return New() }, block)
	return b
}

// Nest spawns a child builder, runs block on it and builds it. The result is
// stored under key in parent. When the child fails, the error is recorded on
// parent and key is left untouched, so the failure outlives any later write to
// key.
func Nest[T Node](parent Node, key string, spawn func() T, block func(T)) {
	child := spawn()
	if block != nil {
		block(child)
	}
	p := parent.Base()
	c := child.Base()
	if err := c.Validate(context.Background()); err != nil {
		p.Fail(err)
		return
	}
	p.Set(key, c.Snapshot())
}

// Merge shallow-merges other into the buffer; later keys win. other may be a
// map, an *attrmap.Map or any Node. Anything else is a *core.DSLError.
func (b *Builder) Merge(other any) error {
	var data map[string]any
	switch src := other.(type) {
	case Node:
		base := src.Base()
		if base == nil {
			return core.CannotMerge(other)
		}
		data = base.Snapshot()
	case *attrmap.Map:
		data = src.ToMap()
	default:
		plain, ok := attrmap.ToStringMap(other)
		if !ok {
			return core.CannotMerge(other)
		}
		data = plain
	}
	for k, v := range data {
		b.Set(k, v)
	}
	return nil
}

// Fail records err so the next Build reports it.
func (b *Builder) Fail(err error) *Builder {
	if err != nil {
		b.errors = append(b.errors, err)
	}
	return b
}

// Snapshot returns a detached copy of the buffer without validating it. A nil
// b yields an empty map.
func (b *Builder) Snapshot() map[string]any {
	if b == nil {
		return map[string]any{}
	}
	return core.CopyTree(b.data)
}

// Validate reports recorded errors, including failed nested builders, and the
// installed validator's result. A single failure is returned unchanged; several
// are combined into one *core.ValidationError.
func (b *Builder) Validate(ctx context.Context) error {
	errs := slices.Clone(b.errors)
	if b.validator != nil {
		errs = append(errs, b.validator(ctx))
	}
	errs = slices.DeleteFunc(errs, func(err error) bool { return err == nil })
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return core.NewValidationError(errs...)
	}
}

// Build validates the buffer and returns a deep copy of it. Mutating the result
// never affects the builder and vice versa.
func (b *Builder) Build(ctx context.Context) (map[string]any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}
	log := logger.FromContext(ctx)
	if err := b.Validate(ctx); err != nil {
		log.Debug("builder validation failed", "keys", len(b.data), "error", err)
		return nil, err
	}
	out, err := core.DeepCopy(b.data)
	if err != nil {
		return nil, fmt.Errorf("failed to copy builder data: %w", err)
	}
	log.Debug("builder finalized", "keys", len(out))
	return out, nil
}
