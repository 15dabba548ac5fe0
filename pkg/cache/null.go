package cache

import "context"

// Null is a cache that never stores anything.
type Null struct{}

// NewNull returns a cache that always misses.
func NewNull() Null { return Null{} }

// Get always returns a cache miss.
func (Null) Get(context.Context, Kind, string, any) (bool, error) { return false, nil }

// Put does nothing.
func (Null) Put(context.Context, Kind, string, any) error { return nil }

// Invalidate does nothing.
func (Null) Invalidate(context.Context, Kind, string) error { return nil }

// Close does nothing.
func (Null) Close() error { return nil }

var _ Cache = Null{}
