package ecs

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentKind identifies a component type at runtime.
type ComponentKind uint32

var nextComponentKind atomic.Uint32

// ComponentHandle is the typed registration token for a component type.
// Component packages declare one package-level handle per component.
type ComponentHandle[T any] struct {
	kind ComponentKind
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind(nextComponentKind.Add(1))}
}

func (h ComponentHandle[T]) Kind() ComponentKind {
	return h.kind
}

func (h ComponentHandle[T]) Valid() bool {
	return h.kind != 0
}
