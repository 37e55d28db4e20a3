package ecs

// Add attaches (or replaces) a component on a live entity.
func Add[T any](w *World, e Entity, h ComponentHandle[T], value T) error {
	if !h.Valid() {
		return ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return ErrEntityNotAlive
	}
	w.store(h.Kind()).Set(e.id(), &value)
	return nil
}

// Get returns a pointer to the entity's component so callers can mutate it
// in place.
func Get[T any](w *World, e Entity, h ComponentHandle[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	v := w.store(h.Kind()).Get(e.id())
	if v == nil {
		return nil, false
	}
	ptr, ok := v.(*T)
	return ptr, ok
}

func Has[T any](w *World, e Entity, h ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(h.Kind()).Has(e.id())
}

func Remove[T any](w *World, e Entity, h ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(h.Kind()).Remove(e.id())
}

// ForEach visits every live entity carrying the component.
func ForEach[T any](w *World, h ComponentHandle[T], fn func(Entity, *T)) {
	s := w.store(h.Kind())
	ids := append([]entityID(nil), s.denseIDs...)
	for _, id := range ids {
		e, ok := w.entities.resolve(id)
		if !ok {
			continue
		}
		v, ok := s.Get(id).(*T)
		if !ok {
			continue
		}
		fn(e, v)
	}
}
