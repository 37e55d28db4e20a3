package ecs

// World owns entities, component stores, and the tick event queue.
type World struct {
	entities entityStore
	stores   map[ComponentKind]*SparseSet
	events   EventQueue
	tick     uint64
}

func NewWorld() *World {
	return &World{stores: make(map[ComponentKind]*SparseSet)}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and drops all of its components. Stale
// handles to the destroyed entity fail IsAlive from now on.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return true
}

func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Query returns all live entities that carry every given component kind.
func (w *World) Query(kinds ...ComponentKind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	smallest := w.stores[kinds[0]]
	for _, k := range kinds[1:] {
		s := w.stores[k]
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	if smallest.Len() == 0 {
		return nil
	}

	out := make([]Entity, 0, smallest.Len())
outer:
	for _, id := range smallest.denseIDs {
		for _, k := range kinds {
			if !w.stores[k].Has(id) {
				continue outer
			}
		}
		if e, ok := w.entities.resolve(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns any single entity carrying the component kind.
func (w *World) First(kind ComponentKind) (Entity, bool) {
	s := w.stores[kind]
	if s.Len() == 0 {
		return None, false
	}
	return w.entities.resolve(s.denseIDs[0])
}

func (w *World) Events() *EventQueue {
	return &w.events
}

// Tick is the current simulation tick counter, advanced by the game loop.
func (w *World) Tick() uint64 {
	return w.tick
}

func (w *World) AdvanceTick() {
	w.tick++
}

func (w *World) store(kind ComponentKind) *SparseSet {
	s, ok := w.stores[kind]
	if !ok {
		s = &SparseSet{}
		w.stores[kind] = s
	}
	return s
}
