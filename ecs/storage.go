package ecs

import "fmt"

// Entity is a generational handle to a world slot: the low half is the slot
// index, the high half the generation the slot had when the handle was made.
// A handle goes stale the moment its slot is recycled.
type Entity uint64

// None is the null handle. It is never alive, and components stored as weak
// references (Beetle.AttachedBall) reset to it.
const None Entity = 0

type entityID uint32
type generation uint32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(gen)<<32 | Entity(id)
}

func (e Entity) id() entityID {
	return entityID(e)
}

func (e Entity) generation() generation {
	return generation(e >> 32)
}

func (e Entity) Valid() bool {
	return e != None
}

func (e Entity) String() string {
	return fmt.Sprintf("%d.%d", e.id(), e.generation())
}

// entityStore tracks entity generations and recycles freed ids.
type entityStore struct {
	gen  []generation
	free []entityID
}

func (s *entityStore) create() Entity {
	if len(s.free) > 0 {
		id := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		return makeEntity(id, s.gen[id-1])
	}
	s.gen = append(s.gen, 0)
	return makeEntity(entityID(len(s.gen)), 0)
}

func (s *entityStore) destroy(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	if s.gen[id-1] != e.generation() {
		return false
	}
	s.gen[id-1]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == e.generation()
}

// resolve returns the live entity for an id, if any.
func (s *entityStore) resolve(id entityID) (Entity, bool) {
	if id == 0 || int(id) > len(s.gen) {
		return None, false
	}
	return makeEntity(id, s.gen[id-1]), true
}
