package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. Order matters: every state
// mutation must land before the physics step system runs, and transform
// readers run after it.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	w.AdvanceTick()
}
