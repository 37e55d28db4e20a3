package system

import (
	"github.com/milk9111/beetleball/ecs"
	"github.com/milk9111/beetleball/ecs/component"
)

// Stat names accepted by Upgrade.
const (
	StatTopSpeed     = "top_speed"
	StatAcceleration = "acceleration"
	StatDeceleration = "deceleration"
	StatReverseSpeed = "reverse_speed"
	StatStrength     = "strength"
	StatControl      = "control"
)

// Upgrade spends ball radius to raise one of the beetle's stats. The beetle
// must be holding a live ball and the sacrifice must leave the ball above
// the minimum radius; otherwise nothing changes. Reports whether the
// upgrade was applied.
func Upgrade(w *ecs.World, ps *PhysicsSystem, beetle ecs.Entity, stat string, amount, sacrifice float64) bool {
	if amount <= 0 || sacrifice <= 0 {
		return false
	}
	beetleComp, ok := ecs.Get(w, beetle, component.BeetleComponent)
	if !ok {
		return false
	}
	ball := beetleComp.AttachedBall
	if !ball.Valid() || !w.IsAlive(ball) {
		return false
	}
	ballComp, ok := ecs.Get(w, ball, component.BallComponent)
	if !ok {
		return false
	}
	if ballComp.Radius-sacrifice < MinBallRadius {
		return false
	}

	switch stat {
	case StatTopSpeed:
		beetleComp.Stats.TopSpeed += amount
	case StatAcceleration:
		beetleComp.Stats.Acceleration += amount
	case StatDeceleration:
		beetleComp.Stats.Deceleration += amount
	case StatReverseSpeed:
		beetleComp.Stats.ReverseSpeed += amount
	case StatStrength:
		beetleComp.Stats.Strength += amount
	case StatControl:
		beetleComp.Stats.Control += amount
	default:
		return false
	}

	DamageBall(w, ps, ball, sacrifice, nil)
	return true
}
