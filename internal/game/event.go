package game

import "github.com/tomz197/asteroids-reborn/internal/object"

// EventKind names a discrete occurrence for audio and other observers.
type EventKind int

const (
	EventFire EventKind = iota
	EventHit
	EventExplosion
	EventPickup
	EventShipDestroyed
	EventLevelStart
	EventGameOver
	EventPause
	EventResume
	EventRestart
)

func (k EventKind) String() string {
	switch k {
	case EventFire:
		return "fire"
	case EventHit:
		return "hit"
	case EventExplosion:
		return "explosion"
	case EventPickup:
		return "pickup"
	case EventShipDestroyed:
		return "ship-destroyed"
	case EventLevelStart:
		return "level-start"
	case EventGameOver:
		return "game-over"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is emitted by Step. Fields that do not apply to Kind are zero.
type Event struct {
	Kind     EventKind
	X, Y     float64
	Tier     object.Tier         // EventHit, EventExplosion
	Asteroid object.AsteroidType // EventHit, EventExplosion
	PowerUp  object.PowerUpKind  // EventPickup
	Level    int                 // EventLevelStart
	Score    int                 // Points awarded (EventExplosion) or final score (EventGameOver)
}
