package loop

import "time"

// Render area limits. Larger terminals get a centered, bordered area.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// maxStepsPerFrame bounds catch-up after a stall so a slow client does not
// spiral trying to replay lost time.
const maxStepsPerFrame = 5

// Inactivity defaults for remote sessions.
const (
	DefaultIdleWarn       = 90 * time.Second
	DefaultIdleDisconnect = 120 * time.Second
)

// DefaultShutdownNotice is how long the shutdown screen stays up before the
// session ends on its own.
const DefaultShutdownNotice = 10 * time.Second
