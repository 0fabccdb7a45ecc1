package types

import "time"

const (
	// DefaultCooldown is the throttle window applied to submissions and
	// disclosure requests when no explicit cooldown has been configured.
	DefaultCooldown = 60 * time.Second
	// StateHashSize is the size in bytes of a disclosure state commitment.
	StateHashSize = 32
	// RequestIDSize is the size in bytes of an oracle request identifier.
	RequestIDSize = 16
)
