package storage

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// throttleKey builds the key for a throttle timestamp: the actor address
// followed by the action kind byte.
func throttleKey(actor common.Address, kind byte) []byte {
	return append(actor.Bytes(), kind)
}

// LastAction returns the recorded time of the actor's last action of the
// given kind. The zero time is returned if the actor never performed it.
func (s *Storage) LastAction(actor common.Address, kind byte) (time.Time, error) {
	var t time.Time
	if err := s.getArtifact(throttlePrefix, throttleKey(actor, kind), &t); err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// SetLastAction records the time of the actor's last action of the given
// kind.
func (s *Storage) SetLastAction(actor common.Address, kind byte, t time.Time) error {
	return s.setArtifact(throttlePrefix, throttleKey(actor, kind), t)
}
