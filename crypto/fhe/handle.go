// Package fhe defines the boundary with the external encrypted-arithmetic
// engine. The ledger never sees plaintext: it moves opaque ciphertext handles
// around, asks the engine to combine them, and asks the verifier to check
// that an oracle-disclosed cleartext really opens a given handle. The engine
// implementation itself is an external capability; this package only fixes
// the handle representation and the interfaces the ledger needs, plus a mock
// engine for tests and development.
package fhe

import (
	"bytes"
	"fmt"

	"github.com/vocdoni/grantz/types"
)

// SizeHandlePrefix is the number of bytes preceding the payload in a
// serialized handle: a one-byte initialization tag.
const SizeHandlePrefix = 1

// Handle is an opaque, serializable reference to a confidentially-held value.
// An uninitialized handle is a distinguished sentinel and must never be used
// as an operand.
type Handle struct {
	Initialized bool           `json:"initialized" cbor:"0,keyasint"`
	Payload     types.HexBytes `json:"payload"     cbor:"1,keyasint,omitempty"`
}

// ZeroHandle returns the uninitialized sentinel handle.
func ZeroHandle() Handle {
	return Handle{}
}

// IsInitialized reports whether the handle references an encrypted value.
func (h Handle) IsInitialized() bool {
	return h.Initialized
}

// Serialize returns the canonical byte representation of the handle: a
// one-byte initialization tag followed by the payload.
func (h Handle) Serialize() []byte {
	var buf bytes.Buffer
	if h.Initialized {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	buf.Write(h.Payload)
	return buf.Bytes()
}

// Deserialize reconstructs a Handle from its canonical byte representation.
func (h *Handle) Deserialize(data []byte) error {
	if len(data) < SizeHandlePrefix {
		return fmt.Errorf("invalid handle length: got %d bytes", len(data))
	}
	switch data[0] {
	case 0:
		h.Initialized = false
	case 1:
		h.Initialized = true
	default:
		return fmt.Errorf("invalid handle tag: %d", data[0])
	}
	h.Payload = append(types.HexBytes{}, data[SizeHandlePrefix:]...)
	return nil
}

// Equal compares two handles byte by byte.
func (h Handle) Equal(other Handle) bool {
	return h.Initialized == other.Initialized && bytes.Equal(h.Payload, other.Payload)
}

// String returns a short human readable representation of the handle.
func (h Handle) String() string {
	if !h.Initialized {
		return "{uninitialized}"
	}
	return fmt.Sprintf("{payload: %s}", h.Payload.String())
}
