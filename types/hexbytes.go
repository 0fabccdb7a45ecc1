package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vocdoni/grantz/util"
)

// HexBytes is a byte slice that marshals to and from a JSON hex string.
// It is used across the API and storage types for opaque byte payloads
// such as ciphertext handles, request ids and state hashes.
type HexBytes []byte

// String returns the hex representation of the bytes.
func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

// Bytes returns the underlying byte slice.
func (b HexBytes) Bytes() []byte {
	return b
}

// SetString decodes a hex string, with or without the '0x' prefix.
func (b *HexBytes) SetString(s string) error {
	data, err := hex.DecodeString(util.TrimHex(s))
	if err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}
	*b = data
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return b.SetString(s)
}
