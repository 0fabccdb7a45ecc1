package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt is a big.Int wrapper which marshals JSON to a string representation
// of the big number. Note that a nil pointer value marshals as the empty
// string.
type BigInt big.Int

// MarshalText implements the encoding.TextMarshaler interface.
func (i *BigInt) MarshalText() ([]byte, error) {
	if i == nil {
		return []byte(""), nil
	}
	return (*big.Int)(i).MarshalText()
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (i *BigInt) UnmarshalText(data []byte) error {
	if i == nil {
		return fmt.Errorf("cannot unmarshal into nil BigInt")
	}
	return (*big.Int)(i).UnmarshalText(data)
}

// MarshalCBOR implements the cbor.Marshaler interface, encoding the value as
// its big-endian byte representation.
func (i *BigInt) MarshalCBOR() ([]byte, error) {
	if i == nil {
		return cbor.Marshal([]byte(nil))
	}
	return cbor.Marshal((*big.Int)(i).Bytes())
}

// UnmarshalCBOR implements the cbor.Unmarshaler interface.
func (i *BigInt) UnmarshalCBOR(data []byte) error {
	var buf []byte
	if err := cbor.Unmarshal(data, &buf); err != nil {
		return err
	}
	(*big.Int)(i).SetBytes(buf)
	return nil
}

// MathBigInt converts b to a math/big *big.Int.
func (i *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(i)
}

// SetUint64 sets the value of i to x and returns i.
func (i *BigInt) SetUint64(x uint64) *BigInt {
	return (*BigInt)((*big.Int)(i).SetUint64(x))
}

// SetBytes sets the value of i to the big-endian unsigned integer encoded in
// data, and returns i.
func (i *BigInt) SetBytes(data []byte) *BigInt {
	return (*BigInt)((*big.Int)(i).SetBytes(data))
}

// Bytes returns the big-endian unsigned integer representation of i.
func (i *BigInt) Bytes() []byte {
	return (*big.Int)(i).Bytes()
}

// String returns the decimal representation of i.
func (i *BigInt) String() string {
	return (*big.Int)(i).String()
}

// Equal compares i with x.
func (i *BigInt) Equal(x *BigInt) bool {
	if i == nil || x == nil {
		return i == x
	}
	return (*big.Int)(i).Cmp((*big.Int)(x)) == 0
}
