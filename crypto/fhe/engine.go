package fhe

import "errors"

// ErrUninitialized is returned when an uninitialized handle is used as an
// operand of a homomorphic operation.
var ErrUninitialized = errors.New("uninitialized ciphertext handle")

// Engine is the homomorphic-arithmetic capability supplied by the external
// encryption engine. Operations combine ciphertext handles without ever
// materializing plaintext.
type Engine interface {
	// Add returns a handle referencing the sum of the two encrypted values.
	Add(x, y Handle) (Handle, error)
	// Multiply returns a handle referencing the product of the two
	// encrypted values.
	Multiply(x, y Handle) (Handle, error)
}

// Verifier is the proof-checking capability of the external engine. It
// authenticates an oracle-disclosed cleartext as the correct opening of a
// ciphertext handle.
type Verifier interface {
	// VerifyDecryption returns nil only if proof authenticates cleartext
	// as the decryption of h.
	VerifyDecryption(h Handle, cleartext, proof []byte) error
}
