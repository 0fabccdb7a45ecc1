package fhe

import (
	"bytes"
	"fmt"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/vocdoni/grantz/util"
)

// mockNonceSize is the number of random bytes prepended to a mock payload so
// that two encryptions of the same value produce different handles.
const mockNonceSize = 8

// MockEngine implements Engine and Verifier for testing and development. It
// keeps the plaintext inside the handle payload behind a random nonce, and
// authenticates decryptions with a keyed hash. It provides no actual
// confidentiality and must never be used outside tests or local development.
type MockEngine struct {
	key []byte
}

// NewMockEngine creates a MockEngine with a random proof key.
func NewMockEngine() *MockEngine {
	return &MockEngine{key: util.RandomBytes(32)}
}

// Encrypt returns a fresh handle referencing msg. Used by tests and the
// development tooling to produce submission handles.
func (e *MockEngine) Encrypt(msg *big.Int) Handle {
	payload := append(util.RandomBytes(mockNonceSize), msg.Bytes()...)
	return Handle{Initialized: true, Payload: payload}
}

// Add returns a handle referencing the sum of the two encrypted values.
func (e *MockEngine) Add(x, y Handle) (Handle, error) {
	xv, err := e.value(x)
	if err != nil {
		return ZeroHandle(), err
	}
	yv, err := e.value(y)
	if err != nil {
		return ZeroHandle(), err
	}
	return e.Encrypt(new(big.Int).Add(xv, yv)), nil
}

// Multiply returns a handle referencing the product of the two encrypted
// values.
func (e *MockEngine) Multiply(x, y Handle) (Handle, error) {
	xv, err := e.value(x)
	if err != nil {
		return ZeroHandle(), err
	}
	yv, err := e.value(y)
	if err != nil {
		return ZeroHandle(), err
	}
	return e.Encrypt(new(big.Int).Mul(xv, yv)), nil
}

// Decrypt returns the cleartext referenced by h together with a proof that
// authenticates the opening. It plays the role of the oracle's decryption
// step in tests.
func (e *MockEngine) Decrypt(h Handle) (cleartext, proof []byte, err error) {
	v, err := e.value(h)
	if err != nil {
		return nil, nil, err
	}
	cleartext = v.Bytes()
	return cleartext, e.proof(h, cleartext), nil
}

// VerifyDecryption returns nil only if proof authenticates cleartext as the
// decryption of h.
func (e *MockEngine) VerifyDecryption(h Handle, cleartext, proof []byte) error {
	if !h.IsInitialized() {
		return ErrUninitialized
	}
	if !bytes.Equal(proof, e.proof(h, cleartext)) {
		return fmt.Errorf("proof does not match ciphertext opening")
	}
	return nil
}

func (e *MockEngine) proof(h Handle, cleartext []byte) []byte {
	var buf bytes.Buffer
	buf.Write(e.key)
	buf.Write(h.Serialize())
	buf.Write(cleartext)
	return ethcrypto.Keccak256(buf.Bytes())
}

func (e *MockEngine) value(h Handle) (*big.Int, error) {
	if !h.IsInitialized() {
		return nil, ErrUninitialized
	}
	if len(h.Payload) < mockNonceSize {
		return nil, fmt.Errorf("malformed mock payload: %d bytes", len(h.Payload))
	}
	return new(big.Int).SetBytes(h.Payload[mockNonceSize:]), nil
}
