// Package oracle defines the boundary with the external decryption oracle.
// The ledger only talks outbound through the Bridge interface, which submits
// ciphertext handles for disclosure and returns a fresh request id. Answers
// come back out of band as (requestId, cleartext, proof) tuples; delivering
// them to the ledger callback handler is the job of service.DisclosureMonitor.
package oracle

import (
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/types"
)

// Bridge is the outbound interface to the decryption oracle. The bridge is
// responsible for the uniqueness of the request ids it returns; the ledger
// trusts it not to reuse an id across live requests.
type Bridge interface {
	// RequestDecryption submits the given ciphertext handles for
	// disclosure and returns a fresh, unique request id.
	RequestDecryption(handles []fhe.Handle) (types.HexBytes, error)
}

// Answer is one oracle response ready to be delivered to the ledger.
type Answer struct {
	RequestID types.HexBytes
	Cleartext []byte
	Proof     []byte
}

// AnswerSource is implemented by bridges that deliver oracle answers
// asynchronously through a channel.
type AnswerSource interface {
	Answers() <-chan *Answer
}
