package storage

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/types"
)

// BatchStatus is the lifecycle state of a batch. Unopened batch ids are
// implicitly Closed.
type BatchStatus uint8

const (
	// BatchClosed is the initial state; the batch does not accept
	// submissions.
	BatchClosed BatchStatus = iota
	// BatchOpen accepts submissions until explicitly closed.
	BatchOpen
)

// String returns a human readable representation of the status.
func (s BatchStatus) String() string {
	switch s {
	case BatchOpen:
		return "open"
	default:
		return "closed"
	}
}

// LedgerConfig holds the process-wide mutable configuration of the ledger.
type LedgerConfig struct {
	Owner    common.Address `json:"owner"`
	Paused   bool           `json:"paused"`
	Cooldown time.Duration  `json:"cooldown"`
}

// Batch is a time-boxed submission window identified by an integer id.
type Batch struct {
	ID     uint64      `json:"id"`
	Status BatchStatus `json:"status"`
}

// GrantApplication is the single live application record of a batch. A new
// submission on the same batch overwrites the previous record.
type GrantApplication struct {
	BatchID              uint64         `json:"batchId"`
	Submitter            common.Address `json:"submitter"`
	EncryptedAmount      fhe.Handle     `json:"encryptedAmount"`
	EncryptedScore       fhe.Handle     `json:"encryptedScore"`
	EncryptedGrantAmount fhe.Handle     `json:"encryptedGrantAmount"`
	SubmittedAt          time.Time      `json:"submittedAt"`
}

// DecryptionContext is the pending state of one disclosure request, keyed by
// the oracle request id. Processed transitions false to true exactly once
// and is never reversed.
type DecryptionContext struct {
	RequestID       types.HexBytes `json:"requestId"`
	BatchID         uint64         `json:"batchId"`
	StateHash       types.HexBytes `json:"stateHash"`
	Processed       bool           `json:"processed"`
	DisclosedAmount *types.BigInt  `json:"disclosedAmount,omitempty"`
	RequestedAt     time.Time      `json:"requestedAt"`
}

// AuditRecord is one immutable entry of the append-only audit trail.
type AuditRecord struct {
	Seq             uint64         `json:"seq"`
	Time            time.Time      `json:"time"`
	Type            string         `json:"type"`
	Actor           common.Address `json:"actor"`
	BatchID         uint64         `json:"batchId,omitempty"`
	RequestID       types.HexBytes `json:"requestId,omitempty"`
	StateHash       types.HexBytes `json:"stateHash,omitempty"`
	DisclosedAmount *types.BigInt  `json:"disclosedAmount,omitempty"`
	Detail          string         `json:"detail,omitempty"`
}
