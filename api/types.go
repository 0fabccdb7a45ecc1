package api

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/types"
)

// LedgerInfo is the public ledger configuration.
type LedgerInfo struct {
	Owner           common.Address   `json:"owner"`
	Paused          bool             `json:"paused"`
	CooldownSeconds uint64           `json:"cooldownSeconds"`
	Submitters      []common.Address `json:"submitters"`
}

// BatchInfo is the public view of a batch: lifecycle state plus the opaque
// ciphertext handles of its live application, if any. Handles are safe to
// expose, plaintext never leaves the oracle path.
type BatchInfo struct {
	ID          uint64           `json:"id"`
	Status      string           `json:"status"`
	Application *ApplicationInfo `json:"application,omitempty"`
}

// ApplicationInfo is the public view of a grant application.
type ApplicationInfo struct {
	Submitter            common.Address `json:"submitter"`
	EncryptedAmount      fhe.Handle     `json:"encryptedAmount"`
	EncryptedScore       fhe.Handle     `json:"encryptedScore"`
	EncryptedGrantAmount fhe.Handle     `json:"encryptedGrantAmount"`
}

// BatchList is the response to a batch listing request.
type BatchList struct {
	Batches []uint64 `json:"batches"`
}

// SubmitRequest is the body of a grant application submission.
type SubmitRequest struct {
	EncryptedAmount fhe.Handle `json:"encryptedAmount"`
	EncryptedScore  fhe.Handle `json:"encryptedScore"`
}

// DisclosureRequestResponse returns the oracle request id of a new
// disclosure request.
type DisclosureRequestResponse struct {
	RequestID types.HexBytes `json:"requestId"`
}

// DisclosureInfo is the public state of a disclosure request.
type DisclosureInfo struct {
	RequestID       types.HexBytes `json:"requestId"`
	BatchID         uint64         `json:"batchId"`
	StateHash       types.HexBytes `json:"stateHash"`
	Processed       bool           `json:"processed"`
	DisclosedAmount *types.BigInt  `json:"disclosedAmount,omitempty"`
}

// CallbackRequest is the body the oracle bridge posts with an answer.
type CallbackRequest struct {
	RequestID types.HexBytes `json:"requestId"`
	Cleartext types.HexBytes `json:"cleartext"`
	Proof     types.HexBytes `json:"proof"`
}

// TransferRequest is the body of an ownership transfer.
type TransferRequest struct {
	NewOwner common.Address `json:"newOwner"`
}

// SubmitterRequest is the body of an allowlist addition.
type SubmitterRequest struct {
	Address common.Address `json:"address"`
}

// CooldownRequest is the body of a cooldown update.
type CooldownRequest struct {
	Seconds uint64 `json:"seconds"`
}
