package ledger

import "errors"

// Every failure of a ledger operation is a precondition violation
// attributable to its caller, actor or timing. Nothing is retried and no
// failure leaves partial state behind.
var (
	ErrNotOwner         = errors.New("actor is not the owner")
	ErrNotSubmitter     = errors.New("actor is not an allowlisted submitter")
	ErrPaused           = errors.New("ledger is paused")
	ErrCooldownActive   = errors.New("cooldown has not elapsed")
	ErrBatchNotOpen     = errors.New("batch is not open")
	ErrBatchAlreadyOpen = errors.New("batch is already open")
	ErrInvalidBatch     = errors.New("batch ciphertext state not initialized")
	ErrUnknownRequest   = errors.New("unknown disclosure request")
	ErrReplayAttempt    = errors.New("disclosure request already finalized")
	ErrStateMismatch    = errors.New("ciphertext state does not match request commitment")
	ErrDecryptionFailed = errors.New("decryption proof verification failed")
)
