//nolint:lll
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vocdoni/grantz/ledger"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400, 403, 404, 409 or 429, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX.
// If you notice there's a gap, DON'T fill it in, that code belonged to a retired error and shouldn't be reused.
var (
	ErrResourceNotFound    = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody       = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrMalformedAddress    = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed address")}
	ErrMalformedBatchID    = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed batch id")}
	ErrBatchNotFound       = Error{Code: 40007, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("batch not found")}
	ErrNotOwner            = Error{Code: 40008, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("actor is not the owner")}
	ErrNotSubmitter        = Error{Code: 40009, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("actor is not an allowlisted submitter")}
	ErrLedgerPaused        = Error{Code: 40010, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("ledger is paused")}
	ErrCooldownActive      = Error{Code: 40011, HTTPstatus: http.StatusTooManyRequests, Err: fmt.Errorf("cooldown has not elapsed")}
	ErrBatchNotOpen        = Error{Code: 40012, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("batch is not open")}
	ErrBatchAlreadyOpen    = Error{Code: 40013, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("batch is already open")}
	ErrInvalidBatch        = Error{Code: 40014, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("batch ciphertext state not initialized")}
	ErrUnknownRequest      = Error{Code: 40015, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("unknown disclosure request")}
	ErrReplayAttempt       = Error{Code: 40016, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("disclosure request already finalized")}
	ErrStateMismatch       = Error{Code: 40017, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("ciphertext state does not match request commitment")}
	ErrDecryptionFailed    = Error{Code: 40018, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("decryption proof verification failed")}
	ErrMissingActorAddress = Error{Code: 40019, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("missing actor address header")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
)

// fromLedgerError maps a ledger failure to its API error, falling back to
// the generic internal error for anything outside the ledger taxonomy.
func fromLedgerError(err error) Error {
	switch {
	case errors.Is(err, ledger.ErrNotOwner):
		return ErrNotOwner
	case errors.Is(err, ledger.ErrNotSubmitter):
		return ErrNotSubmitter
	case errors.Is(err, ledger.ErrPaused):
		return ErrLedgerPaused
	case errors.Is(err, ledger.ErrCooldownActive):
		return ErrCooldownActive
	case errors.Is(err, ledger.ErrBatchNotOpen):
		return ErrBatchNotOpen
	case errors.Is(err, ledger.ErrBatchAlreadyOpen):
		return ErrBatchAlreadyOpen
	case errors.Is(err, ledger.ErrInvalidBatch):
		return ErrInvalidBatch
	case errors.Is(err, ledger.ErrUnknownRequest):
		return ErrUnknownRequest
	case errors.Is(err, ledger.ErrReplayAttempt):
		return ErrReplayAttempt
	case errors.Is(err, ledger.ErrStateMismatch):
		return ErrStateMismatch
	case errors.Is(err, ledger.ErrDecryptionFailed):
		return ErrDecryptionFailed
	default:
		return ErrGenericInternalServerError.WithErr(err)
	}
}
