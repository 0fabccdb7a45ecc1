package api

import (
	"encoding/json"
	"net/http"
)

// submitApplication receives a grant application for an open batch.
// POST /batches/{batchId}/applications
func (a *API) submitApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	id, ok := batchID(w, r)
	if !ok {
		return
	}
	req := &SubmitRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.ledger.Submit(actor, id, req.EncryptedAmount, req.EncryptedScore); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// deriveGrantAmount computes the encrypted grant amount of a batch.
// POST /batches/{batchId}/derive
func (a *API) deriveGrantAmount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	id, ok := batchID(w, r)
	if !ok {
		return
	}
	if err := a.ledger.DeriveGrantAmount(actor, id); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}
