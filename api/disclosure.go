package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vocdoni/grantz/storage"
	"github.com/vocdoni/grantz/types"
)

// requestDisclosure issues a disclosure request for the derived grant
// amount of a batch.
// POST /batches/{batchId}/disclosures
func (a *API) requestDisclosure(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	id, ok := batchID(w, r)
	if !ok {
		return
	}
	requestID, err := a.ledger.RequestDisclosure(actor, id)
	if err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &DisclosureRequestResponse{RequestID: requestID})
}

// disclosure returns the state of one disclosure request.
// GET /disclosures/{requestId}
func (a *API) disclosure(w http.ResponseWriter, r *http.Request) {
	requestID := types.HexBytes{}
	if err := requestID.SetString(chi.URLParam(r, RequestURLParam)); err != nil {
		ErrMalformedBody.Withf("could not decode request id: %v", err).Write(w)
		return
	}
	dctx, err := a.ledger.DecryptionContext(requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			ErrUnknownRequest.Write(w)
			return
		}
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &DisclosureInfo{
		RequestID:       dctx.RequestID,
		BatchID:         dctx.BatchID,
		StateHash:       dctx.StateHash,
		Processed:       dctx.Processed,
		DisclosedAmount: dctx.DisclosedAmount,
	})
}

// abandonDisclosure abandons an outstanding disclosure request.
// POST /disclosures/{requestId}/abandon
func (a *API) abandonDisclosure(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	requestID := types.HexBytes{}
	if err := requestID.SetString(chi.URLParam(r, RequestURLParam)); err != nil {
		ErrMalformedBody.Withf("could not decode request id: %v", err).Write(w)
		return
	}
	if err := a.ledger.AbandonRequest(actor, requestID); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// disclosureCallback receives an oracle answer. The ledger enforces the
// replay, state-binding and proof checks; repeated or forged invocations
// get the corresponding protocol error.
// POST /disclosures/callback
func (a *API) disclosureCallback(w http.ResponseWriter, r *http.Request) {
	req := &CallbackRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.ledger.HandleDisclosure(req.RequestID, req.Cleartext, req.Proof); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}
