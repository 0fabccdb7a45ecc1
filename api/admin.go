package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
)

// transferOwnership reassigns the ledger owner.
// POST /admin/transfer
func (a *API) transferOwnership(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	req := &TransferRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.ledger.TransferOwnership(actor, req.NewOwner); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// addSubmitter adds an address to the allowlist.
// POST /admin/submitters
func (a *API) addSubmitter(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	req := &SubmitterRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.ledger.AddSubmitter(actor, req.Address); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// removeSubmitter removes an address from the allowlist.
// DELETE /admin/submitters/{address}
func (a *API) removeSubmitter(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	raw := chi.URLParam(r, SubmitterURLParam)
	if !common.IsHexAddress(raw) {
		ErrMalformedAddress.Withf("%q", raw).Write(w)
		return
	}
	if err := a.ledger.RemoveSubmitter(actor, common.HexToAddress(raw)); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// pause sets the global pause flag.
// POST /admin/pause
func (a *API) pause(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	if err := a.ledger.SetPaused(actor, true); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// unpause clears the global pause flag.
// POST /admin/unpause
func (a *API) unpause(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	if err := a.ledger.SetPaused(actor, false); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// setCooldown updates the throttle window.
// POST /admin/cooldown
func (a *API) setCooldown(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	req := &CooldownRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if err := a.ledger.SetCooldown(actor, time.Duration(req.Seconds)*time.Second); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}
