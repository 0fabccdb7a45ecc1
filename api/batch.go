package api

import (
	"errors"
	"net/http"

	"github.com/vocdoni/grantz/storage"
)

// ledgerInfo returns the public ledger configuration.
// GET /ledger
func (a *API) ledgerInfo(w http.ResponseWriter, r *http.Request) {
	owner, err := a.ledger.Owner()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	paused, err := a.ledger.Paused()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	cooldown, err := a.ledger.Cooldown()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	submitters, err := a.ledger.Submitters()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &LedgerInfo{
		Owner:           owner,
		Paused:          paused,
		CooldownSeconds: uint64(cooldown.Seconds()),
		Submitters:      submitters,
	})
}

// listBatches returns the ids of all batches ever opened.
// GET /batches
func (a *API) listBatches(w http.ResponseWriter, r *http.Request) {
	ids, err := a.ledger.Batches()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &BatchList{Batches: ids})
}

// batch returns one batch with its application handles.
// GET /batches/{batchId}
func (a *API) batch(w http.ResponseWriter, r *http.Request) {
	id, ok := batchID(w, r)
	if !ok {
		return
	}
	b, err := a.ledger.Batch(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			ErrBatchNotFound.Write(w)
			return
		}
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	info := &BatchInfo{ID: b.ID, Status: b.Status.String()}
	app, err := a.ledger.Application(id)
	switch {
	case err == nil:
		info.Application = &ApplicationInfo{
			Submitter:            app.Submitter,
			EncryptedAmount:      app.EncryptedAmount,
			EncryptedScore:       app.EncryptedScore,
			EncryptedGrantAmount: app.EncryptedGrantAmount,
		}
	case errors.Is(err, storage.ErrNotFound):
		// no application yet
	default:
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, info)
}

// openBatch opens a batch for submissions.
// POST /batches/{batchId}/open
func (a *API) openBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	id, ok := batchID(w, r)
	if !ok {
		return
	}
	if err := a.ledger.OpenBatch(actor, id); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// closeBatch closes a batch.
// POST /batches/{batchId}/close
func (a *API) closeBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorAddress(w, r)
	if !ok {
		return
	}
	id, ok := batchID(w, r)
	if !ok {
		return
	}
	if err := a.ledger.CloseBatch(actor, id); err != nil {
		fromLedgerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// audit returns the append-only audit trail.
// GET /audit
func (a *API) audit(w http.ResponseWriter, r *http.Request) {
	records, err := a.ledger.Audit()
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	if records == nil {
		records = []*storage.AuditRecord{}
	}
	httpWriteJSON(w, records)
}
