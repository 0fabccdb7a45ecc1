package ledger

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/storage"
	"go.vocdoni.io/dvote/log"
)

// Submit stores a grant application into an open batch. The caller must be
// an allowlisted submitter, the ledger unpaused, and the submitter's
// submission cooldown elapsed. A batch holds at most one live application:
// submitting again overwrites the previous record and resets the derived
// grant amount to the uninitialized handle.
func (l *Ledger) Submit(actor common.Address, batchID uint64, encAmount, encScore fhe.Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := l.requireSubmitter(actor); err != nil {
		return err
	}
	if err := requireNotPaused(cfg); err != nil {
		return err
	}
	batch, err := l.stg.Batch(batchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrBatchNotOpen
		}
		return fmt.Errorf("read batch: %w", err)
	}
	if batch.Status != storage.BatchOpen {
		return ErrBatchNotOpen
	}
	if !encAmount.IsInitialized() || !encScore.IsInitialized() {
		return ErrInvalidBatch
	}
	now := l.now()
	if err := l.checkAndRecordCooldown(cfg, actor, ActionSubmit, now); err != nil {
		return err
	}
	if err := l.stg.SetApplication(&storage.GrantApplication{
		BatchID:              batchID,
		Submitter:            actor,
		EncryptedAmount:      encAmount,
		EncryptedScore:       encScore,
		EncryptedGrantAmount: fhe.ZeroHandle(),
		SubmittedAt:          now,
	}); err != nil {
		return fmt.Errorf("store application: %w", err)
	}
	// Handles, not plaintext, are safe to expose on the audit surface.
	log.Infow("application submitted",
		"batch", batchID,
		"submitter", actor.Hex(),
		"amount", encAmount.String(),
		"score", encScore.String(),
	)
	return l.appendAudit(&storage.AuditRecord{
		Type:    AuditApplicationSubmitted,
		Actor:   actor,
		BatchID: batchID,
		Detail:  fmt.Sprintf("amount=%s score=%s", encAmount.Payload, encScore.Payload),
	})
}

// DeriveGrantAmount computes the encrypted grant amount of a batch as the
// homomorphic product of the submitted amount and score. Owner only, not
// paused, throttled with the disclosure action kind. The multiplication
// happens inside the external engine without materializing plaintext; the
// derived handle is what later gets disclosed, never the raw inputs.
func (l *Ledger) DeriveGrantAmount(actor common.Address, batchID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return err
	}
	if err := requireNotPaused(cfg); err != nil {
		return err
	}
	app, err := l.stg.Application(batchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidBatch
		}
		return fmt.Errorf("read application: %w", err)
	}
	if !app.EncryptedAmount.IsInitialized() || !app.EncryptedScore.IsInitialized() {
		return ErrInvalidBatch
	}
	if err := l.checkAndRecordCooldown(cfg, actor, ActionDisclose, l.now()); err != nil {
		return err
	}
	grant, err := l.engine.Multiply(app.EncryptedAmount, app.EncryptedScore)
	if err != nil {
		return fmt.Errorf("homomorphic multiply: %w", err)
	}
	app.EncryptedGrantAmount = grant
	if err := l.stg.SetApplication(app); err != nil {
		return fmt.Errorf("store application: %w", err)
	}
	log.Infow("grant amount derived", "batch", batchID, "grant", grant.String())
	return l.appendAudit(&storage.AuditRecord{
		Type:    AuditGrantDerived,
		Actor:   actor,
		BatchID: batchID,
	})
}
