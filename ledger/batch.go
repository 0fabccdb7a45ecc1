package ledger

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/storage"
	"go.vocdoni.io/dvote/log"
)

// OpenBatch transitions a batch from Closed to Open. Owner only. Fails with
// ErrBatchAlreadyOpen if the batch is already open.
func (l *Ledger) OpenBatch(actor common.Address, batchID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return err
	}
	batch, err := l.stg.Batch(batchID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("read batch: %w", err)
		}
		batch = &storage.Batch{ID: batchID}
	}
	if batch.Status == storage.BatchOpen {
		return ErrBatchAlreadyOpen
	}
	batch.Status = storage.BatchOpen
	if err := l.stg.SetBatch(batch); err != nil {
		return fmt.Errorf("store batch: %w", err)
	}
	log.Infow("batch opened", "batch", batchID, "actor", actor.Hex())
	return l.appendAudit(&storage.AuditRecord{
		Type:    AuditBatchOpened,
		Actor:   actor,
		BatchID: batchID,
	})
}

// CloseBatch transitions a batch from Open to Closed. Owner only. Fails with
// ErrBatchNotOpen if the batch is not open. There is no implicit auto-close:
// a batch stays open across any number of submissions until closed here.
func (l *Ledger) CloseBatch(actor common.Address, batchID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
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
	batch.Status = storage.BatchClosed
	if err := l.stg.SetBatch(batch); err != nil {
		return fmt.Errorf("store batch: %w", err)
	}
	log.Infow("batch closed", "batch", batchID, "actor", actor.Hex())
	return l.appendAudit(&storage.AuditRecord{
		Type:    AuditBatchClosed,
		Actor:   actor,
		BatchID: batchID,
	})
}
