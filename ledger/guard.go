package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/storage"
	"go.vocdoni.io/dvote/log"
)

// requireOwner fails with ErrNotOwner unless actor is the current owner.
func requireOwner(cfg *storage.LedgerConfig, actor common.Address) error {
	if actor != cfg.Owner {
		return ErrNotOwner
	}
	return nil
}

// requireNotPaused fails with ErrPaused while the global pause flag is set.
func requireNotPaused(cfg *storage.LedgerConfig) error {
	if cfg.Paused {
		return ErrPaused
	}
	return nil
}

// requireSubmitter fails with ErrNotSubmitter unless actor is allowlisted.
func (l *Ledger) requireSubmitter(actor common.Address) error {
	ok, err := l.stg.IsSubmitter(actor)
	if err != nil {
		return fmt.Errorf("read submitter allowlist: %w", err)
	}
	if !ok {
		return ErrNotSubmitter
	}
	return nil
}

// TransferOwnership reassigns the owner in a single atomic step.
func (l *Ledger) TransferOwnership(actor, newOwner common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return err
	}
	cfg.Owner = newOwner
	if err := l.stg.SetConfig(cfg); err != nil {
		return fmt.Errorf("store ledger config: %w", err)
	}
	log.Infow("ownership transferred", "from", actor.Hex(), "to", newOwner.Hex())
	return l.appendAudit(&storage.AuditRecord{
		Type:   AuditOwnershipTransferred,
		Actor:  actor,
		Detail: newOwner.Hex(),
	})
}

// AddSubmitter adds an address to the submitter allowlist. Adding an address
// already in the allowlist is a no-op and emits no audit record.
func (l *Ledger) AddSubmitter(actor, addr common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return err
	}
	ok, err := l.stg.IsSubmitter(addr)
	if err != nil {
		return fmt.Errorf("read submitter allowlist: %w", err)
	}
	if ok {
		return nil
	}
	if err := l.stg.SetSubmitter(addr); err != nil {
		return fmt.Errorf("store submitter: %w", err)
	}
	return l.appendAudit(&storage.AuditRecord{
		Type:   AuditSubmitterAdded,
		Actor:  actor,
		Detail: addr.Hex(),
	})
}

// RemoveSubmitter removes an address from the submitter allowlist. Removing
// an address not in the allowlist is a no-op and emits no audit record.
func (l *Ledger) RemoveSubmitter(actor, addr common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return err
	}
	ok, err := l.stg.IsSubmitter(addr)
	if err != nil {
		return fmt.Errorf("read submitter allowlist: %w", err)
	}
	if !ok {
		return nil
	}
	if err := l.stg.RemoveSubmitter(addr); err != nil {
		return fmt.Errorf("remove submitter: %w", err)
	}
	return l.appendAudit(&storage.AuditRecord{
		Type:   AuditSubmitterRemoved,
		Actor:  actor,
		Detail: addr.Hex(),
	})
}

// SetPaused sets the global pause flag. Setting it to its current value is a
// no-op and emits no audit record. Administrative operations remain
// available while paused.
func (l *Ledger) SetPaused(actor common.Address, paused bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return err
	}
	if cfg.Paused == paused {
		return nil
	}
	cfg.Paused = paused
	if err := l.stg.SetConfig(cfg); err != nil {
		return fmt.Errorf("store ledger config: %w", err)
	}
	recType := AuditLedgerUnpaused
	if paused {
		recType = AuditLedgerPaused
	}
	log.Infow("pause flag changed", "paused", paused, "actor", actor.Hex())
	return l.appendAudit(&storage.AuditRecord{Type: recType, Actor: actor})
}
