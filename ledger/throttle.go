package ledger

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/storage"
)

// checkAndRecordCooldown fails with ErrCooldownActive if the actor's last
// action of the given kind happened less than cfg.Cooldown ago; otherwise it
// records now as the new last-action time. Cooldowns apply independently per
// (actor, kind) pair.
func (l *Ledger) checkAndRecordCooldown(cfg *storage.LedgerConfig, actor common.Address, kind ActionKind, now time.Time) error {
	last, err := l.stg.LastAction(actor, byte(kind))
	if err != nil {
		return fmt.Errorf("read last action time: %w", err)
	}
	if !last.IsZero() && now.Before(last.Add(cfg.Cooldown)) {
		return ErrCooldownActive
	}
	if err := l.stg.SetLastAction(actor, byte(kind), now); err != nil {
		return fmt.Errorf("record action time: %w", err)
	}
	return nil
}

// SetCooldown changes the throttle window. Already-recorded timestamps are
// untouched; the new value applies starting with the next check.
func (l *Ledger) SetCooldown(actor common.Address, cooldown time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return err
	}
	cfg.Cooldown = cooldown
	if err := l.stg.SetConfig(cfg); err != nil {
		return fmt.Errorf("store ledger config: %w", err)
	}
	return l.appendAudit(&storage.AuditRecord{
		Type:   AuditCooldownUpdated,
		Actor:  actor,
		Detail: cooldown.String(),
	})
}
