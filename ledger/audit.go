package ledger

import (
	"fmt"

	"github.com/vocdoni/grantz/storage"
)

// Audit record types. Every state transition of the ledger emits exactly one
// record, except the idempotent no-op administrative calls.
const (
	AuditOwnershipTransferred = "ownership_transferred"
	AuditSubmitterAdded       = "submitter_added"
	AuditSubmitterRemoved     = "submitter_removed"
	AuditLedgerPaused         = "ledger_paused"
	AuditLedgerUnpaused       = "ledger_unpaused"
	AuditCooldownUpdated      = "cooldown_updated"
	AuditBatchOpened          = "batch_opened"
	AuditBatchClosed          = "batch_closed"
	AuditApplicationSubmitted = "application_submitted"
	AuditGrantDerived         = "grant_derived"
	AuditDisclosureRequested  = "disclosure_requested"
	AuditDisclosureCompleted  = "disclosure_completed"
	AuditDisclosureAbandoned  = "disclosure_abandoned"
)

// appendAudit timestamps and appends a record to the audit trail.
func (l *Ledger) appendAudit(rec *storage.AuditRecord) error {
	rec.Time = l.now()
	if err := l.stg.AppendAudit(rec); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}
