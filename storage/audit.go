package storage

import (
	"errors"
	"fmt"

	"go.vocdoni.io/dvote/db/prefixeddb"
)

// auditSeqKey holds the next audit sequence number under configPrefix.
var auditSeqKey = []byte("auditseq")

// AppendAudit assigns the next sequence number to the record and appends it
// to the audit trail. Records are never modified or deleted afterwards.
func (s *Storage) AppendAudit(rec *AuditRecord) error {
	if rec == nil {
		return fmt.Errorf("nil audit record")
	}
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	var seq uint64
	if err := s.getArtifact(configPrefix, auditSeqKey, &seq); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("read audit sequence: %w", err)
	}
	rec.Seq = seq
	if err := s.setArtifact(auditPrefix, uint64Key(seq), rec); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return s.setArtifact(configPrefix, auditSeqKey, seq+1)
}

// ListAudit returns the full audit trail in sequence order.
func (s *Storage) ListAudit() ([]*AuditRecord, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, auditPrefix)
	var records []*AuditRecord
	if err := rd.Iterate(nil, func(_, v []byte) bool {
		rec := &AuditRecord{}
		if err := decodeArtifact(v, rec); err != nil {
			return true
		}
		records = append(records, rec)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return records, nil
}
