package storage

import (
	"encoding/binary"
	"fmt"
)

// Batch retrieves a batch record. Returns ErrNotFound for batch ids that
// were never opened.
func (s *Storage) Batch(id uint64) (*Batch, error) {
	b := &Batch{}
	if err := s.getArtifact(batchPrefix, uint64Key(id), b); err != nil {
		return nil, err
	}
	return b, nil
}

// SetBatch stores a batch record.
func (s *Storage) SetBatch(b *Batch) error {
	if b == nil {
		return fmt.Errorf("nil batch")
	}
	return s.setArtifact(batchPrefix, uint64Key(b.ID), b)
}

// ListBatches returns the ids of all batches ever opened, in numeric order.
func (s *Storage) ListBatches() ([]uint64, error) {
	keys, err := s.listKeys(batchPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(keys))
	for i, k := range keys {
		ids[i] = binary.BigEndian.Uint64(k)
	}
	return ids, nil
}

// Application retrieves the live grant application of a batch. Returns
// ErrNotFound if the batch has no application.
func (s *Storage) Application(batchID uint64) (*GrantApplication, error) {
	app := &GrantApplication{}
	if err := s.getArtifact(applicationPrefix, uint64Key(batchID), app); err != nil {
		return nil, err
	}
	return app, nil
}

// SetApplication stores the grant application of a batch, overwriting any
// previous record.
func (s *Storage) SetApplication(app *GrantApplication) error {
	if app == nil {
		return fmt.Errorf("nil grant application")
	}
	return s.setArtifact(applicationPrefix, uint64Key(app.BatchID), app)
}
