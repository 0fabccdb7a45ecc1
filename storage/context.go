package storage

import (
	"fmt"

	"github.com/vocdoni/grantz/types"
)

// DecryptionContext retrieves the context of a disclosure request. Returns
// ErrNotFound if the request id was never issued.
func (s *Storage) DecryptionContext(requestID types.HexBytes) (*DecryptionContext, error) {
	ctx := &DecryptionContext{}
	if err := s.getArtifact(contextPrefix, requestID, ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// SetDecryptionContext stores the context of a disclosure request, keyed by
// its oracle request id.
func (s *Storage) SetDecryptionContext(ctx *DecryptionContext) error {
	if ctx == nil {
		return fmt.Errorf("nil decryption context")
	}
	if len(ctx.RequestID) == 0 {
		return fmt.Errorf("decryption context without request id")
	}
	return s.setArtifact(contextPrefix, ctx.RequestID, ctx)
}

// ListDecryptionContexts returns the request ids of all disclosure requests
// ever issued.
func (s *Storage) ListDecryptionContexts() ([]types.HexBytes, error) {
	keys, err := s.listKeys(contextPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]types.HexBytes, len(keys))
	for i, k := range keys {
		ids[i] = types.HexBytes(k)
	}
	return ids, nil
}
