package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/crypto/hash/poseidon"
	"github.com/vocdoni/grantz/storage"
	"github.com/vocdoni/grantz/types"
	"go.vocdoni.io/dvote/log"
)

// stateHash commits to the exact ciphertext handle being disclosed and to
// this ledger instance. A callback is only accepted if the commitment still
// matches the stored handle at callback time.
func (l *Ledger) stateHash(h fhe.Handle) (types.HexBytes, error) {
	var buf bytes.Buffer
	buf.Write(h.Serialize())
	buf.Write(l.identity.Bytes())
	digest, err := poseidon.HashBytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("state hash: %w", err)
	}
	out := make([]byte, types.StateHashSize)
	digest.FillBytes(out)
	return out, nil
}

// RequestDisclosure submits the derived grant amount of a batch to the
// oracle bridge for disclosure. Owner only, not paused, throttled with the
// disclosure action kind. The returned request id keys the pending
// DecryptionContext until the oracle answers.
func (l *Ledger) RequestDisclosure(actor common.Address, batchID uint64) (types.HexBytes, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return nil, err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return nil, err
	}
	if err := requireNotPaused(cfg); err != nil {
		return nil, err
	}
	app, err := l.stg.Application(batchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidBatch
		}
		return nil, fmt.Errorf("read application: %w", err)
	}
	if !app.EncryptedGrantAmount.IsInitialized() {
		return nil, ErrInvalidBatch
	}
	now := l.now()
	if err := l.checkAndRecordCooldown(cfg, actor, ActionDisclose, now); err != nil {
		return nil, err
	}
	hash, err := l.stateHash(app.EncryptedGrantAmount)
	if err != nil {
		return nil, err
	}
	// The bridge is responsible for request id uniqueness.
	requestID, err := l.bridge.RequestDecryption([]fhe.Handle{app.EncryptedGrantAmount})
	if err != nil {
		return nil, fmt.Errorf("oracle bridge request: %w", err)
	}
	if err := l.stg.SetDecryptionContext(&storage.DecryptionContext{
		RequestID:   requestID,
		BatchID:     batchID,
		StateHash:   hash,
		Processed:   false,
		RequestedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("store decryption context: %w", err)
	}
	log.Infow("disclosure requested",
		"request", requestID.String(),
		"batch", batchID,
		"stateHash", hash.String(),
	)
	if err := l.appendAudit(&storage.AuditRecord{
		Type:      AuditDisclosureRequested,
		Actor:     actor,
		BatchID:   batchID,
		RequestID: requestID,
		StateHash: hash,
	}); err != nil {
		return nil, err
	}
	return requestID, nil
}

// HandleDisclosure processes one oracle answer. It tolerates zero, one or
// adversarially repeated invocations per request id: only the first valid
// answer for a still-matching ciphertext state finalizes the context.
//
// The checks run in a fixed order: replay before hash recomputation (no work
// wasted on known-replayed requests), hash before proof verification (no
// verification cost paid on state that is already known stale).
func (l *Ledger) HandleDisclosure(requestID types.HexBytes, cleartext, proof []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dctx, err := l.stg.DecryptionContext(requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUnknownRequest
		}
		return fmt.Errorf("read decryption context: %w", err)
	}
	if dctx.Processed {
		return ErrReplayAttempt
	}
	// Recompute the commitment from the handle stored right now, never
	// from anything the callback carries. A submit that overwrote the
	// application since the request makes this fail.
	app, err := l.stg.Application(dctx.BatchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrStateMismatch
		}
		return fmt.Errorf("read application: %w", err)
	}
	if !app.EncryptedGrantAmount.IsInitialized() {
		return ErrStateMismatch
	}
	hash, err := l.stateHash(app.EncryptedGrantAmount)
	if err != nil {
		return err
	}
	if !bytes.Equal(hash, dctx.StateHash) {
		return ErrStateMismatch
	}
	if err := l.verifier.VerifyDecryption(app.EncryptedGrantAmount, cleartext, proof); err != nil {
		log.Warnw("disclosure proof rejected", "request", requestID.String(), "error", err.Error())
		return ErrDecryptionFailed
	}
	amount := new(types.BigInt).SetBytes(cleartext)
	dctx.Processed = true
	dctx.DisclosedAmount = amount
	if err := l.stg.SetDecryptionContext(dctx); err != nil {
		return fmt.Errorf("store decryption context: %w", err)
	}
	log.Infow("disclosure completed",
		"request", requestID.String(),
		"batch", dctx.BatchID,
		"amount", amount.String(),
	)
	return l.appendAudit(&storage.AuditRecord{
		Type:            AuditDisclosureCompleted,
		BatchID:         dctx.BatchID,
		RequestID:       requestID,
		DisclosedAmount: amount,
	})
}

// AbandonRequest finalizes an outstanding disclosure request without
// disclosing anything. Owner only. A late oracle answer for an abandoned
// request fails the replay check. Abandoning reveals nothing, so it does not
// lower the protocol's security.
func (l *Ledger) AbandonRequest(actor common.Address, requestID types.HexBytes) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.stg.Config()
	if err != nil {
		return err
	}
	if err := requireOwner(cfg, actor); err != nil {
		return err
	}
	dctx, err := l.stg.DecryptionContext(requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUnknownRequest
		}
		return fmt.Errorf("read decryption context: %w", err)
	}
	if dctx.Processed {
		return ErrReplayAttempt
	}
	dctx.Processed = true
	if err := l.stg.SetDecryptionContext(dctx); err != nil {
		return fmt.Errorf("store decryption context: %w", err)
	}
	log.Infow("disclosure abandoned", "request", requestID.String(), "batch", dctx.BatchID)
	return l.appendAudit(&storage.AuditRecord{
		Type:      AuditDisclosureAbandoned,
		Actor:     actor,
		BatchID:   dctx.BatchID,
		RequestID: requestID,
	})
}

// DisclosedAmount returns the disclosed value of a finalized request, or
// ErrUnknownRequest / nil amount if the request is unknown or still pending.
func (l *Ledger) DisclosedAmount(requestID types.HexBytes) (*big.Int, error) {
	dctx, err := l.stg.DecryptionContext(requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnknownRequest
		}
		return nil, err
	}
	if dctx.DisclosedAmount == nil {
		return nil, nil
	}
	return dctx.DisclosedAmount.MathBigInt(), nil
}
