// Package ledger implements the confidential grants ledger: batch lifecycle,
// access and throttle guards, encrypted application bookkeeping, and the
// disclosure request/callback protocol. All mutating calls are serialized by
// a single lock, and every call either completes fully or leaves the ledger
// state untouched: checks run in a fixed order before the first write.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/oracle"
	"github.com/vocdoni/grantz/storage"
	"github.com/vocdoni/grantz/types"
	"go.vocdoni.io/dvote/log"
)

// ActionKind distinguishes the throttled action families. Cooldowns apply
// independently per (actor, kind) pair.
type ActionKind byte

const (
	// ActionSubmit throttles grant application submissions.
	ActionSubmit ActionKind = iota + 1
	// ActionDisclose throttles grant derivations and disclosure requests.
	ActionDisclose
)

// Config carries the collaborators and the initial state of a Ledger.
type Config struct {
	// Identity is the ledger instance identity bound into every state
	// hash commitment.
	Identity common.Address
	// Owner is the initial owner, used only when the storage holds no
	// previous ledger configuration.
	Owner common.Address
	// Cooldown is the initial throttle window, used only on first
	// initialization. Zero means types.DefaultCooldown.
	Cooldown time.Duration
	// Storage persists all ledger registries.
	Storage *storage.Storage
	// Engine is the external homomorphic-arithmetic capability.
	Engine fhe.Engine
	// Verifier is the external decryption-proof capability.
	Verifier fhe.Verifier
	// Bridge is the outbound oracle boundary.
	Bridge oracle.Bridge
	// Now is the clock source; defaults to time.Now.
	Now func() time.Time
}

// Ledger is the confidential grants ledger aggregate. It lives for the
// process lifetime and owns all mutation of the underlying registries.
type Ledger struct {
	mu       sync.Mutex
	identity common.Address
	stg      *storage.Storage
	engine   fhe.Engine
	verifier fhe.Verifier
	bridge   oracle.Bridge
	now      func() time.Time
}

// New creates a Ledger over the given collaborators. If the storage holds no
// previous configuration, the ledger is initialized with cfg.Owner and
// cfg.Cooldown; otherwise the persisted configuration wins.
func New(cfg *Config) (*Ledger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("missing ledger configuration")
	}
	if cfg.Storage == nil {
		return nil, fmt.Errorf("missing storage instance")
	}
	if cfg.Engine == nil || cfg.Verifier == nil {
		return nil, fmt.Errorf("missing encryption engine capabilities")
	}
	if cfg.Bridge == nil {
		return nil, fmt.Errorf("missing oracle bridge")
	}
	l := &Ledger{
		identity: cfg.Identity,
		stg:      cfg.Storage,
		engine:   cfg.Engine,
		verifier: cfg.Verifier,
		bridge:   cfg.Bridge,
		now:      cfg.Now,
	}
	if l.now == nil {
		l.now = time.Now
	}
	if _, err := l.stg.Config(); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("read ledger config: %w", err)
		}
		cooldown := cfg.Cooldown
		if cooldown == 0 {
			cooldown = types.DefaultCooldown
		}
		if err := l.stg.SetConfig(&storage.LedgerConfig{
			Owner:    cfg.Owner,
			Paused:   false,
			Cooldown: cooldown,
		}); err != nil {
			return nil, fmt.Errorf("initialize ledger config: %w", err)
		}
		log.Infow("ledger initialized", "owner", cfg.Owner.Hex(), "cooldown", cooldown.String())
	}
	return l, nil
}

// Owner returns the current ledger owner.
func (l *Ledger) Owner() (common.Address, error) {
	cfg, err := l.stg.Config()
	if err != nil {
		return common.Address{}, err
	}
	return cfg.Owner, nil
}

// Paused returns the global pause flag.
func (l *Ledger) Paused() (bool, error) {
	cfg, err := l.stg.Config()
	if err != nil {
		return false, err
	}
	return cfg.Paused, nil
}

// Cooldown returns the configured throttle window.
func (l *Ledger) Cooldown() (time.Duration, error) {
	cfg, err := l.stg.Config()
	if err != nil {
		return 0, err
	}
	return cfg.Cooldown, nil
}

// IsSubmitter reports whether the address is allowlisted.
func (l *Ledger) IsSubmitter(addr common.Address) (bool, error) {
	return l.stg.IsSubmitter(addr)
}

// Submitters returns the allowlisted submitter addresses.
func (l *Ledger) Submitters() ([]common.Address, error) {
	return l.stg.ListSubmitters()
}

// Batch returns the batch record for the given id. Unopened ids return
// storage.ErrNotFound.
func (l *Ledger) Batch(id uint64) (*storage.Batch, error) {
	return l.stg.Batch(id)
}

// Batches returns the ids of all batches ever opened.
func (l *Ledger) Batches() ([]uint64, error) {
	return l.stg.ListBatches()
}

// Application returns the live grant application of a batch.
func (l *Ledger) Application(batchID uint64) (*storage.GrantApplication, error) {
	return l.stg.Application(batchID)
}

// DecryptionContext returns the context of a disclosure request.
func (l *Ledger) DecryptionContext(requestID types.HexBytes) (*storage.DecryptionContext, error) {
	return l.stg.DecryptionContext(requestID)
}

// Audit returns the full audit trail.
func (l *Ledger) Audit() ([]*storage.AuditRecord, error) {
	return l.stg.ListAudit()
}
