// storage package persists the ledger registries on a prefixed key-value
// store. Every registry the ledger mutates lives under its own prefix:
//   - 'cf/' for the ledger configuration (owner, pause flag, cooldown)
//   - 'r/'  for the submitter allowlist
//   - 'b/'  for batches
//   - 'a/'  for grant applications (one per batch)
//   - 'd/'  for decryption contexts (keyed by oracle request id)
//   - 'tl/' for throttle timestamps (keyed by actor and action kind)
//   - 'au/' for the append-only audit trail (keyed by sequence number)
//
// Artifacts are encoded with deterministic CBOR so the stored bytes of an
// artifact are stable across writes of equal values.
package storage

import (
	"errors"
	"sync"

	"go.vocdoni.io/dvote/db"
)

var (
	// Prefixes for the keys in the database.
	configPrefix      = []byte("cf/")
	submitterPrefix   = []byte("r/")
	batchPrefix       = []byte("b/")
	applicationPrefix = []byte("a/")
	contextPrefix     = []byte("d/")
	throttlePrefix    = []byte("tl/")
	auditPrefix       = []byte("au/")
)

// configKey is the single key under configPrefix holding the ledger config.
var configKey = []byte("ledger")

// ErrNotFound is returned when the requested artifact does not exist.
var ErrNotFound = errors.New("artifact not found")

// Storage wraps the key-value database with typed accessors for the ledger
// registries. All mutating methods are safe for concurrent use.
type Storage struct {
	db         db.Database
	globalLock sync.Mutex
}

// New creates a new Storage instance.
func New(db db.Database) *Storage {
	return &Storage{db: db}
}

// Close closes the storage.
func (s *Storage) Close() {
	s.db.Close()
}
