package storage

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Config retrieves the ledger configuration. Returns ErrNotFound if the
// ledger has never been initialized.
func (s *Storage) Config() (*LedgerConfig, error) {
	cfg := &LedgerConfig{}
	if err := s.getArtifact(configPrefix, configKey, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetConfig stores the ledger configuration.
func (s *Storage) SetConfig(cfg *LedgerConfig) error {
	if cfg == nil {
		return fmt.Errorf("nil ledger config")
	}
	return s.setArtifact(configPrefix, configKey, cfg)
}

// IsSubmitter reports whether the address is in the submitter allowlist.
func (s *Storage) IsSubmitter(addr common.Address) (bool, error) {
	return s.hasArtifact(submitterPrefix, addr.Bytes())
}

// SetSubmitter adds the address to the submitter allowlist.
func (s *Storage) SetSubmitter(addr common.Address) error {
	return s.setArtifact(submitterPrefix, addr.Bytes(), true)
}

// RemoveSubmitter removes the address from the submitter allowlist. Returns
// ErrNotFound if the address is not allowlisted.
func (s *Storage) RemoveSubmitter(addr common.Address) error {
	return s.deleteArtifact(submitterPrefix, addr.Bytes())
}

// ListSubmitters returns the allowlisted submitter addresses.
func (s *Storage) ListSubmitters() ([]common.Address, error) {
	keys, err := s.listKeys(submitterPrefix)
	if err != nil {
		return nil, err
	}
	addrs := make([]common.Address, len(keys))
	for i, k := range keys {
		addrs[i] = common.BytesToAddress(k)
	}
	return addrs, nil
}
