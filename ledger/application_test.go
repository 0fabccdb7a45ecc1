package ledger

import (
	"math/big"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/grantz/crypto/fhe"
)

func TestSubmit(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)

	amount := tl.engine.Encrypt(big.NewInt(100))
	score := tl.engine.Encrypt(big.NewInt(4))

	// only allowlisted submitters may submit
	c.Assert(tl.Submit(strangerAddr, 1, amount, score), qt.ErrorIs, ErrNotSubmitter)
	c.Assert(tl.AddSubmitter(ownerAddr, submitterAddr), qt.IsNil)

	// the batch must be open
	c.Assert(tl.Submit(submitterAddr, 1, amount, score), qt.ErrorIs, ErrBatchNotOpen)
	c.Assert(tl.OpenBatch(ownerAddr, 1), qt.IsNil)

	// both input handles must be initialized
	c.Assert(tl.Submit(submitterAddr, 1, fhe.ZeroHandle(), score), qt.ErrorIs, ErrInvalidBatch)
	c.Assert(tl.Submit(submitterAddr, 1, amount, fhe.ZeroHandle()), qt.ErrorIs, ErrInvalidBatch)

	c.Assert(tl.Submit(submitterAddr, 1, amount, score), qt.IsNil)

	app, err := tl.Application(1)
	c.Assert(err, qt.IsNil)
	c.Assert(app.Submitter, qt.Equals, submitterAddr)
	c.Assert(app.EncryptedAmount.Equal(amount), qt.IsTrue)
	c.Assert(app.EncryptedScore.Equal(score), qt.IsTrue)
	c.Assert(app.EncryptedGrantAmount.IsInitialized(), qt.IsFalse)
}

func TestSubmitOverwriteResetsGrant(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)

	c.Assert(tl.AddSubmitter(ownerAddr, submitterAddr), qt.IsNil)
	c.Assert(tl.OpenBatch(ownerAddr, 1), qt.IsNil)
	c.Assert(tl.Submit(submitterAddr, 1,
		tl.engine.Encrypt(big.NewInt(100)), tl.engine.Encrypt(big.NewInt(4))), qt.IsNil)
	c.Assert(tl.DeriveGrantAmount(ownerAddr, 1), qt.IsNil)

	app, err := tl.Application(1)
	c.Assert(err, qt.IsNil)
	c.Assert(app.EncryptedGrantAmount.IsInitialized(), qt.IsTrue)

	// overwriting the application drops the stale derived handle
	tl.clock.Advance(time.Minute)
	c.Assert(tl.Submit(submitterAddr, 1,
		tl.engine.Encrypt(big.NewInt(50)), tl.engine.Encrypt(big.NewInt(2))), qt.IsNil)

	app, err = tl.Application(1)
	c.Assert(err, qt.IsNil)
	c.Assert(app.EncryptedGrantAmount.IsInitialized(), qt.IsFalse)
}

func TestDeriveGrantAmount(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)

	// no application yet
	c.Assert(tl.DeriveGrantAmount(ownerAddr, 1), qt.ErrorIs, ErrInvalidBatch)

	c.Assert(tl.AddSubmitter(ownerAddr, submitterAddr), qt.IsNil)
	c.Assert(tl.OpenBatch(ownerAddr, 1), qt.IsNil)
	c.Assert(tl.Submit(submitterAddr, 1,
		tl.engine.Encrypt(big.NewInt(100)), tl.engine.Encrypt(big.NewInt(4))), qt.IsNil)

	c.Assert(tl.DeriveGrantAmount(strangerAddr, 1), qt.ErrorIs, ErrNotOwner)
	c.Assert(tl.DeriveGrantAmount(ownerAddr, 1), qt.IsNil)

	app, err := tl.Application(1)
	c.Assert(err, qt.IsNil)
	cleartext, _, err := tl.engine.Decrypt(app.EncryptedGrantAmount)
	c.Assert(err, qt.IsNil)
	c.Assert(new(big.Int).SetBytes(cleartext).Int64(), qt.Equals, int64(400))

	// re-deriving replaces the handle and still opens to the product
	tl.clock.Advance(time.Minute)
	c.Assert(tl.DeriveGrantAmount(ownerAddr, 1), qt.IsNil)
	rederived, err := tl.Application(1)
	c.Assert(err, qt.IsNil)
	c.Assert(rederived.EncryptedGrantAmount.Equal(app.EncryptedGrantAmount), qt.IsFalse)
	cleartext, _, err = tl.engine.Decrypt(rederived.EncryptedGrantAmount)
	c.Assert(err, qt.IsNil)
	c.Assert(new(big.Int).SetBytes(cleartext).Int64(), qt.Equals, int64(400))
}

func TestDeriveZeroAmount(t *testing.T) {
	c := qt.New(t)
	tl := newTestLedger(t)

	c.Assert(tl.AddSubmitter(ownerAddr, submitterAddr), qt.IsNil)
	c.Assert(tl.OpenBatch(ownerAddr, 1), qt.IsNil)
	c.Assert(tl.Submit(submitterAddr, 1,
		tl.engine.Encrypt(big.NewInt(0)), tl.engine.Encrypt(big.NewInt(7))), qt.IsNil)
	c.Assert(tl.DeriveGrantAmount(ownerAddr, 1), qt.IsNil)

	app, err := tl.Application(1)
	c.Assert(err, qt.IsNil)
	cleartext, _, err := tl.engine.Decrypt(app.EncryptedGrantAmount)
	c.Assert(err, qt.IsNil)
	c.Assert(new(big.Int).SetBytes(cleartext).Sign(), qt.Equals, 0)
}
