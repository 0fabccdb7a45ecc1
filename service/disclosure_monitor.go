package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vocdoni/grantz/ledger"
	"github.com/vocdoni/grantz/oracle"
	"go.vocdoni.io/dvote/log"
)

// DisclosureMonitor is a service that receives oracle answers from the
// bridge and feeds them to the ledger callback handler. The oracle may
// answer never, late, or repeatedly; the ledger enforces the protocol
// invariants, the monitor only moves messages and logs rejections.
type DisclosureMonitor struct {
	source oracle.AnswerSource
	ledger *ledger.Ledger
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewDisclosureMonitor creates a new DisclosureMonitor service.
func NewDisclosureMonitor(source oracle.AnswerSource, lgr *ledger.Ledger) *DisclosureMonitor {
	return &DisclosureMonitor{
		source: source,
		ledger: lgr,
	}
}

// Start begins delivering oracle answers. It returns an error if the
// service is already running.
func (dm *DisclosureMonitor) Start(ctx context.Context) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.cancel != nil {
		return fmt.Errorf("service already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	dm.cancel = cancel

	go dm.deliverAnswers(ctx)
	return nil
}

// Stop halts the delivery of oracle answers.
func (dm *DisclosureMonitor) Stop() {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.cancel != nil {
		dm.cancel()
		dm.cancel = nil
	}
}

func (dm *DisclosureMonitor) deliverAnswers(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case answer := <-dm.source.Answers():
			if answer == nil {
				continue
			}
			err := dm.ledger.HandleDisclosure(answer.RequestID, answer.Cleartext, answer.Proof)
			switch {
			case err == nil:
				log.Debugw("oracle answer finalized", "request", answer.RequestID.String())
			case errors.Is(err, ledger.ErrReplayAttempt),
				errors.Is(err, ledger.ErrStateMismatch),
				errors.Is(err, ledger.ErrUnknownRequest),
				errors.Is(err, ledger.ErrDecryptionFailed):
				log.Warnw("oracle answer rejected",
					"request", answer.RequestID.String(), "reason", err.Error())
			default:
				log.Errorw(err, "failed to process oracle answer")
			}
		}
	}
}
