package oracle

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vocdoni/grantz/crypto/fhe"
	"github.com/vocdoni/grantz/types"
)

// MockBridge implements Bridge and AnswerSource against a fhe.MockEngine.
// It issues uuid-based request ids and computes answers with the engine's
// decryption key. Answers are held until Deliver is called, so tests can
// interleave ledger operations between a request and its callback the same
// way a real oracle would.
type MockBridge struct {
	engine  *fhe.MockEngine
	mu      sync.Mutex
	pending []*Answer
	answers chan *Answer
}

// NewMockBridge creates a MockBridge answering with the given engine.
func NewMockBridge(engine *fhe.MockEngine) *MockBridge {
	return &MockBridge{
		engine:  engine,
		answers: make(chan *Answer, 16),
	}
}

// RequestDecryption decrypts the first handle with the mock engine and
// queues the answer for later delivery. It returns a fresh request id.
func (m *MockBridge) RequestDecryption(handles []fhe.Handle) (types.HexBytes, error) {
	if len(handles) == 0 {
		return nil, fmt.Errorf("no handles to decrypt")
	}
	cleartext, proof, err := m.engine.Decrypt(handles[0])
	if err != nil {
		return nil, fmt.Errorf("mock oracle decryption: %w", err)
	}
	id := uuid.New()
	answer := &Answer{
		RequestID: types.HexBytes(id[:]),
		Cleartext: cleartext,
		Proof:     proof,
	}
	m.mu.Lock()
	m.pending = append(m.pending, answer)
	m.mu.Unlock()
	return answer.RequestID, nil
}

// Deliver pushes all queued answers to the Answers channel and returns how
// many were delivered.
func (m *MockBridge) Deliver() int {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, a := range pending {
		m.answers <- a
	}
	return len(pending)
}

// Pending returns the answers queued but not yet delivered.
func (m *MockBridge) Pending() []*Answer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Answer{}, m.pending...)
}

// Answers implements AnswerSource.
func (m *MockBridge) Answers() <-chan *Answer {
	return m.answers
}
