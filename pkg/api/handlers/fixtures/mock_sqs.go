package fixtures

import (
	"context"
	"sync"

	"github.com/Roll-Play/votechain/pkg/ledger"
)

// MockSqs records published blocks instead of sending them to a queue.
type MockSqs struct {
	mu     sync.Mutex
	Blocks []ledger.Block
	Err    error
}

func (s *MockSqs) PublishBlock(_ context.Context, block ledger.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	s.Blocks = append(s.Blocks, block)
	return nil
}

func (s *MockSqs) Published() []ledger.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]ledger.Block(nil), s.Blocks...)
}
