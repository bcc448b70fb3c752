package ledger

import (
	"context"
	"sync"
)

// MemoryStore keeps blocks in process memory. Blocks are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	blocks []Block
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Append(_ context.Context, block Block) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, existing := range ms.blocks {
		if existing.Index == block.Index {
			return ErrDuplicateIndex
		}
	}

	ms.blocks = append(ms.blocks, cloneBlock(block))
	return nil
}

func (ms *MemoryStore) All(_ context.Context) ([]Block, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	blocks := make([]Block, 0, len(ms.blocks))
	for _, block := range ms.blocks {
		blocks = append(blocks, cloneBlock(block))
	}

	return blocks, nil
}

func cloneBlock(block Block) Block {
	transactions := make([]Vote, len(block.Transactions))
	copy(transactions, block.Transactions)
	block.Transactions = transactions
	return block
}
