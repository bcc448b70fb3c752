package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	blockmodel "github.com/Roll-Play/votechain/pkg/models/block"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Block = blockmodel.BlockRecord
type Vote = blockmodel.VoteRecord

var (
	ErrDuplicateIndex = errors.New("block index already stored")
	ErrEmptyChain     = errors.New("chain has no genesis block")
)

type BlockStore interface {
	Append(ctx context.Context, block Block) error
	All(ctx context.Context) ([]Block, error)
}

type Publisher interface {
	PublishBlock(ctx context.Context, block Block) error
}

type Options struct {
	Difficulty int
	BlockSize  int
	Publisher  Publisher
	Logger     *zap.Logger
	Now        func() time.Time
}

// Result holds the accepted vote and, when the vote completed a batch, the
// block that was mined for it.
type Result struct {
	Vote  Vote
	Block *Block
}

type Stats struct {
	TotalBlocks  int `json:"totalBlocks"`
	TotalVotes   int `json:"totalVotes"`
	PendingVotes int `json:"pendingVotes"`
}

type Chain struct {
	mu         sync.Mutex
	store      BlockStore
	pending    []Vote
	difficulty int
	blockSize  int
	publisher  Publisher
	logger     *zap.Logger
	now        func() time.Time
}

func NewChain(ctx context.Context, store BlockStore, opts Options) (*Chain, error) {
	if opts.BlockSize < 1 {
		opts.BlockSize = 1
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	chain := &Chain{
		store:      store,
		pending:    []Vote{},
		difficulty: opts.Difficulty,
		blockSize:  opts.BlockSize,
		publisher:  opts.Publisher,
		logger:     opts.Logger,
		now:        opts.Now,
	}

	blocks, err := store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}

	if len(blocks) == 0 {
		if err := store.Append(ctx, chain.genesisBlock()); err != nil {
			return nil, fmt.Errorf("store genesis block: %w", err)
		}
	}

	return chain, nil
}

func (c *Chain) genesisBlock() Block {
	return Block{
		Index:        0,
		Timestamp:    c.timestamp(),
		Transactions: []Vote{},
		Hash:         GenesisHash,
		PrevHash:     GenesisPrevHash,
		Nonce:        0,
	}
}

func (c *Chain) timestamp() string {
	return c.now().UTC().Format(time.RFC3339Nano)
}

func (c *Chain) Blocks(ctx context.Context) ([]Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.All(ctx)
}

// AddVote stamps the vote and queues it. Once the pending pool reaches the
// block size a block is mined over the pool and appended to the chain.
// Mining ignores cancellation of ctx so a dropped caller cannot discard the
// votes already queued by others.
func (c *Chain) AddVote(ctx context.Context, vote Vote) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)

	vote.ID = uuid.NewString()
	vote.Timestamp = c.now().UTC().Truncate(time.Millisecond)

	pending := append(c.pending, vote)
	if len(pending) < c.blockSize {
		c.pending = pending
		return Result{Vote: vote}, nil
	}

	block, err := c.mine(ctx, pending)
	if err != nil {
		return Result{}, err
	}

	c.pending = []Vote{}

	if c.publisher != nil {
		if err := c.publisher.PublishBlock(ctx, block); err != nil {
			c.logger.Warn("Failed to publish mined block",
				zap.Int("index", block.Index),
				zap.Error(err),
			)
		}
	}

	return Result{Vote: vote, Block: &block}, nil
}

func (c *Chain) mine(ctx context.Context, votes []Vote) (Block, error) {
	blocks, err := c.store.All(ctx)
	if err != nil {
		return Block{}, fmt.Errorf("load blocks: %w", err)
	}

	if len(blocks) == 0 {
		return Block{}, ErrEmptyChain
	}

	transactions := make([]Vote, len(votes))
	copy(transactions, votes)

	tip := blocks[len(blocks)-1]
	block := Block{
		Index:        tip.Index + 1,
		Timestamp:    c.timestamp(),
		Transactions: transactions,
		PrevHash:     tip.Hash,
	}

	start := time.Now()
	if err := ProofOfWork(ctx, &block, c.difficulty); err != nil {
		return Block{}, fmt.Errorf("mine block %d: %w", block.Index, err)
	}

	if err := c.store.Append(ctx, block); err != nil {
		return Block{}, fmt.Errorf("store block %d: %w", block.Index, err)
	}

	c.logger.Debug("Mined block",
		zap.Int("index", block.Index),
		zap.Int("nonce", block.Nonce),
		zap.Int("votes", len(block.Transactions)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return block, nil
}

// Validate recomputes every block hash after genesis and checks the links
// between neighbouring blocks. Each block is held to the difficulty recorded
// on it, not the chain's current setting.
func (c *Chain) Validate(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blocks, err := c.store.All(ctx)
	if err != nil {
		return false, fmt.Errorf("load blocks: %w", err)
	}

	return ValidateBlocks(blocks)
}

func ValidateBlocks(blocks []Block) (bool, error) {
	for i := 1; i < len(blocks); i++ {
		current := blocks[i]
		previous := blocks[i-1]

		hash, err := CalculateHash(current)
		if err != nil {
			return false, err
		}

		if current.Hash != hash {
			return false, nil
		}

		if current.PrevHash != previous.Hash {
			return false, nil
		}

		if !MeetsDifficulty(current.Hash, current.Difficulty) {
			return false, nil
		}
	}

	return true, nil
}

func (c *Chain) Stats(ctx context.Context) (Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blocks, err := c.store.All(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load blocks: %w", err)
	}

	totalVotes := 0
	for _, block := range blocks {
		totalVotes += len(block.Transactions)
	}

	return Stats{
		TotalBlocks:  len(blocks),
		TotalVotes:   totalVotes,
		PendingVotes: len(c.pending),
	}, nil
}
