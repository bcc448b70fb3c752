package fixtures

import (
	"context"
	"time"

	"github.com/Roll-Play/votechain/pkg/ledger"
)

const TestDifficulty = 1

var FixedTime = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func CreateChain(blockSize int, publisher ledger.Publisher) *ledger.Chain {
	chain, err := ledger.NewChain(context.Background(), ledger.NewMemoryStore(), ledger.Options{
		Difficulty: TestDifficulty,
		BlockSize:  blockSize,
		Publisher:  publisher,
		Now:        func() time.Time { return FixedTime },
	})
	if err != nil {
		panic(err)
	}

	return chain
}

func CreateVote(voterID, candidateID string) ledger.Vote {
	return ledger.Vote{
		VoterID:     voterID,
		CandidateID: candidateID,
	}
}
