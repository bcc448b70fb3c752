package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	GenesisHash     = "0"
	GenesisPrevHash = "0"
)

// CalculateHash digests the block header, including the difficulty it was
// mined at, and its transactions. The stored hash field is not part of the input.
func CalculateHash(block Block) (string, error) {
	transactions := block.Transactions
	if transactions == nil {
		transactions = []Vote{}
	}

	encoded, err := json.Marshal(transactions)
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}

	record := fmt.Sprintf("%d%s%s%s%d%d",
		block.Index,
		block.Timestamp,
		encoded,
		block.PrevHash,
		block.Nonce,
		block.Difficulty)

	sum := sha256.Sum256([]byte(record))
	return hex.EncodeToString(sum[:]), nil
}

func MeetsDifficulty(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}

	if len(hash) < difficulty {
		return false
	}

	return hash[:difficulty] == strings.Repeat("0", difficulty)
}

const cancelCheckInterval = 1 << 12

// ProofOfWork searches nonces from zero until the block hash meets difficulty,
// then stores the difficulty, nonce and hash on the block.
func ProofOfWork(ctx context.Context, block *Block, difficulty int) error {
	block.Difficulty = difficulty
	block.Nonce = 0
	for {
		if block.Nonce%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		hash, err := CalculateHash(*block)
		if err != nil {
			return err
		}

		if MeetsDifficulty(hash, difficulty) {
			block.Hash = hash
			return nil
		}

		block.Nonce++
	}
}
