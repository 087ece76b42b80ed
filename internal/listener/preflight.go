package listener

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"solana-shreds-lab/internal/solana"
)

// ErrAccountNotFound is returned when a mentioned account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// Preflight checks the RPC node before subscribing: the node must be
// healthy and every mentioned account must exist. Returns the current slot.
func Preflight(ctx context.Context, rpc solana.RPCClient, filter solana.LogsFilter, log *zap.Logger) (int64, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := rpc.GetHealth(ctx); err != nil {
		return 0, fmt.Errorf("health check: %w", err)
	}

	for _, m := range filter.Mentions {
		info, err := rpc.GetAccountInfo(ctx, m)
		if err != nil {
			return 0, fmt.Errorf("get account %s: %w", m, err)
		}
		if info == nil {
			return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, m)
		}
		if !info.Executable {
			log.Warn("mentioned account is not a program", zap.String("account", m), zap.String("owner", info.Owner))
		}
	}

	commitment := filter.Commitment
	if commitment == "" {
		commitment = solana.CommitmentProcessed
	}
	slot, err := rpc.GetSlot(ctx, commitment)
	if err != nil {
		return 0, fmt.Errorf("get slot: %w", err)
	}

	log.Info("rpc node ready", zap.Int64("slot", slot), zap.String("commitment", string(commitment)))
	return slot, nil
}
