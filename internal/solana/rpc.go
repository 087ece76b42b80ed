package solana

import "context"

// RPCClient defines the Solana HTTP JSON-RPC calls used before subscribing.
type RPCClient interface {
	// GetHealth returns nil when the node reports itself healthy.
	GetHealth(ctx context.Context) error

	// GetSlot retrieves the current slot at the given commitment.
	GetSlot(ctx context.Context, commitment Commitment) (int64, error)

	// GetAccountInfo retrieves an account. Returns nil if it does not exist.
	GetAccountInfo(ctx context.Context, pubkey string) (*AccountInfo, error)
}

// AccountInfo is the subset of account data the listener inspects.
type AccountInfo struct {
	Lamports   uint64
	Owner      string
	Executable bool
}
