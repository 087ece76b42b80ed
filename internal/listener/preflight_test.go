package listener

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"solana-shreds-lab/internal/solana"
)

type fakeRPC struct {
	healthErr  error
	accounts   map[string]*solana.AccountInfo
	slot       int64
	commitment solana.Commitment
}

func (f *fakeRPC) GetHealth(context.Context) error { return f.healthErr }

func (f *fakeRPC) GetSlot(_ context.Context, c solana.Commitment) (int64, error) {
	f.commitment = c
	return f.slot, nil
}

func (f *fakeRPC) GetAccountInfo(_ context.Context, pubkey string) (*solana.AccountInfo, error) {
	return f.accounts[pubkey], nil
}

func TestPreflight(t *testing.T) {
	rpc := &fakeRPC{
		accounts: map[string]*solana.AccountInfo{
			solana.RaydiumAMMV4: {Executable: true},
		},
		slot: 250000000,
	}
	filter := solana.LogsFilter{Mentions: []string{solana.RaydiumAMMV4}}

	slot, err := Preflight(context.Background(), rpc, filter, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, int64(250000000), slot)
	assert.Equal(t, solana.CommitmentProcessed, rpc.commitment)
}

func TestPreflight_Unhealthy(t *testing.T) {
	rpc := &fakeRPC{healthErr: errors.New("node is behind")}

	_, err := Preflight(context.Background(), rpc, solana.LogsFilter{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node is behind")
}

func TestPreflight_MissingAccount(t *testing.T) {
	rpc := &fakeRPC{accounts: map[string]*solana.AccountInfo{}}
	filter := solana.LogsFilter{Mentions: []string{solana.RaydiumAMMV4}}

	_, err := Preflight(context.Background(), rpc, filter, nil)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
