package raydium

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"solana-shreds-lab/internal/solana"
)

const (
	ammAuthority = "5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1"
	usdcMint     = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// poolJSON renders a pool entry whose non-mint accounts reuse valid addresses.
func poolJSON(id, base, quote, authority string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"baseMint": %q,
		"quoteMint": %q,
		"lpMint": %q,
		"authority": %q,
		"openOrders": %q,
		"targetOrders": %q,
		"baseVault": %q,
		"quoteVault": %q,
		"marketProgramId": %q,
		"marketId": %q
	}`, id, base, quote, solana.WrappedSOL, authority, solana.RaydiumAMMV4,
		solana.RaydiumAMMV4, usdcMint, usdcMint, solana.OpenBookV1, solana.OpenBookV1)
}

func poolsFrom(t *testing.T, entries ...string) []Pool {
	t.Helper()
	var pools []Pool
	for _, e := range entries {
		p, err := ParsePool([]byte(e))
		require.NoError(t, err)
		pools = append(pools, p)
	}
	return pools
}

func TestParseAmmKeys(t *testing.T) {
	pools := poolsFrom(t, poolJSON(solana.RaydiumAMMV4, allowedMint, solana.WrappedSOL, ammAuthority))

	keys, err := ParseAmmKeys(pools[0])
	require.NoError(t, err)

	assert.Equal(t, allowedMint, keys.CoinMint.String())
	assert.Equal(t, solana.WrappedSOL, keys.PcMint.String())
	assert.Equal(t, solana.OpenBookV1, keys.MarketProgram.String())
	assert.True(t, keys.AuthorityIsPDA())
}

func TestParseAmmKeys_InvalidAddress(t *testing.T) {
	pools := poolsFrom(t, poolJSON("not base58!", allowedMint, solana.WrappedSOL, ammAuthority))

	_, err := ParseAmmKeys(pools[0])
	assert.True(t, errors.Is(err, ErrStructure), "got %v", err)
}

func TestIndexByMint(t *testing.T) {
	other := "3B5wuUrMEi5yATD7on46hKfej3pfmd7t1RKgrsN3pump"
	pools := poolsFrom(t,
		poolJSON(solana.RaydiumAMMV4, allowedMint, solana.WrappedSOL, ammAuthority),
		poolJSON(solana.OpenBookV1, solana.WrappedSOL, usdcMint, ammAuthority),
		poolJSON(solana.WrappedSOL, solana.WrappedSOL, allowedMint, ammAuthority),
		// Both mints of interest: filed under base
		poolJSON(usdcMint, other, allowedMint, usdcMint),
	)

	mints := NewAllowList(allowedMint, other, "HiHULk2EEF6kGfMar19QywmaTJLUr3LA1em8DyW1pump")
	idx, err := IndexByMint(pools, mints, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.Len(t, idx.Pools[allowedMint], 2)
	assert.Equal(t, solana.RaydiumAMMV4, idx.Pools[allowedMint][0].Pool.String())
	assert.Equal(t, solana.WrappedSOL, idx.Pools[allowedMint][1].Pool.String())

	require.Len(t, idx.Pools[other], 1)
	assert.Equal(t, usdcMint, idx.Pools[other][0].Pool.String())

	assert.Equal(t, []string{"HiHULk2EEF6kGfMar19QywmaTJLUr3LA1em8DyW1pump"}, idx.Missing)

	// USDC mint is a regular keypair address, so it cannot be an AMM authority
	assert.Equal(t, []string{usdcMint}, idx.SuspectAuthority)
}

func TestIndexByMint_SkipsUninterestingMalformedPools(t *testing.T) {
	pools := poolsFrom(t, `{"baseMint":"X","quoteMint":"Y","id":"garbage"}`)

	idx, err := IndexByMint(pools, DefaultAllowList(), nil)
	require.NoError(t, err)
	assert.Empty(t, idx.Pools)
	assert.Len(t, idx.Missing, 8)
}
