package raydium

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"solana-shreds-lab/internal/observability"
	"solana-shreds-lab/internal/solana"
)

// AmmKeys holds the accounts needed to build a swap against an AMM v4 pool.
type AmmKeys struct {
	Pool          solana.Pubkey
	CoinMint      solana.Pubkey
	PcMint        solana.Pubkey
	Authority     solana.Pubkey
	TargetOrders  solana.Pubkey
	CoinVault     solana.Pubkey
	PcVault       solana.Pubkey
	LpMint        solana.Pubkey
	OpenOrders    solana.Pubkey
	MarketProgram solana.Pubkey
	Market        solana.Pubkey
}

// AuthorityIsPDA reports whether the pool authority is off the ed25519
// curve, as every program derived authority is.
func (k AmmKeys) AuthorityIsPDA() bool {
	return !k.Authority.IsOnCurve()
}

type poolAccounts struct {
	ID              string `json:"id"`
	BaseMint        string `json:"baseMint"`
	QuoteMint       string `json:"quoteMint"`
	Authority       string `json:"authority"`
	TargetOrders    string `json:"targetOrders"`
	BaseVault       string `json:"baseVault"`
	QuoteVault      string `json:"quoteVault"`
	LpMint          string `json:"lpMint"`
	OpenOrders      string `json:"openOrders"`
	MarketProgramID string `json:"marketProgramId"`
	MarketID        string `json:"marketId"`
}

// ParseAmmKeys decodes every account address of a pool entry.
func ParseAmmKeys(p Pool) (AmmKeys, error) {
	var a poolAccounts
	if err := json.Unmarshal(p.Raw, &a); err != nil {
		return AmmKeys{}, fmt.Errorf("%w: pool accounts: %v", ErrStructure, err)
	}

	var keys AmmKeys
	fields := []struct {
		name string
		addr string
		dst  *solana.Pubkey
	}{
		{"id", a.ID, &keys.Pool},
		{"baseMint", a.BaseMint, &keys.CoinMint},
		{"quoteMint", a.QuoteMint, &keys.PcMint},
		{"authority", a.Authority, &keys.Authority},
		{"targetOrders", a.TargetOrders, &keys.TargetOrders},
		{"baseVault", a.BaseVault, &keys.CoinVault},
		{"quoteVault", a.QuoteVault, &keys.PcVault},
		{"lpMint", a.LpMint, &keys.LpMint},
		{"openOrders", a.OpenOrders, &keys.OpenOrders},
		{"marketProgramId", a.MarketProgramID, &keys.MarketProgram},
		{"marketId", a.MarketID, &keys.Market},
	}
	for _, f := range fields {
		pk, err := solana.ParsePubkey(f.addr)
		if err != nil {
			return AmmKeys{}, fmt.Errorf("%w: %s: %v", ErrStructure, f.name, err)
		}
		*f.dst = pk
	}

	return keys, nil
}

// Index groups pools by mint of interest.
type Index struct {
	// Pools maps a mint of interest to its pools, in document order.
	Pools map[string][]AmmKeys
	// Missing lists mints of interest without any pool.
	Missing []string
	// SuspectAuthority lists pool ids whose authority is on the curve.
	SuspectAuthority []string
}

// IndexByMint builds an Index over pools for mints. A pool is filed under
// its base mint when that is of interest, otherwise under its quote mint.
func IndexByMint(pools []Pool, mints AllowList, log *zap.Logger) (*Index, error) {
	if log == nil {
		log = zap.NewNop()
	}

	idx := &Index{Pools: make(map[string][]AmmKeys)}
	for i, p := range pools {
		var mint string
		switch {
		case mints.Contains(p.BaseMint):
			mint = p.BaseMint
		case mints.Contains(p.QuoteMint):
			mint = p.QuoteMint
		default:
			continue
		}

		keys, err := ParseAmmKeys(p)
		if err != nil {
			return nil, fmt.Errorf("pool %d: %w", i, err)
		}
		if !keys.AuthorityIsPDA() {
			idx.SuspectAuthority = append(idx.SuspectAuthority, keys.Pool.String())
		}
		idx.Pools[mint] = append(idx.Pools[mint], keys)
	}

	for _, m := range mints.Mints() {
		if _, ok := idx.Pools[m]; !ok {
			idx.Missing = append(idx.Missing, m)
		}
	}

	observability.UpdateMintsMissing(len(idx.Missing))
	if len(idx.Missing) > 0 {
		log.Warn("not all mints found in pool list", zap.Strings("missing", idx.Missing))
	}
	if len(idx.SuspectAuthority) > 0 {
		log.Warn("pool authority is not a program derived address", zap.Strings("pools", idx.SuspectAuthority))
	}

	return idx, nil
}
