package raydium

import (
	"fmt"

	"go.uber.org/zap"

	"solana-shreds-lab/internal/observability"
)

// Filter prunes a liquidity document down to allow-listed pools.
type Filter struct {
	allow            AllowList
	officialOptional bool
	log              *zap.Logger
}

// NewFilter creates a filter for allow.
func NewFilter(allow AllowList) *Filter {
	return &Filter{
		allow: allow,
		log:   zap.NewNop(),
	}
}

// WithOfficialOptional accepts documents that no longer carry the official
// array, which makes Apply idempotent on its own output.
func (f *Filter) WithOfficialOptional() *Filter {
	f.officialOptional = true
	return f
}

// WithLogger sets the logger.
func (f *Filter) WithLogger(log *zap.Logger) *Filter {
	if log != nil {
		f.log = log
	}
	return f
}

// Apply returns a copy of doc without the official array and with
// unOfficial reduced to pools whose base or quote mint is allow-listed.
// All other keys are kept unchanged. doc is not modified.
func (f *Filter) Apply(doc *Document) (*Document, error) {
	if !doc.Has(KeyOfficial) && !f.officialOptional {
		return nil, fmt.Errorf("%w: missing %q", ErrStructure, KeyOfficial)
	}

	pools, err := doc.Pools()
	if err != nil {
		return nil, err
	}

	kept, err := FilterPools(pools, f.allow)
	if err != nil {
		return nil, err
	}

	out := doc.Clone()
	out.Delete(KeyOfficial)
	if err := out.SetPools(kept); err != nil {
		return nil, err
	}

	observability.RecordPoolsFiltered(len(kept), len(pools)-len(kept))
	f.log.Info("filtered pools",
		zap.Int("total", len(pools)),
		zap.Int("kept", len(kept)),
		zap.Int("allowList", f.allow.Len()))

	return out, nil
}

// FilterPools returns the pools matching allow, in their original order.
func FilterPools(pools []Pool, allow AllowList) ([]Pool, error) {
	kept := make([]Pool, 0)
	for i, p := range pools {
		ok, err := p.Matches(allow)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", KeyUnofficial, i, err)
		}
		if ok {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
