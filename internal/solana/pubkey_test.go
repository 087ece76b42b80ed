package solana

import (
	"errors"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePubkey_RoundTrip(t *testing.T) {
	for _, addr := range []string{RaydiumAMMV4, OpenBookV1, WrappedSOL} {
		pk, err := ParsePubkey(addr)
		require.NoError(t, err, addr)
		assert.Equal(t, addr, pk.String())
		assert.False(t, pk.IsZero())
	}
}

func TestParsePubkey_Invalid(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{"empty", ""},
		{"bad alphabet", "0OIl"},
		{"too short", "3xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePubkey(tt.addr)
			assert.True(t, errors.Is(err, ErrInvalidPubkey), "got %v", err)
		})
	}
}

func TestPubkey_IsOnCurve(t *testing.T) {
	var generator Pubkey
	copy(generator[:], edwards25519.NewGeneratorPoint().Bytes())
	assert.True(t, generator.IsOnCurve())

	// y = 2 has no matching x on the curve
	var offCurve Pubkey
	offCurve[0] = 2
	assert.False(t, offCurve.IsOnCurve())

	// Raydium AMM v4 authority is a program derived address
	authority := MustParsePubkey("5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1")
	assert.False(t, authority.IsOnCurve())
}

func TestMustParsePubkey_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParsePubkey("not-a-key") })
}
