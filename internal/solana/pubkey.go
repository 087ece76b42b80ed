package solana

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PubkeySize is the length of an ed25519 public key / account address.
const PubkeySize = 32

// Well-known program addresses.
const (
	RaydiumAMMV4 = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	OpenBookV1   = "srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX"
	WrappedSOL   = "So11111111111111111111111111111111111111112"
)

// ErrInvalidPubkey is returned when an address is not a base58 encoded 32-byte key.
var ErrInvalidPubkey = errors.New("invalid pubkey")

// Pubkey is a Solana account address.
type Pubkey [PubkeySize]byte

// ParsePubkey decodes a base58 address.
func ParsePubkey(s string) (Pubkey, error) {
	var pk Pubkey
	if s == "" {
		return pk, fmt.Errorf("%w: empty", ErrInvalidPubkey)
	}

	b, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %q: %v", ErrInvalidPubkey, s, err)
	}
	if len(b) != PubkeySize {
		return pk, fmt.Errorf("%w: %q decodes to %d bytes", ErrInvalidPubkey, s, len(b))
	}

	copy(pk[:], b)
	return pk, nil
}

// MustParsePubkey is like ParsePubkey but panics on error.
// Only for compile-time constants.
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// String returns the base58 encoding.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// IsZero reports whether p is the all-zero key.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// IsOnCurve reports whether p is a valid ed25519 point.
// Program derived addresses are always off the curve.
func (p Pubkey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}
