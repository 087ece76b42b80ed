package raydium

import "errors"

// ErrStructure is returned when the liquidity document or one of its pool
// entries is missing a required field.
var ErrStructure = errors.New("invalid document structure")
