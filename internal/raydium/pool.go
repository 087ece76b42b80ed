package raydium

import (
	"encoding/json"
	"fmt"
)

// Pool is one entry of the unOfficial array.
// Only the mints are interpreted; Raw is written back unchanged.
// A mint that is null or not a string is kept as "" and never matches.
type Pool struct {
	BaseMint  string
	QuoteMint string
	Raw       json.RawMessage

	noBaseMint  bool
	noQuoteMint bool
}

type poolMints struct {
	BaseMint  *string `json:"baseMint"`
	QuoteMint *string `json:"quoteMint"`
}

// ParsePool extracts the mints of a raw pool entry. The entry must be an
// object; missing mints are only reported once Matches needs them.
func ParsePool(raw json.RawMessage) (Pool, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Pool{}, fmt.Errorf("%w: pool entry: %v", ErrStructure, err)
	}
	if fields == nil {
		return Pool{}, fmt.Errorf("%w: pool entry is null", ErrStructure)
	}

	p := Pool{Raw: raw}
	p.BaseMint, p.noBaseMint = mintField(fields, "baseMint")
	p.QuoteMint, p.noQuoteMint = mintField(fields, "quoteMint")
	return p, nil
}

// mintField returns the string value of key and whether key is absent.
func mintField(fields map[string]json.RawMessage, key string) (string, bool) {
	v, ok := fields[key]
	if !ok {
		return "", true
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, false
}

// MarshalJSON implements json.Marshaler.
func (p Pool) MarshalJSON() ([]byte, error) {
	if len(p.Raw) == 0 {
		return json.Marshal(poolMints{BaseMint: &p.BaseMint, QuoteMint: &p.QuoteMint})
	}
	return p.Raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pool) UnmarshalJSON(data []byte) error {
	raw := make(json.RawMessage, len(data))
	copy(raw, data)

	parsed, err := ParsePool(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Matches reports whether either mint of the pool is allow-listed. The
// base mint is checked first; the quote mint is only required when the
// base mint does not match.
func (p Pool) Matches(allow AllowList) (bool, error) {
	if p.noBaseMint {
		return false, fmt.Errorf("%w: pool entry missing baseMint", ErrStructure)
	}
	if allow.Contains(p.BaseMint) {
		return true, nil
	}
	if p.noQuoteMint {
		return false, fmt.Errorf("%w: pool entry missing quoteMint", ErrStructure)
	}
	return allow.Contains(p.QuoteMint), nil
}
