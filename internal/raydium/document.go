package raydium

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Top-level keys of the Raydium liquidity document.
const (
	KeyOfficial   = "official"
	KeyUnofficial = "unOfficial"
)

// Document is the Raydium liquidity JSON object.
// Top-level keys keep their original order; values are kept verbatim.
type Document struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]json.RawMessage)}
}

// DecodeDocument reads a single JSON object from r.
func DecodeDocument(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top level is not an object", ErrStructure)
	}

	doc := NewDocument()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("read key: unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("read value of %q: %w", key, err)
		}
		doc.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read document end: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read document: trailing data after object")
	}

	return doc, nil
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the raw value of key.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (d *Document) Set(key string, value json.RawMessage) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes key if present.
func (d *Document) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a copy that shares no key slice or map with d.
func (d *Document) Clone() *Document {
	c := NewDocument()
	for _, k := range d.keys {
		c.Set(k, d.values[k])
	}
	return c
}

// Pools decodes the unOfficial array.
func (d *Document) Pools() ([]Pool, error) {
	raw, ok := d.values[KeyUnofficial]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrStructure, KeyUnofficial)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %q is not an array: %v", ErrStructure, KeyUnofficial, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: %q is null", ErrStructure, KeyUnofficial)
	}

	pools := make([]Pool, 0, len(entries))
	for i, entry := range entries {
		p, err := ParsePool(entry)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", KeyUnofficial, i, err)
		}
		pools = append(pools, p)
	}
	return pools, nil
}

// SetPools replaces the unOfficial array.
func (d *Document) SetPools(pools []Pool) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, p := range pools {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := p.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode pool %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')

	d.Set(KeyUnofficial, buf.Bytes())
	return nil
}

// MarshalJSON implements json.Marshaler. Keys are written in document order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(d.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode writes the document with 2-space indentation.
func (d *Document) Encode(w io.Writer) error {
	compact, err := d.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return fmt.Errorf("indent document: %w", err)
	}
	out.WriteByte('\n')

	_, err = w.Write(out.Bytes())
	return err
}

// LoadFile reads a document from path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// WriteFile replaces path with doc. The document is written to a temporary
// file in the same directory and renamed over path, so a failed write
// leaves the previous file in place.
func WriteFile(path string, doc *Document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := doc.Encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if info, err := os.Stat(path); err == nil {
		if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
			return fmt.Errorf("chmod %s: %w", tmpName, err)
		}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
