package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BreakdownEntry is a single dimension value and its click count.
type BreakdownEntry struct {
	Key   string
	Count int
}

// Breakdown is a count distribution keyed by a categorical dimension
// (browser, OS, country, referrer) or by an ISO date. Entries keep the
// order the service returned them in; for date-keyed breakdowns that order
// is conventionally chronological, and charts and exports preserve it.
type Breakdown struct {
	entries []BreakdownEntry
	index   map[string]int
}

// NewBreakdown builds a breakdown from entries, keeping their order.
// Duplicate keys keep the last count seen.
func NewBreakdown(entries ...BreakdownEntry) *Breakdown {
	b := &Breakdown{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		b.set(e.Key, e.Count)
	}
	return b
}

func (b *Breakdown) set(key string, count int) {
	if i, ok := b.index[key]; ok {
		b.entries[i].Count = count
		return
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, BreakdownEntry{Key: key, Count: count})
}

// Get returns the count for key and whether the key is present.
func (b *Breakdown) Get(key string) (int, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.entries[i].Count, true
}

// Len returns the number of entries.
func (b *Breakdown) Len() int {
	return len(b.entries)
}

// Entries returns a copy of the entries in service order.
func (b *Breakdown) Entries() []BreakdownEntry {
	out := make([]BreakdownEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Keys returns the dimension keys in service order.
func (b *Breakdown) Keys() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Key
	}
	return out
}

// Counts returns the counts in service order.
func (b *Breakdown) Counts() []int {
	out := make([]int, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Count
	}
	return out
}

// Total sums all counts.
func (b *Breakdown) Total() int {
	total := 0
	for _, e := range b.entries {
		total += e.Count
	}
	return total
}

// Map returns the breakdown as a plain map. Order is lost.
func (b *Breakdown) Map() map[string]int {
	out := make(map[string]int, len(b.entries))
	for _, e := range b.entries {
		out[e.Key] = e.Count
	}
	return out
}

// UnmarshalJSON decodes a JSON object of string keys to integer counts,
// preserving the key order of the document. Go maps would shuffle it.
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("breakdown: expected JSON object, got %v", tok)
	}

	b.entries = nil
	b.index = make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("breakdown: key %q: %w", key, err)
		}
		b.set(key, count)
	}

	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the breakdown as a JSON object in service order.
func (b *Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", e.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
