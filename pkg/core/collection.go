package core

import "fmt"

// Collection is the in-memory list backing one file. It is the single source
// of truth during a session.
type Collection struct {
	Kind    Kind
	records []Record
}

// NewCollection wraps records of the given kind.
func NewCollection(kind Kind, records []Record) *Collection {
	return &Collection{Kind: kind, records: records}
}

func (c *Collection) Len() int { return len(c.records) }

// Records returns the backing slice. Callers must not modify it.
func (c *Collection) Records() []Record { return c.records }

// At returns the record at index i.
func (c *Collection) At(i int) (Record, error) {
	if i < 0 || i >= len(c.records) {
		return Record{}, fmt.Errorf("%d of %d: %w", i, len(c.records), ErrIndexOutOfRange)
	}
	return c.records[i], nil
}

// Replace swaps the record at index i.
func (c *Collection) Replace(i int, r Record) error {
	if i < 0 || i >= len(c.records) {
		return fmt.Errorf("%d of %d: %w", i, len(c.records), ErrIndexOutOfRange)
	}
	c.records[i] = r
	return nil
}

// Append adds r at the end and returns its index.
func (c *Collection) Append(r Record) int {
	c.records = append(c.records, r)
	return len(c.records) - 1
}

// Reset replaces the whole content.
func (c *Collection) Reset(records []Record) { c.records = records }

// HasID reports whether any record carries the given id.
func (c *Collection) HasID(id string) bool {
	for _, r := range c.records {
		if rid, ok := r.ID(); ok && rid == id {
			return true
		}
	}
	return false
}

// Label is the list label of the record at i.
func (c *Collection) Label(i int) string {
	if i < 0 || i >= len(c.records) {
		return ""
	}
	return c.Kind.Label(c.records[i])
}

// Labels returns every list label in order.
func (c *Collection) Labels() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = c.Kind.Label(r)
	}
	return out
}
