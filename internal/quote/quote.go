package quote

import "strings"

// Quote is a single quotation as served by the quote API.
// Values are never mutated after a batch is fetched.
type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

// IsZero reports whether q carries no text.
func (q Quote) IsZero() bool {
	return strings.TrimSpace(q.Text) == ""
}

// Batch is the fixed set of quotes fetched for a session.
type Batch []Quote

// Clone returns a copy of b that shares no backing array with it.
func (b Batch) Clone() Batch {
	if b == nil {
		return nil
	}
	out := make(Batch, len(b))
	copy(out, b)
	return out
}
