package share

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"

	"github.com/olivier-w/quotebox/internal/quote"
)

// DefaultTemplate is the share-intent URL; %s receives the encoded text.
const DefaultTemplate = "https://twitter.com/intent/tweet?text=%s"

const separator = "  –  "

// ErrBadTemplate is returned for templates without exactly one %s.
var ErrBadTemplate = errors.New("share template must contain exactly one %s")

// ValidateTemplate checks that tmpl has a single %s placeholder.
func ValidateTemplate(tmpl string) error {
	if strings.Count(tmpl, "%s") != 1 {
		return ErrBadTemplate
	}
	return nil
}

// Text joins quote text and author the way they are shared.
func Text(q quote.Quote) string {
	return q.Text + separator + q.Author
}

// URL builds the share link for q from tmpl.
func URL(tmpl string, q quote.Quote) string {
	return strings.Replace(tmpl, "%s", Encode(Text(q)), 1)
}

const upperhex = "0123456789ABCDEF"

// Encode percent-encodes s byte-wise, leaving only the characters
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) untouched. Spaces become %20.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// Sharer opens and copies share links.
type Sharer struct {
	template string
	open     func(string) error
	copy     func(string) error
}

// Option configures a Sharer.
type Option func(*Sharer)

// WithOpener replaces the browser launcher.
func WithOpener(fn func(string) error) Option {
	return func(s *Sharer) { s.open = fn }
}

// WithCopier replaces the clipboard writer.
func WithCopier(fn func(string) error) Option {
	return func(s *Sharer) { s.copy = fn }
}

// New returns a Sharer for tmpl, opening links with the system browser and
// copying them with the system clipboard.
func New(tmpl string, opts ...Option) (*Sharer, error) {
	if err := ValidateTemplate(tmpl); err != nil {
		return nil, err
	}
	s := &Sharer{
		template: tmpl,
		open:     browser.OpenURL,
		copy:     clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Link returns the share link for q.
func (s *Sharer) Link(q quote.Quote) string {
	return URL(s.template, q)
}

// Open opens the share link for q.
func (s *Sharer) Open(q quote.Quote) error {
	return s.open(s.Link(q))
}

// Copy writes the share link for q to the clipboard.
func (s *Sharer) Copy(q quote.Quote) error {
	return s.copy(s.Link(q))
}
