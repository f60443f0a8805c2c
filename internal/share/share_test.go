package share

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/quotebox/internal/quote"
)

func TestEncodeMatchesURIComponent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "abcXYZ019", want: "abcXYZ019"},
		{in: "a b", want: "a%20b"},
		{in: "-_.!~*'()", want: "-_.!~*'()"},
		{in: "&=+/?#,;:@$", want: "%26%3D%2B%2F%3F%23%2C%3B%3A%40%24"},
		{in: "–", want: "%E2%80%93"},
		{in: "100%", want: "100%25"},
		{in: "é", want: "%C3%A9"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Encode(tc.in), "Encode(%q)", tc.in)
	}
}

func TestURL(t *testing.T) {
	q := quote.Quote{Text: "Say my name.", Author: "Walter White"}
	got := URL(DefaultTemplate, q)
	assert.Equal(t,
		"https://twitter.com/intent/tweet?text=Say%20my%20name.%20%20%E2%80%93%20%20Walter%20White",
		got,
	)
}

func TestURLTemplateWithOtherPercentSigns(t *testing.T) {
	q := quote.Quote{Text: "x", Author: "y"}
	got := URL("https://example.com/share?via=a%20b&text=%s", q)
	assert.Equal(t, "https://example.com/share?via=a%20b&text=x%20%20%E2%80%93%20%20y", got)
}

func TestValidateTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate(DefaultTemplate))
	assert.ErrorIs(t, ValidateTemplate("https://example.com"), ErrBadTemplate)
	assert.ErrorIs(t, ValidateTemplate("%s%s"), ErrBadTemplate)
}

func TestSharerUsesInjectedFuncs(t *testing.T) {
	var opened, copied string
	s, err := New(DefaultTemplate,
		WithOpener(func(u string) error { opened = u; return nil }),
		WithCopier(func(u string) error { copied = u; return errors.New("no clipboard") }),
	)
	require.NoError(t, err)

	q := quote.Quote{Text: "Yeah, science!", Author: "Jesse Pinkman"}
	require.NoError(t, s.Open(q))
	assert.Equal(t, s.Link(q), opened)

	assert.EqualError(t, s.Copy(q), "no clipboard")
	assert.Equal(t, s.Link(q), copied)
}

func TestNewRejectsBadTemplate(t *testing.T) {
	_, err := New("https://example.com/no-placeholder")
	assert.ErrorIs(t, err, ErrBadTemplate)
}
