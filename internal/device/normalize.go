package device

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/unicode/norm"
)

// ErrUndecodable is returned by a Normalizer that cannot make sense of its input
var ErrUndecodable = errors.New("name is not in a recognised encoding")

// Normalizer converts a raw device name to canonical text.
// A failed normalization never fails device creation; the raw name is kept.
type Normalizer interface {
	Normalize(raw string) (string, error)
}

// NormalizerFunc adapts a function to the Normalizer interface
type NormalizerFunc func(raw string) (string, error)

// Normalize calls f(raw)
func (f NormalizerFunc) Normalize(raw string) (string, error) { return f(raw) }

// NopNormalizer returns names unchanged
var NopNormalizer Normalizer = NormalizerFunc(func(raw string) (string, error) { return raw, nil })

// DefaultNormalizer produces NFC UTF-8. Names that are not valid UTF-8 are
// decoded as GB18030, which most of the cameras in the field use.
var DefaultNormalizer Normalizer = &CharsetNormalizer{
	Fallbacks: []encoding.Encoding{simplifiedchinese.GB18030},
}

// CharsetNormalizer accepts valid UTF-8 as is and otherwise tries each
// fallback encoding in order
type CharsetNormalizer struct {
	Fallbacks []encoding.Encoding
}

// Normalize implements Normalizer
func (n *CharsetNormalizer) Normalize(raw string) (string, error) {
	if utf8.ValidString(raw) {
		return norm.NFC.String(raw), nil
	}
	for _, enc := range n.Fallbacks {
		decoded, err := enc.NewDecoder().String(raw)
		if err != nil || !utf8.ValidString(decoded) || containsReplacement(decoded) {
			continue
		}
		return norm.NFC.String(decoded), nil
	}
	return raw, ErrUndecodable
}

func containsReplacement(s string) bool {
	for _, r := range s {
		if r == utf8.RuneError {
			return true
		}
	}
	return false
}
