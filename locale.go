package datatable

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NumberParser reads integers the way a user of a given locale types them.
// Separators are learned from the locale's own formatting rather than a
// hand-kept table, so "1,000" parses in English and "1.000" in German.
type NumberParser struct {
	tag     language.Tag
	printer *message.Printer
	group   string // grouping separator, "" if the locale does not group
	decimal string
}

// NewNumberParser creates a parser for the given locale.
func NewNumberParser(tag language.Tag) *NumberParser {
	p := message.NewPrinter(tag)
	np := &NumberParser{tag: tag, printer: p}

	// 1234567 prints as 1<g>234<g>567 in whatever digits the locale uses;
	// whatever sits between the 1 and the 2 is the grouping separator.
	grouped := normalizeDigits(p.Sprintf("%d", 1234567))
	if i := strings.IndexRune(grouped, '1'); i >= 0 {
		if j := strings.IndexRune(grouped[i:], '2'); j > 1 {
			np.group = grouped[i+1 : i+j]
		}
	}

	dec := normalizeDigits(p.Sprintf("%.1f", 1.5))
	if i := strings.IndexRune(dec, '1'); i >= 0 {
		if j := strings.IndexRune(dec[i:], '5'); j > 1 {
			np.decimal = dec[i+1 : i+j]
		}
	}
	if np.decimal == "" {
		np.decimal = "."
	}
	return np
}

var defaultNumbers = NewNumberParser(language.English)

// Tag returns the parser's locale.
func (np *NumberParser) Tag() language.Tag { return np.tag }

// ParseInt parses the leading integer of s. Digits may come from any
// script. Grouping separators are ignored, parsing stops at the decimal
// separator or the first other non-digit. ok is false when s has no
// leading digits at all. Values past the int range clamp to it.
func (np *NumberParser) ParseInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(normalizeDigits(s))
	if np.group != "" {
		s = strings.ReplaceAll(s, np.group, "")
		// locales grouping with a (narrow) no-break space also accept a plain one
		if r, _ := utf8.DecodeRuneInString(np.group); unicode.IsSpace(r) {
			s = strings.ReplaceAll(s, " ", "")
		}
	}
	if i := strings.Index(s, np.decimal); i >= 0 {
		s = s[:i]
	}

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return int(v), true
}

// normalizeDigits maps decimal digits of any script to ASCII, a minus
// sign to '-', and drops invisible format marks such as the bidi marks
// some locales put before a sign.
func normalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r < utf8.RuneSelf:
			return r
		case r == '\u2212':
			return '-'
		case unicode.Is(unicode.Cf, r):
			return -1
		}
		if d, ok := digitValue(r); ok {
			return '0' + rune(d)
		}
		return r
	}, s)
}

// digitValue returns the value of a Unicode decimal digit. Every run of
// decimal digits in the Nd table is a whole number of 0-9 sequences.
func digitValue(r rune) (int, bool) {
	if !unicode.IsDigit(r) {
		return 0, false
	}
	if r <= 0xFFFF {
		for _, rg := range unicode.Digit.R16 {
			if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
				return int(r-lo) % 10, true
			}
		}
	}
	for _, rg := range unicode.Digit.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10, true
		}
	}
	return 0, false
}

// FormatInt formats n with the locale's grouping.
func (np *NumberParser) FormatInt(n int) string {
	return np.printer.Sprintf("%d", n)
}

// Format renders any field value for display.
func (np *NumberParser) Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int:
		return np.FormatInt(x)
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case string:
		return x
	default:
		return np.printer.Sprint(x)
	}
}
