// FILE: sanitizer/sanitizer.go
// Package sanitizer provides a fluent, rule-based text sanitizer with
// policies for log-file name prefixes (applied by the default file sink) and
// record body text (not applied by the framework itself). Rules pair a
// character filter with a transform; the earliest matching rule wins.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable  uint64 = 1 << iota // runes strconv.IsPrint rejects
	FilterControl                          // control characters
	FilterWhitespace                       // whitespace characters
	FilterPathSeparator                    // '/' and '\\'
	FilterColon                            // ':'
)

// Transform flags for matched characters
const (
	TransformStrip     uint64 = 1 << iota // removes the character
	TransformHexEncode                    // encodes the UTF-8 bytes as "<XXYY>"
)

// PolicyPreset names a pre-configured rule set
type PolicyPreset string

const (
	PolicyRaw      PolicyPreset = "raw"      // passthrough
	PolicyFilename PolicyPreset = "filename" // strip whitespace, path separators, colons
	PolicyText     PolicyPreset = "text"     // hex-encode non-printable runes
)

// rule pairs a filter mask with a transform mask
type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:      {},
	PolicyFilename: {{filter: FilterWhitespace | FilterPathSeparator | FilterColon, transform: TransformStrip}},
	PolicyText:     {{filter: FilterNonPrintable, transform: TransformHexEncode}},
}

var filterCheckers = map[uint64]func(rune) bool{
	FilterNonPrintable: func(r rune) bool { return !strconv.IsPrint(r) },
	FilterControl:      unicode.IsControl,
	FilterWhitespace:   unicode.IsSpace,
	FilterPathSeparator: func(r rune) bool {
		return r == '/' || r == '\\'
	},
	FilterColon: func(r rune) bool { return r == ':' },
}

// IllegalFilenameRunes is the character set rejected outright in log-file
// name prefixes after stripping.
const IllegalFilenameRunes = `/,|<>:#$%{}[]'"^!?+* `

// Sanitizer applies an ordered rule chain to input strings. Not safe for
// concurrent use; each caller keeps its own instance.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New creates a Sanitizer, optionally seeded with policy presets.
func New(presets ...PolicyPreset) *Sanitizer {
	s := &Sanitizer{buf: make([]byte, 0, 256)}
	for _, p := range presets {
		s.Policy(p)
	}
	return s
}

// Rule appends a custom rule; earlier rules apply first.
func (s *Sanitizer) Rule(filter, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends a preset's rules.
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies the rule chain to data.
func (s *Sanitizer) Sanitize(data string) string {
	s.buf = s.buf[:0]

	for _, r := range data {
		matched := false
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				applyTransform(&s.buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			s.buf = utf8.AppendRune(s.buf, r)
		}
	}
	return string(s.buf)
}

// CheckFilenamePrefix sanitizes a log-file name prefix and rejects the
// result when it is empty or still carries an illegal character.
func CheckFilenamePrefix(prefix string) (string, error) {
	cleaned := New(PolicyFilename).Sanitize(prefix)
	if cleaned == "" {
		return "", fmt.Errorf("sanitizer: empty log prefix after sanitization of %q", prefix)
	}
	if i := strings.IndexAny(cleaned, IllegalFilenameRunes); i >= 0 {
		return "", fmt.Errorf("sanitizer: illegal character %q in log prefix %q", cleaned[i], prefix)
	}
	return cleaned, nil
}

func matchesFilter(r rune, filterMask uint64) bool {
	for flag, checker := range filterCheckers {
		if (filterMask&flag) != 0 && checker(r) {
			return true
		}
	}
	return false
}

func applyTransform(buf *[]byte, r rune, transformMask uint64) {
	switch {
	case (transformMask & TransformStrip) != 0:
		// strip: drop the rune

	case (transformMask & TransformHexEncode) != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		*buf = append(*buf, '<')
		*buf = append(*buf, hex.EncodeToString(runeBytes[:n])...)
		*buf = append(*buf, '>')
	}
}
