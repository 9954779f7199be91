package naming

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

const (
	// DefaultExtension is the leaf file extension produced by apktool.
	DefaultExtension = ".smali"
	// DefaultSeparator joins nested class segments in a leaf name.
	DefaultSeparator = "$"
)

// Rules carries the leaf extension and segment separator used to validate
// and split leaf names.
type Rules struct {
	Extension string
	Separator string
}

// DefaultRules returns the rules for apktool smali output.
func DefaultRules() Rules {
	return Rules{Extension: DefaultExtension, Separator: DefaultSeparator}
}

// HasExtension reports whether name ends with the leaf extension. A name
// that is only the extension has an empty stem and still qualifies.
func (r Rules) HasExtension(name string) bool {
	return r.Extension != "" && strings.HasSuffix(name, r.Extension)
}

// Stem strips the leaf extension from name.
func (r Rules) Stem(name string) string {
	return strings.TrimSuffix(name, r.Extension)
}

// IsValidLeafName reports whether name is a leaf file name whose stem is one
// or more separator-joined identifiers, each starting with an ASCII letter.
func (r Rules) IsValidLeafName(name string) bool {
	if !r.HasExtension(name) {
		return false
	}
	for _, segment := range r.SplitStem(r.Stem(name)) {
		if !isIdentifier(segment) {
			return false
		}
	}
	return true
}

// SplitStem splits a composite stem into its identifier segments. Empty
// segments are kept so JoinStem restores the original separator positions.
func (r Rules) SplitStem(stem string) []string {
	if r.Separator == "" {
		return []string{stem}
	}
	return strings.Split(stem, r.Separator)
}

// JoinStem is the inverse of SplitStem.
func (r Rules) JoinStem(segments []string) string {
	return strings.Join(segments, r.Separator)
}

// IsValidPlainName reports whether name consists only of ASCII letters,
// digits, and underscore. The empty name is valid.
func IsValidPlainName(name string) bool {
	for i := 0; i < len(name); i++ {
		if !isPlainByte(name[i]) {
			return false
		}
	}
	return true
}

// DescribeForbidden names the first character of name that is outside the
// plain alphabet, or returns "" when name is plain.
func DescribeForbidden(name string) string {
	for offset, r := range name {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(name[offset:]); size == 1 {
				return fmt.Sprintf("invalid UTF-8 byte 0x%02X at offset %d", name[offset], offset)
			}
		}
		if r < utf8.RuneSelf && isPlainByte(byte(r)) {
			continue
		}
		label := runenames.Name(r)
		if label == "" {
			return fmt.Sprintf("%U at offset %d", r, offset)
		}
		return fmt.Sprintf("%U %s at offset %d", r, label, offset)
	}
	return ""
}

func isIdentifier(segment string) bool {
	if segment == "" || !isLetter(segment[0]) {
		return false
	}
	return IsValidPlainName(segment[1:])
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isPlainByte(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '_'
}
