package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidLeafName(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"simple class", "MainActivity.smali", true},
		{"nested class", "Outer$Inner.smali", true},
		{"deeply nested", "A$b1$C_2.smali", true},
		{"underscore and digits", "a_1B2.smali", true},
		{"missing extension", "MainActivity", false},
		{"other extension", "MainActivity.java", false},
		{"bare extension", ".smali", false},
		{"leading digit", "1Main.smali", false},
		{"anonymous class segment", "Outer$1.smali", false},
		{"trailing separator", "Outer$.smali", false},
		{"double separator", "Outer$$Inner.smali", false},
		{"forbidden rune", "a€b.smali", false},
		{"forbidden rune in nested segment", "ab$c!d.smali", false},
		{"dot inside stem", "a.b.smali", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.IsValidLeafName(tt.in))
		})
	}
}

func TestHasExtension(t *testing.T) {
	rules := DefaultRules()
	assert.True(t, rules.HasExtension("Main.smali"))
	assert.True(t, rules.HasExtension(".smali"))
	assert.False(t, rules.HasExtension("Main.java"))
	assert.False(t, rules.HasExtension(".A.smali.tmp-123"))
	assert.False(t, Rules{Extension: ""}.HasExtension("Main"))
	assert.Equal(t, "", rules.Stem(".smali"))
}

func TestIsValidPlainName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"abc", true},
		{"ABC_123", true},
		{"1", true},
		{"_", true},
		{"a-b", false},
		{"a b", false},
		{"a€b", false},
		{"c!d", false},
		{"a$b", false},
		{"日本", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPlainName(tt.in), "IsValidPlainName(%q)", tt.in)
	}
}

func TestSplitJoinStemRoundTrip(t *testing.T) {
	rules := DefaultRules()
	for _, stem := range []string{"a", "a$b", "a$$b", "$a$", ""} {
		assert.Equal(t, stem, rules.JoinStem(rules.SplitStem(stem)))
	}
	assert.Equal(t, []string{"a€b", "c!d"}, rules.SplitStem("a€b$c!d"))
}

func TestCustomRules(t *testing.T) {
	rules := Rules{Extension: ".cls", Separator: "+"}
	assert.True(t, rules.IsValidLeafName("Outer+Inner.cls"))
	assert.False(t, rules.IsValidLeafName("Outer$Inner.cls"))
	assert.Equal(t, "Outer", rules.Stem("Outer.cls"))
}

func TestDescribeForbidden(t *testing.T) {
	assert.Equal(t, "", DescribeForbidden("plain_Name1"))
	assert.Equal(t, "U+20AC EURO SIGN at offset 1", DescribeForbidden("a€b"))
	assert.Equal(t, "U+0021 EXCLAMATION MARK at offset 1", DescribeForbidden("c!d"))
	assert.Equal(t, "invalid UTF-8 byte 0xFF at offset 2", DescribeForbidden("ab\xffc"))
}
