package patchwork

import (
	"fmt"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diffRebuildTexts(diffs []Diff) (text1, text2 string) {
	for _, d := range diffs {
		if d.Op != OpInsert {
			text1 += d.Text
		}
		if d.Op != OpDelete {
			text2 += d.Text
		}
	}
	return text1, text2
}

func TestDiffCommonPrefixSuffix(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, 4, c.DiffCommonPrefix("1234abcdef", "1234xyz"))
	assert.Equal(t, 0, c.DiffCommonPrefix("abc", "xyz"))
	assert.Equal(t, 4, c.DiffCommonSuffix("abcdef1234", "xyz1234"))
	assert.Equal(t, 0, c.DiffCommonSuffix("abc", "xyz"))
}

func TestDiffBasicCases(t *testing.T) {
	c := NewDefaultConfig()

	assert.Nil(t, c.Diff("", "", false))
	assert.Equal(t, []Diff{{OpEqual, "abc"}}, c.Diff("abc", "abc", false))
	assert.Equal(t, []Diff{{OpEqual, "ab"}, {OpInsert, "123"}, {OpEqual, "c"}}, c.Diff("abc", "ab123c", false))
	assert.Equal(t, []Diff{{OpEqual, "a"}, {OpDelete, "123"}, {OpEqual, "bc"}}, c.Diff("a123bc", "abc", false))
	assert.Equal(t, []Diff{
		{OpEqual, "a"}, {OpInsert, "123"}, {OpEqual, "b"}, {OpInsert, "456"}, {OpEqual, "c"},
	}, c.Diff("abc", "a123b456c", false))
}

// The classic example: reconstructing both input texts from an edit
// script must always return exactly what was diffed.
func TestDiffRoundTrip(t *testing.T) {
	c := NewDefaultConfig()
	pairs := [][2]string{
		{"The quick brown fox jumps over the lazy dog.", "That quick brown fox jumped over a lazy dog."},
		{"", "abcdef"},
		{"abcdef", ""},
		{"abc", "def"},
	}
	for i, p := range pairs {
		diffs := c.Diff(p[0], p[1], true)
		got1, got2 := diffRebuildTexts(diffs)
		require.Equal(t, p[0], got1, "case %d source: %s", i, spew.Sdump(diffs))
		require.Equal(t, p[1], got2, "case %d destination: %s", i, spew.Sdump(diffs))
	}
}

func TestDiffTimeoutBailsOut(t *testing.T) {
	c := NewDefaultConfig()
	c.DiffTimeout = time.Nanosecond
	a := "`Twas brillig, and the slithy toves\nDid gyre and gimble in the wabe:\n"
	b := "I am the very model of a modern major general,\nI have information vegetable, animal, and mineral,\n"
	diffs := c.diffUnits(toUnits(a), toUnits(b), true, time.Now())
	// A deadline already in the past should fall back to a coarse diff
	// rather than hang.
	assert.NotEmpty(t, diffs)
}

func TestDiffCleanupSemantic(t *testing.T) {
	c := NewDefaultConfig()
	tests := []struct {
		name     string
		diffs    []Diff
		expected []Diff
	}{
		{
			"no elimination",
			[]Diff{{OpDelete, "ab"}, {OpInsert, "cd"}, {OpEqual, "12"}, {OpDelete, "e"}},
			[]Diff{{OpDelete, "ab"}, {OpInsert, "cd"}, {OpEqual, "12"}, {OpDelete, "e"}},
		},
		{
			"simple elimination",
			[]Diff{{OpDelete, "a"}, {OpEqual, "b"}, {OpDelete, "c"}},
			[]Diff{{OpDelete, "abc"}, {OpInsert, "b"}},
		},
		{
			"backpass elimination",
			[]Diff{
				{OpDelete, "ab"}, {OpEqual, "cd"}, {OpDelete, "e"}, {OpEqual, "f"}, {OpInsert, "g"},
			},
			[]Diff{{OpDelete, "abcdef"}, {OpInsert, "cdfg"}},
		},
	}
	for _, tt := range tests {
		actual := c.DiffCleanupSemantic(tt.diffs)
		assert.Equal(t, tt.expected, actual, tt.name)
	}
}

func TestDiffCleanupEfficiency(t *testing.T) {
	c := NewDefaultConfig()
	c.DiffEditCost = 4

	diffs := []Diff{
		{OpDelete, "a"}, {OpInsert, "12"}, {OpEqual, "wxyz"}, {OpDelete, "cd"}, {OpInsert, "34"},
	}
	assert.Equal(t, diffs, c.DiffCleanupEfficiency(diffs), "no cleanup when edit cost is low")

	c.DiffEditCost = 5
	expected := []Diff{{OpDelete, "awxyzcd"}, {OpInsert, "12wxyz34"}}
	assert.Equal(t, expected, c.DiffCleanupEfficiency(diffs), "fused when edit cost is high")
}

func TestDiffLevenshtein(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, 4, c.DiffLevenshtein([]Diff{{OpDelete, "abc"}, {OpInsert, "1234"}, {OpEqual, "xyz"}}))
	assert.Equal(t, 4, c.DiffLevenshtein([]Diff{{OpEqual, "xyz"}, {OpDelete, "abc"}, {OpInsert, "1234"}}))
}

func TestDiffXIndex(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, 5, c.DiffXIndex([]Diff{{OpDelete, "a"}, {OpInsert, "1234"}, {OpEqual, "xyz"}}, 2))
	assert.Equal(t, 1, c.DiffXIndex([]Diff{{OpEqual, "a"}, {OpDelete, "1234"}, {OpEqual, "xyz"}}, 3))
}

func TestDiffPrettyHTML(t *testing.T) {
	c := NewDefaultConfig()
	diffs := []Diff{{OpEqual, "a\n"}, {OpDelete, "<B>b</B>"}, {OpInsert, "c&d"}}
	out := c.DiffPrettyHTML(diffs)
	assert.Contains(t, out, `<del style="background:#ffe6e6;">&lt;B&gt;b&lt;/B&gt;</del>`)
	assert.Contains(t, out, `<ins style="background:#e6ffe6;">c&amp;d</ins>`)
}

func TestDiffLinesToUnitsRoundTrip(t *testing.T) {
	c := NewDefaultConfig()
	text1, text2 := "alpha\nbeta\nalpha\n", ""
	chars1, chars2, lines := c.diffLinesToUnits(text1, text2)
	assert.Equal(t, []uint16{1, 2, 1}, chars1)
	assert.Empty(t, chars2)
	assert.Equal(t, []string{"", "alpha\n", "beta\n"}, lines)

	back := c.diffCharsToLines([]Diff{{OpEqual, fromUnits(chars1)}}, lines)
	assert.Equal(t, []Diff{{OpEqual, text1}}, back)
}

func TestDiffHalfMatchFindsLongestSeed(t *testing.T) {
	c := NewDefaultConfig()
	c.DiffTimeout = time.Second
	hm := c.diffHalfMatch(toUnits("1234567890"), toUnits("a345678z"))
	require.NotNil(t, hm)
	assert.Equal(t, "12", fromUnits(hm.text1A))
	assert.Equal(t, "90", fromUnits(hm.text1B))
	assert.Equal(t, "a", fromUnits(hm.text2A))
	assert.Equal(t, "z", fromUnits(hm.text2B))
	assert.Equal(t, "345678", fromUnits(hm.midCommon))
}

func TestDiffHalfMatchDisabledWithoutTimeout(t *testing.T) {
	c := NewDefaultConfig()
	c.DiffTimeout = 0
	assert.Nil(t, c.diffHalfMatch(toUnits("1234567890"), toUnits("a345678z")))
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "DELETE", OpDelete.String())
	assert.Equal(t, "INSERT", OpInsert.String())
	assert.Equal(t, "EQUAL", OpEqual.String())
	assert.Equal(t, "UNKNOWN", Op(42).String())
}

func TestDiffSurrogatePairsSurviveBisection(t *testing.T) {
	c := NewDefaultConfig()
	// The two astral characters share their high surrogate, so trimming the
	// common prefix cuts between the halves of a surrogate pair.
	diffs := c.Diff("a\U0001F600b", "a\U0001F601b", false)
	got1, got2 := diffRebuildTexts(diffs)
	assert.Equal(t, "a\U0001F600b", got1)
	assert.Equal(t, "a\U0001F601b", got2)
	_ = fmt.Sprint(diffs) // exercise Diff/Op String via fmt without requiring a specific format
}
