package patchwork

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffCleanupMerge(t *testing.T) {
	c := NewDefaultConfig()
	tests := []struct {
		name     string
		diffs    []Diff
		expected []Diff
	}{
		{"Null case", nil, nil},
		{
			"No Diff case",
			[]Diff{{OpEqual, "a"}, {OpDelete, "b"}, {OpInsert, "c"}},
			[]Diff{{OpEqual, "a"}, {OpDelete, "b"}, {OpInsert, "c"}},
		},
		{
			"Merge equalities",
			[]Diff{{OpEqual, "a"}, {OpEqual, "b"}, {OpEqual, "c"}},
			[]Diff{{OpEqual, "abc"}},
		},
		{
			"Merge deletions",
			[]Diff{{OpDelete, "a"}, {OpDelete, "b"}, {OpDelete, "c"}},
			[]Diff{{OpDelete, "abc"}},
		},
		{
			"Merge insertions",
			[]Diff{{OpInsert, "a"}, {OpInsert, "b"}, {OpInsert, "c"}},
			[]Diff{{OpInsert, "abc"}},
		},
		{
			"Merge interweave",
			[]Diff{
				{OpDelete, "a"}, {OpInsert, "b"}, {OpDelete, "c"}, {OpInsert, "d"}, {OpEqual, "e"}, {OpEqual, "f"},
			},
			[]Diff{{OpDelete, "ac"}, {OpInsert, "bd"}, {OpEqual, "ef"}},
		},
		{
			"Prefix and suffix detection",
			[]Diff{{OpDelete, "a"}, {OpInsert, "abc"}, {OpDelete, "dc"}},
			[]Diff{{OpEqual, "a"}, {OpDelete, "d"}, {OpInsert, "b"}, {OpEqual, "c"}},
		},
		{
			"Slide edit left",
			[]Diff{{OpEqual, "a"}, {OpInsert, "ba"}, {OpEqual, "c"}},
			[]Diff{{OpInsert, "ab"}, {OpEqual, "ac"}},
		},
		{
			"Slide edit right",
			[]Diff{{OpEqual, "c"}, {OpInsert, "ab"}, {OpEqual, "a"}},
			[]Diff{{OpEqual, "ca"}, {OpInsert, "ba"}},
		},
		{
			"Slide edit left recursive",
			[]Diff{{OpEqual, "a"}, {OpDelete, "b"}, {OpEqual, "c"}, {OpDelete, "ac"}, {OpEqual, "x"}},
			[]Diff{{OpDelete, "abc"}, {OpEqual, "acx"}},
		},
		{
			"Slide edit right recursive",
			[]Diff{{OpEqual, "x"}, {OpDelete, "ca"}, {OpEqual, "c"}, {OpDelete, "b"}, {OpEqual, "a"}},
			[]Diff{{OpEqual, "xca"}, {OpDelete, "cba"}},
		},
	}
	for _, tt := range tests {
		actual := c.DiffCleanupMerge(tt.diffs)
		assert.Equal(t, tt.expected, actual, tt.name)
	}
}

func TestDiffCleanupSemanticLossless(t *testing.T) {
	c := NewDefaultConfig()
	tests := []struct {
		name     string
		diffs    []Diff
		expected []Diff
	}{
		{"Null case", nil, nil},
		{
			"Blank lines",
			[]Diff{
				{OpEqual, "AAA\r\n\r\nBBB"},
				{OpInsert, "\r\nDDD\r\n\r\nBBB"},
				{OpEqual, "\r\nEEE"},
			},
			[]Diff{
				{OpEqual, "AAA\r\n\r\n"},
				{OpInsert, "BBB\r\nDDD\r\n\r\n"},
				{OpEqual, "BBB\r\nEEE"},
			},
		},
		{
			"Line boundaries",
			[]Diff{
				{OpEqual, "AAA\r\nBBB"},
				{OpInsert, " DDD\r\nBBB"},
				{OpEqual, " EEE"},
			},
			[]Diff{
				{OpEqual, "AAA\r\n"},
				{OpInsert, "BBB DDD\r\n"},
				{OpEqual, "BBB EEE"},
			},
		},
		{
			"Word boundaries",
			[]Diff{
				{OpEqual, "The c"},
				{OpInsert, "ow and the c"},
				{OpEqual, "at."},
			},
			[]Diff{
				{OpEqual, "The "},
				{OpInsert, "cow and the "},
				{OpEqual, "cat."},
			},
		},
		{
			"Alphanumeric boundaries",
			[]Diff{
				{OpEqual, "The-c"},
				{OpInsert, "ow-and-the-c"},
				{OpEqual, "at."},
			},
			[]Diff{
				{OpEqual, "The-"},
				{OpInsert, "cow-and-the-"},
				{OpEqual, "cat."},
			},
		},
	}
	for i, tt := range tests {
		actual := c.DiffCleanupSemanticLossless(tt.diffs)
		assert.Equal(t, tt.expected, actual, fmt.Sprintf("case %d: %s", i, tt.name))
	}
}
