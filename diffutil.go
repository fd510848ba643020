package patchwork

import (
	"bytes"
	"html"
	"strings"
)

// DiffCommonPrefix returns the length, in UTF-16 code units, of the
// longest common prefix of text1 and text2.
func (c *Config) DiffCommonPrefix(text1, text2 string) int {
	return commonPrefixLength(toUnits(text1), toUnits(text2))
}

// DiffCommonSuffix returns the length, in UTF-16 code units, of the
// longest common suffix of text1 and text2.
func (c *Config) DiffCommonSuffix(text1, text2 string) int {
	return commonSuffixLength(toUnits(text1), toUnits(text2))
}

// DiffCommonOverlap returns the length of the longest suffix of text1 that
// is also a prefix of text2.
func (c *Config) DiffCommonOverlap(text1, text2 string) int {
	return commonOverlapLength(toUnits(text1), toUnits(text2))
}

// DiffText1 reconstructs the source text: the concatenation of every
// non-INSERT payload.
func (c *Config) DiffText1(diffs []Diff) string {
	var buf strings.Builder
	for _, d := range diffs {
		if d.Op != OpInsert {
			buf.WriteString(d.Text)
		}
	}
	return buf.String()
}

// DiffText2 reconstructs the destination text: the concatenation of every
// non-DELETE payload.
func (c *Config) DiffText2(diffs []Diff) string {
	var buf strings.Builder
	for _, d := range diffs {
		if d.Op != OpDelete {
			buf.WriteString(d.Text)
		}
	}
	return buf.String()
}

// DiffLevenshtein computes the Levenshtein distance of the script: the
// number of inserted, deleted, or substituted code units.
func (c *Config) DiffLevenshtein(diffs []Diff) int {
	levenshtein := 0
	insertions, deletions := 0, 0
	for _, d := range diffs {
		switch d.Op {
		case OpInsert:
			insertions += unitLen(d.Text)
		case OpDelete:
			deletions += unitLen(d.Text)
		case OpEqual:
			levenshtein += max(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	levenshtein += max(insertions, deletions)
	return levenshtein
}

// DiffXIndex translates a source-text offset into the corresponding
// destination-text offset. If loc falls inside a deletion, the offset of
// the first character of that deletion's destination position is
// returned. Monotone non-decreasing in loc.
func (c *Config) DiffXIndex(diffs []Diff, loc int) int {
	chars1, chars2 := 0, 0
	lastChars1, lastChars2 := 0, 0
	var lastOp Op = OpEqual
	found := false
	for _, d := range diffs {
		if d.Op != OpInsert {
			chars1 += unitLen(d.Text)
		}
		if d.Op != OpDelete {
			chars2 += unitLen(d.Text)
		}
		if chars1 > loc {
			lastOp = d.Op
			found = true
			break
		}
		lastChars1, lastChars2 = chars1, chars2
	}
	if found && lastOp == OpDelete {
		return lastChars2
	}
	return lastChars2 + (loc - lastChars1)
}

// DiffPrettyHTML renders an edit script as an HTML fragment, wrapping each
// entry in <ins>, <del>, or <span> with an inline background color. A
// reference renderer, not a general-purpose one.
func (c *Config) DiffPrettyHTML(diffs []Diff) string {
	var buf bytes.Buffer
	for _, d := range diffs {
		text := strings.ReplaceAll(html.EscapeString(d.Text), "\n", "&para;<br>")
		switch d.Op {
		case OpInsert:
			buf.WriteString(`<ins style="background:#e6ffe6;">`)
			buf.WriteString(text)
			buf.WriteString("</ins>")
		case OpDelete:
			buf.WriteString(`<del style="background:#ffe6e6;">`)
			buf.WriteString(text)
			buf.WriteString("</del>")
		case OpEqual:
			buf.WriteString("<span>")
			buf.WriteString(text)
			buf.WriteString("</span>")
		}
	}
	return buf.String()
}

// diffLinesToUnits reduces text1 and text2 to a sequence of code units,
// one per distinct line, so that a unit-level diff becomes a line-level
// diff. A shared line table is returned for diffCharsToLines to rehydrate
// the result.
func (c *Config) diffLinesToUnits(text1, text2 string) (chars1, chars2 []uint16, lines []string) {
	lines = []string{""} // index 0 reserved so real lines never hash to the \x00 sentinel.
	hash := map[string]int{}
	chars1 = c.linesToUnitsMunge(text1, &lines, hash)
	chars2 = c.linesToUnitsMunge(text2, &lines, hash)
	return chars1, chars2, lines
}

// linesToUnitsMunge splits text into lines and encodes each as a single
// code unit. The encoded hashes travel through ordinary strings between
// here and diffCharsToLines, so an index must survive a utf16
// Encode/Decode round trip; anything in the surrogate range would decode
// to U+FFFD. That caps the line table just below 0xD800 entries — once it
// fills, the remainder of the text is folded into one final "line".
func (c *Config) linesToUnitsMunge(text string, lines *[]string, hash map[string]int) []uint16 {
	const maxLines = 0xD800 - 1
	var out []uint16
	lineStart := 0
	for lineStart < len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		var line string
		if lineEnd == -1 {
			line = text[lineStart:]
			lineStart = len(text)
		} else {
			line = text[lineStart : lineStart+lineEnd+1]
			lineStart += lineEnd + 1
		}
		if idx, ok := hash[line]; ok {
			out = append(out, uint16(idx))
			continue
		}
		if len(*lines) == maxLines {
			line = text[lineStart-len(line):]
			lineStart = len(text)
		}
		*lines = append(*lines, line)
		hash[line] = len(*lines) - 1
		out = append(out, uint16(len(*lines)-1))
	}
	return out
}

// diffCharsToLines rehydrates a diff produced over the line-hash alphabet
// back into real lines of text.
func (c *Config) diffCharsToLines(diffs []Diff, lines []string) []Diff {
	out := make([]Diff, len(diffs))
	for i, d := range diffs {
		var buf strings.Builder
		for _, u := range toUnits(d.Text) {
			buf.WriteString(lines[u])
		}
		out[i] = Diff{d.Op, buf.String()}
	}
	return out
}
