package patchwork

import (
	"time"
)

// Op is the tag on a single edit operation.
type Op int

// Op values. The concrete integers aren't part of any wire format; the
// delta codec uses the sign characters '=', '-', '+' instead.
const (
	OpDelete Op = -1
	OpEqual  Op = 0
	OpInsert Op = 1
)

// String satisfies fmt.Stringer.
func (o Op) String() string {
	switch o {
	case OpDelete:
		return "DELETE"
	case OpInsert:
		return "INSERT"
	case OpEqual:
		return "EQUAL"
	default:
		return "UNKNOWN"
	}
}

// Diff is one entry of an edit script: an operation tag paired with the
// text it carries.
type Diff struct {
	Op   Op
	Text string
}

// Diff computes the edit script that transforms text1 into text2. When
// checklines is true and both texts exceed 100 units, a faster line-level
// pass runs first at the cost of minimality (see diffLineMode).
func (c *Config) Diff(text1, text2 string, checklines bool) []Diff {
	var deadline time.Time
	if c.DiffTimeout > 0 {
		deadline = time.Now().Add(c.DiffTimeout)
	}
	return c.diffUnits(toUnits(text1), toUnits(text2), checklines, deadline)
}

func (c *Config) diffUnits(text1, text2 []uint16, checklines bool, deadline time.Time) []Diff {
	if unitsEqual(text1, text2) {
		if len(text1) == 0 {
			return nil
		}
		return []Diff{{OpEqual, fromUnits(text1)}}
	}
	// Trim common prefix/suffix (speedup); recurse on the middle and
	// reattach EQUAL entries on either side.
	commonPrefix := commonPrefixLength(text1, text2)
	prefix := text1[:commonPrefix]
	text1 = text1[commonPrefix:]
	text2 = text2[commonPrefix:]

	commonSuffix := commonSuffixLength(text1, text2)
	suffix := text1[len(text1)-commonSuffix:]
	text1 = text1[:len(text1)-commonSuffix]
	text2 = text2[:len(text2)-commonSuffix]

	diffs := c.diffCompute(text1, text2, checklines, deadline)

	if len(prefix) != 0 {
		diffs = append([]Diff{{OpEqual, fromUnits(prefix)}}, diffs...)
	}
	if len(suffix) != 0 {
		diffs = append(diffs, Diff{OpEqual, fromUnits(suffix)})
	}
	return c.DiffCleanupMerge(diffs)
}

// diffCompute finds the differences between two code unit slices known to
// share no common prefix or suffix.
func (c *Config) diffCompute(text1, text2 []uint16, checklines bool, deadline time.Time) []Diff {
	if len(text1) == 0 {
		return []Diff{{OpInsert, fromUnits(text2)}}
	}
	if len(text2) == 0 {
		return []Diff{{OpDelete, fromUnits(text1)}}
	}

	longtext, shorttext := text2, text1
	if len(text1) > len(text2) {
		longtext, shorttext = text1, text2
	}
	if i := unitsIndex(longtext, shorttext); i != -1 {
		// The shorter text is a substring of the longer one.
		op := OpInsert
		if len(text1) > len(text2) {
			op = OpDelete
		}
		return []Diff{
			{op, fromUnits(longtext[:i])},
			{OpEqual, fromUnits(shorttext)},
			{op, fromUnits(longtext[i+len(shorttext):])},
		}
	}
	if len(shorttext) == 1 {
		// After the substring check above, a single unit can't be an equality.
		return []Diff{
			{OpDelete, fromUnits(text1)},
			{OpInsert, fromUnits(text2)},
		}
	}
	if hm := c.diffHalfMatch(text1, text2); hm != nil {
		diffsA := c.diffUnits(hm.text1A, hm.text2A, checklines, deadline)
		diffsB := c.diffUnits(hm.text1B, hm.text2B, checklines, deadline)
		diffs := append(diffsA, Diff{OpEqual, fromUnits(hm.midCommon)})
		return append(diffs, diffsB...)
	}
	if checklines && len(text1) > 100 && len(text2) > 100 {
		return c.diffLineMode(text1, text2, deadline)
	}
	return c.diffBisect(text1, text2, deadline)
}

// diffLineMode does a quick line-granular diff, then rediffs each
// replacement block character-by-character for accuracy. Non-minimal but
// fast; see spec §4.2.
func (c *Config) diffLineMode(text1, text2 []uint16, deadline time.Time) []Diff {
	chars1, chars2, lines := c.diffLinesToUnits(fromUnits(text1), fromUnits(text2))
	diffs := c.diffUnits(chars1, chars2, false, deadline)
	diffs = c.diffCharsToLines(diffs, lines)
	diffs = c.DiffCleanupSemantic(diffs)

	// Rediff replacement blocks. A dummy trailing EQUAL flushes the last run.
	diffs = append(diffs, Diff{OpEqual, ""})
	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert string
	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case OpInsert:
			countInsert++
			textInsert += diffs[pointer].Text
		case OpDelete:
			countDelete++
			textDelete += diffs[pointer].Text
		case OpEqual:
			if countDelete >= 1 && countInsert >= 1 {
				diffs = spliceDiffs(diffs, pointer-countDelete-countInsert, countDelete+countInsert)
				pointer -= countDelete + countInsert
				sub := c.diffUnits(toUnits(textDelete), toUnits(textInsert), false, deadline)
				for j := len(sub) - 1; j >= 0; j-- {
					diffs = spliceDiffs(diffs, pointer, 0, sub[j])
				}
				pointer += len(sub)
			}
			countInsert, countDelete = 0, 0
			textDelete, textInsert = "", ""
		}
		pointer++
	}
	return diffs[:len(diffs)-1]
}

// diffBisect finds the middle snake of a diff via Myers's bidirectional
// O(ND) bisection, splits the problem there, and recurses on both halves
// serially. On deadline expiry it bails out to the trivial
// [delete text1, insert text2] diff.
func (c *Config) diffBisect(text1, text2 []uint16, deadline time.Time) []Diff {
	text1Len, text2Len := len(text1), len(text2)
	maxD := (text1Len + text2Len + 1) / 2
	vOffset := maxD
	vLength := 2 * maxD
	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0
	delta := text1Len - text2Len
	// An odd total length means the forward and reverse paths collide on
	// the forward pass.
	front := delta%2 != 0
	k1start, k1end, k2start, k2end := 0, 0, 0, 0
	for d := 0; d < maxD; d++ {
		if !deadline.IsZero() && d%16 == 0 && time.Now().After(deadline) {
			break
		}
		// Forward path.
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < text1Len && y1 < text2Len && text1[x1] == text2[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > text1Len:
				k1end += 2
			case y1 > text2Len:
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					x2 := text1Len - v2[k2Offset]
					if x1 >= x2 {
						return c.diffBisectSplit(text1, text2, x1, y1, deadline)
					}
				}
			}
		}
		// Reverse path.
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < text1Len && y2 < text2Len && text1[text1Len-x2-1] == text2[text2Len-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > text1Len:
				k2end += 2
			case y2 > text2Len:
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					mirroredX2 := text1Len - x2
					if x1 >= mirroredX2 {
						return c.diffBisectSplit(text1, text2, x1, y1, deadline)
					}
				}
			}
		}
	}
	// No commonality found within the deadline or the search space.
	return []Diff{
		{OpDelete, fromUnits(text1)},
		{OpInsert, fromUnits(text2)},
	}
}

func (c *Config) diffBisectSplit(text1, text2 []uint16, x, y int, deadline time.Time) []Diff {
	text1a, text1b := text1[:x], text1[x:]
	text2a, text2b := text2[:y], text2[y:]
	diffs := c.diffUnits(text1a, text2a, false, deadline)
	diffsB := c.diffUnits(text1b, text2b, false, deadline)
	return append(diffs, diffsB...)
}

type halfMatch struct {
	text1A, text1B []uint16
	text2A, text2B []uint16
	midCommon      []uint16
}

// diffHalfMatch looks for a substring common to both texts that spans at
// least half the longer text, seeded at its 1/4 and 1/2 points. Disabled
// when DiffTimeout <= 0, since unlimited time means minimality should never
// be sacrificed for speed.
func (c *Config) diffHalfMatch(text1, text2 []uint16) *halfMatch {
	if c.DiffTimeout <= 0 {
		return nil
	}
	longtext, shorttext := text2, text1
	if len(text1) > len(text2) {
		longtext, shorttext = text1, text2
	}
	if len(longtext) < 4 || len(shorttext)*2 < len(longtext) {
		return nil
	}
	hm1 := c.diffHalfMatchSeed(longtext, shorttext, (len(longtext)+3)/4)
	hm2 := c.diffHalfMatchSeed(longtext, shorttext, (len(longtext)+1)/2)

	var hm *halfMatch
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	case len(hm1.midCommon) > len(hm2.midCommon):
		hm = hm1
	default:
		hm = hm2
	}
	if len(text1) > len(text2) {
		return hm
	}
	return &halfMatch{
		text1A: hm.text2A, text1B: hm.text2B,
		text2A: hm.text1A, text2B: hm.text1B,
		midCommon: hm.midCommon,
	}
}

// diffHalfMatchSeed checks whether a 1/4-length substring of longtext
// seeded at i recurs in shorttext with enough surrounding commonality to
// cover at least half of longtext.
func (c *Config) diffHalfMatchSeed(longtext, shorttext []uint16, i int) *halfMatch {
	seed := longtext[i : i+len(longtext)/4]
	var best halfMatch
	var bestLen int
	for j := unitsIndexFrom(shorttext, seed, 0); j != -1; j = unitsIndexFrom(shorttext, seed, j+1) {
		prefixLen := commonPrefixLength(longtext[i:], shorttext[j:])
		suffixLen := commonSuffixLength(longtext[:i], shorttext[:j])
		if bestLen < suffixLen+prefixLen {
			bestLen = suffixLen + prefixLen
			best = halfMatch{
				text1A: longtext[:i-suffixLen],
				text1B: longtext[i+prefixLen:],
				text2A: shorttext[:j-suffixLen],
				text2B: shorttext[j+prefixLen:],
				midCommon: append(append([]uint16{}, shorttext[j-suffixLen:j]...),
					shorttext[j:j+prefixLen]...),
			}
		}
	}
	if bestLen*2 < len(longtext) {
		return nil
	}
	return &best
}
