package patchwork

import "unicode/utf16"

// This package counts and slices text in UTF-16 code units rather than
// bytes or runes. That is an explicit requirement, not a style choice: the
// delta and patch-text wire formats carry offsets and lengths, and those
// only round-trip against the reference implementation if both sides agree
// on what a "character" is. Go's native []rune view (one element per code
// point) disagrees with it for anything outside the Basic Multilingual
// Plane. toUnits/fromUnits are the seam; everything between them operates
// on []uint16, one level down from a []rune-shaped view at the wire's
// actual unit.

// toUnits encodes s as UTF-16 code units.
func toUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// fromUnits decodes UTF-16 code units back to a string. A code unit that
// isn't part of a valid surrogate pair decodes to the replacement
// character, same as the reference implementation's treatment of a split
// surrogate produced by slicing mid-pair.
func fromUnits(u []uint16) string {
	return string(utf16.Decode(u))
}

// unitLen returns the length of s in UTF-16 code units.
func unitLen(s string) int {
	return len(toUnits(s))
}

// unitsEqual reports whether two code unit slices are identical.
func unitsEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i, c := range a {
		if c != b[i] {
			return false
		}
	}
	return true
}

// unitsIndex is strings.Index for code unit slices: the first offset at
// which b occurs in a, or -1.
func unitsIndex(a, b []uint16) int {
	if len(b) == 0 {
		return 0
	}
	last := len(a) - len(b)
	for i := 0; i <= last; i++ {
		if unitsEqual(a[i:i+len(b)], b) {
			return i
		}
	}
	return -1
}

// unitsIndexFrom returns the first offset at or after i where pattern
// occurs in target, or -1.
func unitsIndexFrom(target, pattern []uint16, i int) int {
	if i > len(target)-1 {
		return -1
	}
	if i <= 0 {
		return unitsIndex(target, pattern)
	}
	found := unitsIndex(target[i:], pattern)
	if found == -1 {
		return -1
	}
	return found + i
}

// unitsLastIndexFrom returns the last offset at or before i where pattern
// occurs in target, or -1.
func unitsLastIndexFrom(target, pattern []uint16, i int) int {
	if i < 0 {
		return -1
	}
	end := i + len(pattern)
	if end > len(target) {
		end = len(target)
	}
	last := -1
	for start := 0; start+len(pattern) <= end; start++ {
		if unitsEqual(target[start:start+len(pattern)], pattern) {
			last = start
		}
	}
	return last
}

// commonPrefixLength returns the length of the longest common prefix of
// two code unit slices. A linear scan; see commonSuffixLength for why this
// package doesn't bother with the binary-search variant some ports use.
func commonPrefixLength(text1, text2 []uint16) int {
	n := 0
	for n < len(text1) && n < len(text2) && text1[n] == text2[n] {
		n++
	}
	return n
}

// commonSuffixLength returns the length of the longest common suffix of
// two code unit slices.
//
// A binary search over substring equality only pays for itself when
// comparison is cheap per probe and the common region is long; here every
// probe is itself an O(n) slice compare, so the asymptotics are the same
// either way and the linear scan is simpler to get right at the boundary.
func commonSuffixLength(text1, text2 []uint16) int {
	i1, i2 := len(text1), len(text2)
	n := 0
	for i1 > 0 && i2 > 0 && text1[i1-1] == text2[i2-1] {
		i1--
		i2--
		n++
	}
	return n
}

// commonOverlapLength returns the length of the longest suffix of text1
// that is also a prefix of text2.
func commonOverlapLength(text1, text2 []uint16) int {
	text1Len, text2Len := len(text1), len(text2)
	if text1Len == 0 || text2Len == 0 {
		return 0
	}
	if text1Len > text2Len {
		text1 = text1[text1Len-text2Len:]
	} else if text1Len < text2Len {
		text2 = text2[:text1Len]
	}
	textLen := min(text1Len, text2Len)
	if unitsEqual(text1, text2) {
		return textLen
	}
	// Start with a single-unit match and grow until none is found; see
	// https://neil.fraser.name/news/2010/11/04/ for why this beats a naive
	// O(n^2) scan in the common case.
	best := 0
	length := 1
	for {
		pattern := text1[textLen-length:]
		found := unitsIndex(text2, pattern)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 || unitsEqual(text1[textLen-length:], text2[:length]) {
			best = length
			length++
		}
	}
}

// spliceDiffs removes amount elements from diffs at index, replacing them
// with elements.
func spliceDiffs(diffs []Diff, index, amount int, elements ...Diff) []Diff {
	if len(elements) == amount {
		copy(diffs[index:], elements)
		return diffs
	}
	if len(elements) < amount {
		copy(diffs[index:], elements)
		copy(diffs[index+len(elements):], diffs[index+amount:])
		end := len(diffs) - amount + len(elements)
		tail := diffs[end:]
		for i := range tail {
			tail[i] = Diff{}
		}
		return diffs[:end]
	}
	need := len(diffs) - amount + len(elements)
	for len(diffs) < need {
		diffs = append(diffs, Diff{})
	}
	copy(diffs[index+len(elements):], diffs[index+amount:])
	copy(diffs[index:], elements)
	return diffs
}
