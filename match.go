package patchwork

import "math"

// Match locates the best occurrence of pattern in text near loc, returning
// its offset in UTF-16 code units, or -1 if no acceptable occurrence exists.
// loc is clamped into [0, len(text)].
func (c *Config) Match(text, pattern string, loc int) (int, error) {
	t, p := toUnits(text), toUnits(pattern)
	loc = max(0, min(loc, len(t)))
	if unitsEqual(t, p) {
		return 0, nil
	}
	if len(t) == 0 {
		return -1, nil
	}
	if loc+len(p) <= len(t) && unitsEqual(t[loc:loc+len(p)], p) {
		return loc, nil
	}
	return c.matchBitap(t, p, loc)
}

// matchBitap locates pattern in text near loc using the Bitap (shift-or)
// algorithm, scoring each candidate by a blend of its error count and its
// distance from loc.
func (c *Config) matchBitap(text, pattern []uint16, loc int) (int, error) {
	if len(pattern) > c.MatchMaxBits {
		return -1, ErrPatternTooLong
	}
	alphabet := c.matchAlphabet(pattern)

	scoreThreshold := c.MatchThreshold
	if bestLoc := unitsIndexFrom(text, pattern, loc); bestLoc != -1 {
		scoreThreshold = math.Min(c.matchBitapScore(0, bestLoc, loc, len(pattern)), scoreThreshold)
		if bestLoc = unitsLastIndexFrom(text, pattern, loc+len(pattern)); bestLoc != -1 {
			scoreThreshold = math.Min(c.matchBitapScore(0, bestLoc, loc, len(pattern)), scoreThreshold)
		}
	}

	matchmask := 1 << uint(len(pattern)-1)
	bestLoc := -1
	var binMin, binMid int
	binMax := len(pattern) + len(text)
	var lastRd []int
	for d := 0; d < len(pattern); d++ {
		// Binary search for how far from loc we can stray at this error
		// level while staying under the current threshold.
		binMin, binMid = 0, binMax
		for binMin < binMid {
			if c.matchBitapScore(d, loc+binMid, loc, len(pattern)) <= scoreThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid
		start := max(1, loc-binMid+1)
		finish := min(loc+binMid, len(text)) + len(pattern)

		rd := make([]int, finish+2)
		rd[finish+1] = (1 << uint(d)) - 1
		for j := finish; j >= start; j-- {
			var charMatch int
			if j-1 >= len(text) {
				charMatch = 0
			} else if m, ok := alphabet[text[j-1]]; ok {
				charMatch = m
			}
			if d == 0 {
				rd[j] = ((rd[j+1] << 1) | 1) & charMatch
			} else {
				rd[j] = (((rd[j+1] << 1) | 1) & charMatch) | (((lastRd[j+1] | lastRd[j]) << 1) | 1) | lastRd[j+1]
			}
			if rd[j]&matchmask != 0 {
				score := c.matchBitapScore(d, j-1, loc, len(pattern))
				if score <= scoreThreshold {
					scoreThreshold = score
					bestLoc = j - 1
					if bestLoc > loc {
						start = max(1, 2*loc-bestLoc)
					} else {
						break
					}
				}
			}
		}
		if c.matchBitapScore(d+1, loc, loc, len(pattern)) > scoreThreshold {
			break
		}
		lastRd = rd
	}
	return bestLoc, nil
}

// matchBitapScore computes the score for a candidate with e errors at
// offset x, given an anchor at loc. Lower is better.
func (c *Config) matchBitapScore(e, x, loc, patternLen int) float64 {
	accuracy := float64(e) / float64(patternLen)
	proximity := math.Abs(float64(loc - x))
	if c.MatchDistance == 0 {
		if proximity == 0 {
			return accuracy
		}
		return 1.0
	}
	return accuracy + proximity/float64(c.MatchDistance)
}

// matchAlphabet builds the Bitap alphabet: for each code unit in pattern, a
// mask with one bit set (from the high end) per occurrence.
func (c *Config) matchAlphabet(pattern []uint16) map[uint16]int {
	s := make(map[uint16]int, len(pattern))
	for _, ch := range pattern {
		if _, ok := s[ch]; !ok {
			s[ch] = 0
		}
	}
	for i, ch := range pattern {
		s[ch] |= 1 << uint(len(pattern)-i-1)
	}
	return s
}
