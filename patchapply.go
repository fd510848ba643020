package patchwork

// PatchApply merges patches onto text, returning the patched text and one
// bool per patch reporting whether it was applied. Patches are matched
// with fuzzy Bitap search near their expected (drift-adjusted) location
// rather than at an exact offset, so the result degrades gracefully when
// text has moved since the patches were cut.
func (c *Config) PatchApply(patches []Patch, text string) (string, []bool) {
	if len(patches) == 0 {
		return text, nil
	}
	patches = c.PatchDeepCopy(patches)
	nullPadding := c.PatchAddPadding(patches)
	units := append(toUnits(nullPadding), append(toUnits(text), toUnits(nullPadding)...)...)
	patches = c.PatchSplitMax(patches)

	results := make([]bool, len(patches))
	delta := 0
	for i, p := range patches {
		expectedLoc := p.Start2 + delta
		text1 := toUnits(c.DiffText1(p.Diffs))
		startLoc := -1
		endLoc := -1
		if len(text1) > c.MatchMaxBits {
			// PatchSplitMax only leaves an oversized pattern for a monster
			// delete; anchor on its head and tail independently.
			loc, err := c.Match(fromUnits(units), fromUnits(text1[:c.MatchMaxBits]), expectedLoc)
			if err == nil {
				startLoc = loc
			}
			if startLoc != -1 {
				loc, err = c.Match(fromUnits(units), fromUnits(text1[len(text1)-c.MatchMaxBits:]), expectedLoc+len(text1)-c.MatchMaxBits)
				if err == nil {
					endLoc = loc
				}
				if endLoc == -1 || startLoc >= endLoc {
					startLoc = -1
				}
			}
		} else {
			loc, err := c.Match(fromUnits(units), fromUnits(text1), expectedLoc)
			if err == nil {
				startLoc = loc
			}
		}
		if startLoc == -1 {
			results[i] = false
			delta -= p.Length2 - p.Length1
			continue
		}
		results[i] = true
		delta = startLoc - expectedLoc
		var text2 []uint16
		if endLoc == -1 {
			text2 = units[startLoc:min(startLoc+len(text1), len(units))]
		} else {
			text2 = units[startLoc:min(endLoc+c.MatchMaxBits, len(units))]
		}
		if unitsEqual(text1, text2) {
			replacement := toUnits(c.DiffText2(p.Diffs))
			units = spliceUnits(units, startLoc, len(text1), replacement...)
			continue
		}
		// Imperfect match: diff the expected and actual windows to build a
		// coordinate map, then replay each non-equal diff entry against it.
		diffs := c.Diff(fromUnits(text1), fromUnits(text2), false)
		if len(text1) > c.MatchMaxBits && float64(c.DiffLevenshtein(diffs))/float64(len(text1)) > c.PatchDeleteThreshold {
			results[i] = false
			continue
		}
		diffs = c.DiffCleanupSemanticLossless(diffs)
		index1 := 0
		for _, d := range p.Diffs {
			dUnits := toUnits(d.Text)
			if d.Op != OpEqual {
				index2 := c.DiffXIndex(diffs, index1)
				switch d.Op {
				case OpInsert:
					units = spliceUnits(units, startLoc+index2, 0, dUnits...)
				case OpDelete:
					deleteEnd := c.DiffXIndex(diffs, index1+len(dUnits))
					units = spliceUnits(units, startLoc+index2, deleteEnd-index2)
				}
			}
			if d.Op != OpDelete {
				index1 += len(dUnits)
			}
		}
	}
	padLen := unitLen(nullPadding)
	return fromUnits(units[padLen : len(units)-padLen]), results
}

// spliceUnits removes n code units at index and inserts elements in their
// place, returning the updated slice.
func spliceUnits(units []uint16, index, n int, elements ...uint16) []uint16 {
	next := make([]uint16, 0, len(units)-n+len(elements))
	next = append(next, units[:index]...)
	next = append(next, elements...)
	next = append(next, units[index+n:]...)
	return next
}

// PatchAddPadding pads patches with a run of PatchMargin null-ish code
// units (values 1..PatchMargin) on both ends of the text before matching,
// so a patch whose context runs off either edge still has something to
// anchor against. Returns the padding string so the caller can strip it
// back off afterward.
func (c *Config) PatchAddPadding(patches []Patch) string {
	paddingLength := c.PatchMargin
	padUnits := make([]uint16, paddingLength)
	for i := range padUnits {
		padUnits[i] = uint16(i + 1)
	}
	nullPadding := fromUnits(padUnits)

	for i := range patches {
		patches[i].Start1 += paddingLength
		patches[i].Start2 += paddingLength
	}

	first := &patches[0]
	if len(first.Diffs) == 0 || first.Diffs[0].Op != OpEqual {
		first.Diffs = append([]Diff{{OpEqual, nullPadding}}, first.Diffs...)
		first.Start1 -= paddingLength
		first.Start2 -= paddingLength
		first.Length1 += paddingLength
		first.Length2 += paddingLength
	} else if existing := unitLen(first.Diffs[0].Text); paddingLength > existing {
		extraLength := paddingLength - existing
		first.Diffs[0].Text = nullPadding[existing:] + first.Diffs[0].Text
		first.Start1 -= extraLength
		first.Start2 -= extraLength
		first.Length1 += extraLength
		first.Length2 += extraLength
	}

	last := &patches[len(patches)-1]
	if len(last.Diffs) == 0 || last.Diffs[len(last.Diffs)-1].Op != OpEqual {
		last.Diffs = append(last.Diffs, Diff{OpEqual, nullPadding})
		last.Length1 += paddingLength
		last.Length2 += paddingLength
	} else if existing := unitLen(last.Diffs[len(last.Diffs)-1].Text); paddingLength > existing {
		extraLength := paddingLength - existing
		last.Diffs[len(last.Diffs)-1].Text += nullPadding[:extraLength]
		last.Length1 += extraLength
		last.Length2 += extraLength
	}
	return nullPadding
}

// PatchSplitMax breaks up any patch whose Length1 exceeds MatchMaxBits
// into several smaller ones, each carrying a slice of surrounding context
// so Match still has something to anchor on.
func (c *Config) PatchSplitMax(patches []Patch) []Patch {
	patchSize := c.MatchMaxBits
	for x := 0; x < len(patches); x++ {
		if patches[x].Length1 <= patchSize {
			continue
		}
		bigpatch := patches[x]
		patches = append(patches[:x], patches[x+1:]...)
		x--
		start1 := bigpatch.Start1
		start2 := bigpatch.Start2
		precontext := ""
		for len(bigpatch.Diffs) != 0 {
			patch := NewPatch()
			empty := true
			patch.Start1 = start1 - unitLen(precontext)
			patch.Start2 = start2 - unitLen(precontext)
			if len(precontext) != 0 {
				patch.Length1 = unitLen(precontext)
				patch.Length2 = unitLen(precontext)
				patch.Diffs = append(patch.Diffs, Diff{OpEqual, precontext})
			}
			for len(bigpatch.Diffs) != 0 && patch.Length1 < patchSize-c.PatchMargin {
				diffType := bigpatch.Diffs[0].Op
				diffUnits := toUnits(bigpatch.Diffs[0].Text)
				switch {
				case diffType == OpInsert:
					patch.Length2 += len(diffUnits)
					start2 += len(diffUnits)
					patch.Diffs = append(patch.Diffs, bigpatch.Diffs[0])
					bigpatch.Diffs = bigpatch.Diffs[1:]
					empty = false
				case diffType == OpDelete && len(patch.Diffs) == 1 && patch.Diffs[0].Op == OpEqual && len(diffUnits) > 2*patchSize:
					// A deletion this large passes through in one chunk
					// rather than being chopped to patchSize.
					patch.Length1 += len(diffUnits)
					start1 += len(diffUnits)
					empty = false
					patch.Diffs = append(patch.Diffs, Diff{diffType, fromUnits(diffUnits)})
					bigpatch.Diffs = bigpatch.Diffs[1:]
				default:
					n := min(len(diffUnits), patchSize-patch.Length1-c.PatchMargin)
					chunk := diffUnits[:n]
					patch.Length1 += len(chunk)
					start1 += len(chunk)
					if diffType == OpEqual {
						patch.Length2 += len(chunk)
						start2 += len(chunk)
					} else {
						empty = false
					}
					patch.Diffs = append(patch.Diffs, Diff{diffType, fromUnits(chunk)})
					if len(chunk) == len(diffUnits) {
						bigpatch.Diffs = bigpatch.Diffs[1:]
					} else {
						bigpatch.Diffs[0].Text = fromUnits(diffUnits[len(chunk):])
					}
				}
			}
			precontext = c.DiffText2(patch.Diffs)
			precontext = precontext[unitStartOf(precontext, c.PatchMargin):]

			bigtext1 := toUnits(c.DiffText1(bigpatch.Diffs))
			postLen := min(len(bigtext1), c.PatchMargin)
			postcontext := fromUnits(bigtext1[:postLen])
			if len(postcontext) != 0 {
				patch.Length1 += unitLen(postcontext)
				patch.Length2 += unitLen(postcontext)
				if n := len(patch.Diffs); n != 0 && patch.Diffs[n-1].Op == OpEqual {
					patch.Diffs[n-1].Text += postcontext
				} else {
					patch.Diffs = append(patch.Diffs, Diff{OpEqual, postcontext})
				}
			}
			if !empty {
				x++
				patches = append(patches[:x], append([]Patch{patch}, patches[x:]...)...)
			}
		}
	}
	return patches
}

// unitStartOf returns the byte offset within s of the position that is
// margin code units from the end, clamped to 0.
func unitStartOf(s string, margin int) int {
	units := toUnits(s)
	n := max(0, len(units)-margin)
	return len(fromUnits(units[:n]))
}
