package patchwork

import (
	"regexp"
	"strings"
)

// DiffCleanupMerge reorders and merges adjacent same-op entries, factoring
// common prefixes/suffixes of coincident insert+delete pairs into
// neighboring equalities, then makes a second pass sliding single edits
// across an adjacent equality when that eliminates it. Re-entrant: a
// shift-induced change reruns the whole pass.
func (c *Config) DiffCleanupMerge(diffs []Diff) []Diff {
	if len(diffs) == 0 {
		return diffs
	}
	diffs = append(diffs, Diff{OpEqual, ""})
	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert []uint16
	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case OpInsert:
			countInsert++
			textInsert = append(textInsert, toUnits(diffs[pointer].Text)...)
			pointer++
		case OpDelete:
			countDelete++
			textDelete = append(textDelete, toUnits(diffs[pointer].Text)...)
			pointer++
		case OpEqual:
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					commonlength := commonPrefixLength(textInsert, textDelete)
					if commonlength != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].Op == OpEqual {
							diffs[x-1].Text += fromUnits(textInsert[:commonlength])
						} else {
							diffs = append([]Diff{{OpEqual, fromUnits(textInsert[:commonlength])}}, diffs...)
							pointer++
						}
						textInsert = textInsert[commonlength:]
						textDelete = textDelete[commonlength:]
					}
					commonlength = commonSuffixLength(textInsert, textDelete)
					if commonlength != 0 {
						insertIndex := len(textInsert) - commonlength
						deleteIndex := len(textDelete) - commonlength
						diffs[pointer].Text = fromUnits(textInsert[insertIndex:]) + diffs[pointer].Text
						textInsert = textInsert[:insertIndex]
						textDelete = textDelete[:deleteIndex]
					}
				}
				switch {
				case countDelete == 0:
					diffs = spliceDiffs(diffs, pointer-countInsert, countDelete+countInsert,
						Diff{OpInsert, fromUnits(textInsert)})
				case countInsert == 0:
					diffs = spliceDiffs(diffs, pointer-countDelete, countDelete+countInsert,
						Diff{OpDelete, fromUnits(textDelete)})
				default:
					diffs = spliceDiffs(diffs, pointer-countDelete-countInsert, countDelete+countInsert,
						Diff{OpDelete, fromUnits(textDelete)}, Diff{OpInsert, fromUnits(textInsert)})
				}
				pointer = pointer - countDelete - countInsert + 1
				if countDelete != 0 {
					pointer++
				}
				if countInsert != 0 {
					pointer++
				}
			} else if pointer != 0 && diffs[pointer-1].Op == OpEqual {
				diffs[pointer-1].Text += diffs[pointer].Text
				diffs = append(diffs[:pointer], diffs[pointer+1:]...)
			} else {
				pointer++
			}
			countInsert, countDelete = 0, 0
			textDelete, textInsert = nil, nil
		}
	}
	if len(diffs[len(diffs)-1].Text) == 0 {
		diffs = diffs[:len(diffs)-1]
	}

	// Second pass: shift a single edit across an adjacent equality when it
	// eliminates that equality. E.g. A<ins>BA</ins>C -> <ins>AB</ins>AC.
	changes := false
	pointer = 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Op == OpEqual && diffs[pointer+1].Op == OpEqual {
			switch {
			case strings.HasSuffix(diffs[pointer].Text, diffs[pointer-1].Text):
				diffs[pointer].Text = diffs[pointer-1].Text +
					diffs[pointer].Text[:len(diffs[pointer].Text)-len(diffs[pointer-1].Text)]
				diffs[pointer+1].Text = diffs[pointer-1].Text + diffs[pointer+1].Text
				diffs = spliceDiffs(diffs, pointer-1, 1)
				changes = true
			case strings.HasPrefix(diffs[pointer].Text, diffs[pointer+1].Text):
				diffs[pointer-1].Text += diffs[pointer+1].Text
				diffs[pointer].Text = diffs[pointer].Text[len(diffs[pointer+1].Text):] + diffs[pointer+1].Text
				diffs = spliceDiffs(diffs, pointer+1, 1)
				changes = true
			}
		}
		pointer++
	}
	if changes {
		diffs = c.DiffCleanupMerge(diffs)
	}
	return diffs
}

// DiffCleanupSemantic eliminates equalities that are semantically trivial
// (no bigger than the edits that surround them on either side), then
// factors out overlapping delete/insert pairs into an explicit equality.
func (c *Config) DiffCleanupSemantic(diffs []Diff) []Diff {
	changes := false
	equalities := make([]int, 0, len(diffs))
	var lastequality string
	pointer := 0
	var lengthInsertions1, lengthDeletions1 int
	var lengthInsertions2, lengthDeletions2 int
	for pointer < len(diffs) {
		if diffs[pointer].Op == OpEqual {
			equalities = append(equalities, pointer)
			lengthInsertions1, lengthDeletions1 = lengthInsertions2, lengthDeletions2
			lengthInsertions2, lengthDeletions2 = 0, 0
			lastequality = diffs[pointer].Text
		} else {
			if diffs[pointer].Op == OpInsert {
				lengthInsertions2 += unitLen(diffs[pointer].Text)
			} else {
				lengthDeletions2 += unitLen(diffs[pointer].Text)
			}
			difference1 := max(lengthInsertions1, lengthDeletions1)
			difference2 := max(lengthInsertions2, lengthDeletions2)
			if unitLen(lastequality) > 0 &&
				unitLen(lastequality) <= difference1 &&
				unitLen(lastequality) <= difference2 {
				insPoint := equalities[len(equalities)-1]
				diffs = spliceDiffs(diffs, insPoint, 0, Diff{OpDelete, lastequality})
				diffs[insPoint+1].Op = OpInsert
				equalities = equalities[:len(equalities)-1]
				if len(equalities) > 0 {
					equalities = equalities[:len(equalities)-1]
				}
				pointer = -1
				if len(equalities) > 0 {
					pointer = equalities[len(equalities)-1]
				}
				lengthInsertions1, lengthDeletions1 = 0, 0
				lengthInsertions2, lengthDeletions2 = 0, 0
				lastequality = ""
				changes = true
			}
		}
		pointer++
	}
	if changes {
		diffs = c.DiffCleanupMerge(diffs)
	}
	diffs = c.DiffCleanupSemanticLossless(diffs)

	// Find overlaps between a deletion and the insertion right after it:
	// <del>abcxxx</del><ins>xxxdef</ins> -> <del>abc</del>xxx<ins>def</ins>
	// <del>xxxabc</del><ins>defxxx</ins> -> <ins>def</ins>xxx<del>abc</del>
	// Only extracted when the overlap is at least half of either edit.
	pointer = 1
	for pointer < len(diffs) {
		if diffs[pointer-1].Op == OpDelete && diffs[pointer].Op == OpInsert {
			deletion := diffs[pointer-1].Text
			insertion := diffs[pointer].Text
			overlap1 := c.DiffCommonOverlap(deletion, insertion)
			overlap2 := c.DiffCommonOverlap(insertion, deletion)
			delUnits, insUnits := toUnits(deletion), toUnits(insertion)
			if overlap1 >= overlap2 {
				if float64(overlap1) >= float64(len(delUnits))/2 || float64(overlap1) >= float64(len(insUnits))/2 {
					overlapText := fromUnits(insUnits[:overlap1])
					diffs = spliceDiffs(diffs, pointer, 0, Diff{OpEqual, overlapText})
					diffs[pointer-1].Text = fromUnits(delUnits[:len(delUnits)-overlap1])
					diffs[pointer+1].Text = fromUnits(insUnits[overlap1:])
					pointer++
				}
			} else {
				if float64(overlap2) >= float64(len(delUnits))/2 || float64(overlap2) >= float64(len(insUnits))/2 {
					overlapText := fromUnits(delUnits[:overlap2])
					diffs = spliceDiffs(diffs, pointer, 0, Diff{OpEqual, overlapText})
					diffs[pointer-1].Op = OpInsert
					diffs[pointer-1].Text = fromUnits(insUnits[:len(insUnits)-overlap2])
					diffs[pointer+1].Op = OpDelete
					diffs[pointer+1].Text = fromUnits(delUnits[overlap2:])
					pointer++
				}
			}
			pointer++
		}
		pointer++
	}
	return diffs
}

var (
	nonAlphaNumericRE = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRE      = regexp.MustCompile(`\s`)
	crlfRE            = regexp.MustCompile(`[\r\n]`)
	blankEndRE        = regexp.MustCompile(`\n\r?\n$`)
)

// diffCleanupSemanticScore scores a candidate boundary between one and two
// from 0 (mid-word) to 6 (an edge). Purely cosmetic: affects only which of
// several equally-valid alignments of an edit is chosen.
func diffCleanupSemanticScore(one, two string) int {
	if len(one) == 0 || len(two) == 0 {
		return 6
	}
	char1 := string([]rune(one)[len([]rune(one))-1:])
	char2 := string([]rune(two)[:1])
	nonAlphaNumeric1 := nonAlphaNumericRE.MatchString(char1)
	nonAlphaNumeric2 := nonAlphaNumericRE.MatchString(char2)
	whitespace1 := nonAlphaNumeric1 && whitespaceRE.MatchString(char1)
	whitespace2 := nonAlphaNumeric2 && whitespaceRE.MatchString(char2)
	lineBreak1 := whitespace1 && crlfRE.MatchString(char1)
	lineBreak2 := whitespace2 && crlfRE.MatchString(char2)
	blankLine1 := lineBreak1 && blankEndRE.MatchString(one)
	blankLine2 := lineBreak2 && blankEndRE.MatchString(two)
	switch {
	case blankLine1 || blankLine2:
		return 5
	case lineBreak1 || lineBreak2:
		return 4
	case nonAlphaNumeric1 && !whitespace1 && whitespace2:
		return 3
	case whitespace1 || whitespace2:
		return 2
	case nonAlphaNumeric1 || nonAlphaNumeric2:
		return 1
	default:
		return 0
	}
}

// DiffCleanupSemanticLossless slides a single edit sandwiched between two
// equalities sideways, character by character, to the alignment with the
// highest boundary score (ties favor the later position, which biases
// trailing rather than leading whitespace onto the edit).
func (c *Config) DiffCleanupSemanticLossless(diffs []Diff) []Diff {
	pointer := 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Op == OpEqual && diffs[pointer+1].Op == OpEqual {
			equality1 := diffs[pointer-1].Text
			edit := diffs[pointer].Text
			equality2 := diffs[pointer+1].Text

			commonOffset := c.DiffCommonSuffix(equality1, edit)
			if commonOffset > 0 {
				u := toUnits(edit)
				commonString := fromUnits(u[len(u)-commonOffset:])
				eq1 := toUnits(equality1)
				equality1 = fromUnits(eq1[:len(eq1)-commonOffset])
				edit = commonString + fromUnits(u[:len(u)-commonOffset])
				equality2 = commonString + equality2
			}

			bestEquality1, bestEdit, bestEquality2 := equality1, edit, equality2
			bestScore := diffCleanupSemanticScore(equality1, edit) + diffCleanupSemanticScore(edit, equality2)
			for len(edit) != 0 && len(equality2) != 0 {
				r := []rune(edit)[0]
				sz := len(string(r))
				if len(equality2) < sz || equality2[:sz] != string(r) {
					break
				}
				equality1 += edit[:sz]
				edit = edit[sz:] + equality2[:sz]
				equality2 = equality2[sz:]
				score := diffCleanupSemanticScore(equality1, edit) + diffCleanupSemanticScore(edit, equality2)
				if score >= bestScore {
					bestScore = score
					bestEquality1, bestEdit, bestEquality2 = equality1, edit, equality2
				}
			}

			if diffs[pointer-1].Text != bestEquality1 {
				if len(bestEquality1) != 0 {
					diffs[pointer-1].Text = bestEquality1
				} else {
					diffs = spliceDiffs(diffs, pointer-1, 1)
					pointer--
				}
				diffs[pointer].Text = bestEdit
				if len(bestEquality2) != 0 {
					diffs[pointer+1].Text = bestEquality2
				} else {
					diffs = append(diffs[:pointer+1], diffs[pointer+2:]...)
					pointer--
				}
			}
		}
		pointer++
	}
	return diffs
}

// DiffCleanupEfficiency eliminates equalities that are operationally
// trivial: shorter than DiffEditCost and surrounded by enough edits that
// fusing them into one delete+insert pair costs fewer total operations.
func (c *Config) DiffCleanupEfficiency(diffs []Diff) []Diff {
	changes := false
	type equality struct {
		data int
		next *equality
	}
	var equalities *equality
	lastequality := ""
	pointer := 0
	preIns, preDel, postIns, postDel := false, false, false, false
	for pointer < len(diffs) {
		if diffs[pointer].Op == OpEqual {
			if unitLen(diffs[pointer].Text) < c.DiffEditCost && (postIns || postDel) {
				equalities = &equality{data: pointer, next: equalities}
				preIns, preDel = postIns, postDel
				lastequality = diffs[pointer].Text
			} else {
				equalities = nil
				lastequality = ""
			}
			postIns, postDel = false, false
		} else {
			if diffs[pointer].Op == OpDelete {
				postDel = true
			} else {
				postIns = true
			}
			var sumPres int
			if preIns {
				sumPres++
			}
			if preDel {
				sumPres++
			}
			if postIns {
				sumPres++
			}
			if postDel {
				sumPres++
			}
			if len(lastequality) > 0 &&
				((preIns && preDel && postIns && postDel) ||
					(unitLen(lastequality) < c.DiffEditCost/2 && sumPres == 3)) {
				insPoint := equalities.data
				diffs = spliceDiffs(diffs, insPoint, 0, Diff{OpDelete, lastequality})
				diffs[insPoint+1].Op = OpInsert
				equalities = equalities.next
				lastequality = ""
				if preIns && preDel {
					postIns, postDel = true, true
					equalities = nil
				} else {
					if equalities != nil {
						equalities = equalities.next
					}
					if equalities != nil {
						pointer = equalities.data
					} else {
						pointer = -1
					}
					postIns, postDel = false, false
				}
				changes = true
			}
		}
		pointer++
	}
	if changes {
		diffs = c.DiffCleanupMerge(diffs)
	}
	return diffs
}
