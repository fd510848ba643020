// Package patchwork implements a text differencing, fuzzy matching, and
// patching library: a Myers bisection diff engine with prefix/suffix
// trimming, half-match decomposition, line-mode collapse and cleanup
// passes; a Bitap fuzzy matcher; and a patch engine that assembles
// context-bearing patches from an edit script and applies them, with
// tolerance, to a drifted copy of the source text.
package patchwork

import "time"

// Config holds the seven tunables that govern diff, match, and patch
// behavior. The zero Config is not usable directly; start from
// NewDefaultConfig and override individual fields.
type Config struct {
	// DiffTimeout bounds how long the diff core may spend bisecting before
	// it gives up and returns a coarse [delete, insert] diff. Zero or
	// negative means unlimited, which also disables the half-match
	// heuristic (never sacrifice minimality for speed when time is free).
	DiffTimeout time.Duration
	// DiffEditCost is the granularity threshold efficiency cleanup uses to
	// decide whether a short equality is worth fusing into its neighbors.
	DiffEditCost int

	// MatchDistance is how many code units of drift from the expected
	// location are tolerated before a match's proximity score saturates.
	MatchDistance int
	// MatchMaxBits caps the pattern length Bitap can search for, and
	// doubles as the patch chunk size used by PatchSplitMax.
	MatchMaxBits int
	// MatchThreshold is the score ceiling above which Match gives up
	// (0 = exact match required, 1 = anything goes).
	MatchThreshold float64

	// PatchDeleteThreshold is the accept/reject ratio for a big-delete
	// patch whose endpoints matched but whose interior drifted.
	PatchDeleteThreshold float64
	// PatchMargin is the context chunk length used while assembling and
	// padding patches.
	PatchMargin int
}

// NewDefaultConfig returns a Config populated with the library's defaults.
func NewDefaultConfig() *Config {
	return &Config{
		DiffTimeout:          time.Second,
		DiffEditCost:         4,
		MatchDistance:        1000,
		MatchMaxBits:         32,
		MatchThreshold:       0.5,
		PatchDeleteThreshold: 0.5,
		PatchMargin:          4,
	}
}
