package patchwork

import "errors"

// Sentinel errors for the failure modes named in the package's design
// notes. Wrap these with fmt.Errorf("%w: ...", ErrX, ...) to attach the
// offending token; callers can still match with errors.Is.
var (
	// ErrInvalidDelta is returned when a delta string is malformed: a bad
	// '+' escape, a non-integer or negative '=' / '-' count, an unknown
	// token sign, or a final cursor that doesn't land on the source length.
	ErrInvalidDelta = errors.New("patchwork: invalid delta")

	// ErrInvalidPatch is returned when a patch text's header doesn't match
	// the "@@ -l,s +l,s @@" form, or a body line has an unknown sign or a
	// malformed percent-escape.
	ErrInvalidPatch = errors.New("patchwork: invalid patch")

	// ErrPatternTooLong is returned when Bitap is asked to match a pattern
	// longer than Config.MatchMaxBits code units.
	ErrPatternTooLong = errors.New("patchwork: pattern too long for bitap")

	// ErrNotInitialized is returned by PatchAddContext when handed a patch
	// whose Start2 was never set.
	ErrNotInitialized = errors.New("patchwork: patch not initialized")

	// ErrUnknownCallShape is returned by PatchMake when its arguments don't
	// match any of the four supported shapes.
	ErrUnknownCallShape = errors.New("patchwork: unrecognized patch-make argument shape")
)
