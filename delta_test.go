package patchwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffToDeltaRoundTrip(t *testing.T) {
	c := NewDefaultConfig()
	diffs := []Diff{
		{OpEqual, "jump"},
		{OpDelete, "s"},
		{OpInsert, "ed"},
		{OpEqual, " over "},
		{OpDelete, "the"},
		{OpInsert, "a"},
		{OpEqual, " lazy"},
		{OpInsert, "old dog"},
	}
	text1 := c.DiffText1(diffs)
	assert.Equal(t, "jumps over the lazy", text1)

	delta := c.DiffToDelta(diffs)
	assert.Equal(t, "=4\t-1\t+ed\t=6\t-3\t+a\t=5\t+old dog", delta)

	back, err := c.DiffFromDelta(text1, delta)
	require.NoError(t, err)
	assert.Equal(t, diffs, back)
}

func TestDiffToDeltaEscaping(t *testing.T) {
	c := NewDefaultConfig()
	diffs := []Diff{
		{OpEqual, "ڀ \x00 \t %"},
		{OpDelete, "ځ \x01 \n ^"},
		{OpInsert, "ڂ \x02 \\ |"},
	}
	text1 := c.DiffText1(diffs)
	assert.Equal(t, "ڀ \x00 \t %ځ \x01 \n ^", text1)
	delta := c.DiffToDelta(diffs)
	assert.Equal(t, "=7\t-7\t+%DA%82 %02 %5C %7C", delta)

	back, err := c.DiffFromDelta(text1, delta)
	require.NoError(t, err)
	assert.Equal(t, diffs, back)
}

func TestDiffToDeltaUnescapedPool(t *testing.T) {
	c := NewDefaultConfig()
	diffs := []Diff{{OpInsert, "A-Z a-z 0-9 - _ . ! ~ * ' ( ) ; / ? : @ & = + $ , # "}}
	delta := c.DiffToDelta(diffs)
	assert.Equal(t, "+A-Z a-z 0-9 - _ . ! ~ * ' ( ) ; / ? : @ & = + $ , # ", delta)
	back, err := c.DiffFromDelta("", delta)
	require.NoError(t, err)
	assert.Equal(t, diffs, back)
}

func TestDiffFromDeltaErrors(t *testing.T) {
	c := NewDefaultConfig()

	_, err := c.DiffFromDelta("jumps over the lazyx", "=4\t-1\t+ed\t=6\t-3\t+a\t=5\t+old dog")
	require.ErrorIs(t, err, ErrInvalidDelta, "delta shorter than text")

	_, err = c.DiffFromDelta("umps over the lazy", "=4\t-1\t+ed\t=6\t-3\t+a\t=5\t+old dog")
	require.ErrorIs(t, err, ErrInvalidDelta, "delta longer than text")

	_, err = c.DiffFromDelta("", "+%c3%xy")
	require.ErrorIs(t, err, ErrInvalidDelta, "invalid percent escape")

	_, err = c.DiffFromDelta("", "a")
	require.ErrorIs(t, err, ErrInvalidDelta, "unknown token sign")

	_, err = c.DiffFromDelta("", "-")
	require.ErrorIs(t, err, ErrInvalidDelta, "non-numeric count")

	_, err = c.DiffFromDelta("", "--1")
	require.ErrorIs(t, err, ErrInvalidDelta, "negative count")
}

func TestDiffToDeltaSurrogatePair(t *testing.T) {
	c := NewDefaultConfig()
	diffs := []Diff{{OpEqual, "\U0001F600"}}
	delta := c.DiffToDelta(diffs)
	assert.Equal(t, "=2", delta, "an astral character counts as 2 code units in a delta")
	back, err := c.DiffFromDelta("\U0001F600", delta)
	require.NoError(t, err)
	assert.Equal(t, diffs, back)
}
