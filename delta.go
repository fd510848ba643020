package patchwork

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// unescaper restores characters percent-encoded by net/url.QueryEscape
// that don't need escaping for compatibility with JavaScript's encodeURI,
// so the delta produced here matches the reference implementation's
// output byte for byte. Case-sensitive: it matches the uppercase hex that
// url.QueryEscape emits.
var unescaper = strings.NewReplacer(
	"%21", "!", "%7E", "~", "%27", "'",
	"%28", "(", "%29", ")", "%3B", ";",
	"%2F", "/", "%3F", "?", "%3A", ":",
	"%40", "@", "%26", "&", "%3D", "=",
	"%2B", "+", "%24", "$", "%2C", ",",
	"%23", "#", "%2A", "*",
)

// DiffToDelta crushes an edit script into a tab-separated token sequence:
// "=N" keeps N code units, "-N" drops N code units, "+text" inserts text
// percent-escaped, with each space written as a literal space rather than
// as "+" or "%20".
func (c *Config) DiffToDelta(diffs []Diff) string {
	var buf strings.Builder
	for _, d := range diffs {
		switch d.Op {
		case OpInsert:
			buf.WriteByte('+')
			buf.WriteString(strings.ReplaceAll(url.QueryEscape(d.Text), "+", " "))
			buf.WriteByte('\t')
		case OpDelete:
			buf.WriteByte('-')
			buf.WriteString(strconv.Itoa(unitLen(d.Text)))
			buf.WriteByte('\t')
		case OpEqual:
			buf.WriteByte('=')
			buf.WriteString(strconv.Itoa(unitLen(d.Text)))
			buf.WriteByte('\t')
		}
	}
	delta := buf.String()
	if len(delta) != 0 {
		delta = unescaper.Replace(delta[:len(delta)-1]) // drop the trailing tab
	}
	return delta
}

// DiffFromDelta replays a delta against text1 (the source it was produced
// from) to reconstruct the full edit script.
func (c *Config) DiffFromDelta(text1, delta string) ([]Diff, error) {
	var diffs []Diff
	i := 0
	units := toUnits(text1)
	for _, token := range strings.Split(delta, "\t") {
		if len(token) == 0 {
			continue
		}
		param := token[1:]
		switch token[0] {
		case '+':
			param = strings.ReplaceAll(param, "+", "%2b")
			text, err := url.QueryUnescape(param)
			if err != nil {
				return nil, fmt.Errorf("%w: bad insert escape %q: %s", ErrInvalidDelta, param, err)
			}
			diffs = append(diffs, Diff{OpInsert, text})
		case '=', '-':
			n, err := strconv.ParseInt(param, 10, 0)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad count %q", ErrInvalidDelta, param)
			}
			i += int(n)
			if i > len(units) {
				return nil, fmt.Errorf("%w: delta cursor %d exceeds source length %d", ErrInvalidDelta, i, len(units))
			}
			text := fromUnits(units[i-int(n) : i])
			if token[0] == '=' {
				diffs = append(diffs, Diff{OpEqual, text})
			} else {
				diffs = append(diffs, Diff{OpDelete, text})
			}
		default:
			return nil, fmt.Errorf("%w: unknown token sign %q", ErrInvalidDelta, string(token[0]))
		}
	}
	if i != len(units) {
		return nil, fmt.Errorf("%w: delta consumed %d of %d source code units", ErrInvalidDelta, i, len(units))
	}
	return diffs, nil
}
