package synth

import "github.com/dustin/go-humanize"

// humanizeCount renders a byte/character count the way spec §4.6's
// value-truncating representation helper reports how much of a large
// value's repr was elided. Grounded on this teacher's own use of
// go-humanize for size-oriented diagnostic messages.
func humanizeCount(n int) string {
	return humanize.Bytes(uint64(n)) + " of repr"
}
