package core

import (
	"fmt"
	"strconv"
	"strings"
)

// NextID returns the next sequential id of the form <prefix><digits>, one past
// the largest numeric suffix found among records. Ids that do not match the
// pattern are ignored. The suffix is zero-padded to width but never truncated.
func NextID(records []Record, prefix string, width int) string {
	highest := 0
	for _, r := range records {
		n, ok := idNumber(r, prefix)
		if ok && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, highest+1)
}

func idNumber(r Record, prefix string) (int, bool) {
	v, ok := r.Get(IDField)
	if !ok {
		return 0, false
	}
	id, ok := v.Str()
	if !ok || !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	digits := id[len(prefix):]
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
