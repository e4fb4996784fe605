// Package daily picks the puzzle of the day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// PuzzleNum returns the 1-based puzzle number for the date, using
// HMAC(salt, YYYY-MM-DD) % count.
func PuzzleNum(date time.Time, salt string, count int) int {
	if count <= 0 {
		return 1
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n%uint64(count)) + 1
}
