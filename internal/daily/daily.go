// internal/daily/daily.go
//
// Deterministic "word of the day" selection.
// The same date and salt always map to the same answer index, so the daily
// solve can be reproduced by the CLI and the HTTP API alike.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const dateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD key. An empty key means today.
func ParseDate(key string) (time.Time, error) {
	if key == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(dateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Answer returns the answer word for date.
func Answer(date time.Time, salt string, lex *words.Lexicon) words.Word {
	answers := lex.Answers()
	return answers[WordIndex(date, salt, len(answers))]
}
