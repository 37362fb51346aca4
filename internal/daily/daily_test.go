package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", DateKey(d))

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)

	today, err := ParseDate("")
	require.NoError(t, err)
	assert.Equal(t, DateKey(time.Now()), DateKey(today))
}

func TestWordIndexDeterministic(t *testing.T) {
	d := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)
	i := WordIndex(d, "salt", 2311)
	assert.Equal(t, i, WordIndex(d, "salt", 2311))
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 2311)
	assert.Zero(t, WordIndex(d, "salt", 0))

	// the same calendar day in another zone maps through UTC
	local := d.In(time.FixedZone("x", 3600))
	assert.Equal(t, i, WordIndex(local, "salt", 2311))
}

func TestWordIndexVaries(t *testing.T) {
	seen := map[int]bool{}
	d := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for n := 0; n < 30; n++ {
		seen[WordIndex(d.AddDate(0, 0, n), "salt", 2311)] = true
	}
	assert.Greater(t, len(seen), 20)
}

func TestAnswer(t *testing.T) {
	lex, err := words.Embedded()
	require.NoError(t, err)
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	w := Answer(d, "salt", lex)
	assert.True(t, lex.IsAnswer(w))
	assert.Equal(t, w, Answer(d, "salt", lex))
}
