package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The idx tests run sequentially: they share the package-level monotonic
// entropy source, and interleaving calls with out-of-order timestamps would
// make the strict-ordering assertions racy.

func TestNewIsMonotonic(t *testing.T) {
	prev := New()
	for range 100 {
		next := New()
		require.Equal(t, -1, Compare(prev, next))
		prev = next
	}
}

func TestNewAtEmbedsTimestamp(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)
	require.Equal(t, at, id.Time())
}

func TestTimeOrderingMatchesLexicalOrdering(t *testing.T) {
	early := NewAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	late := NewAt(time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC))
	require.Equal(t, -1, Compare(early, late))
}

func TestParse(t *testing.T) {
	id := New()
	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = Parse("")
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Parse("not-a-ulid")
	require.ErrorIs(t, err, ErrInvalid)

	// ULIDs are 26 chars of Crockford base32; lowercase is rejected by
	// strict parsing.
	_, err = Parse("01hzzzzzzz0000000000000001")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	require.Panics(t, func() { MustParse("nope") })
	require.NotPanics(t, func() { MustParse(New().String()) })
}

func TestZero(t *testing.T) {
	require.True(t, Zero.IsZero())
	require.False(t, New().IsZero())
	require.True(t, Zero.Time().IsZero())
}
