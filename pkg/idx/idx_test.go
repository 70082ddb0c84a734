package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/emailauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)

	// ULIDs carry millisecond resolution
	require.WithinDuration(t, tm, id.Time(), time.Millisecond)
}

func TestFromHeader(t *testing.T) {
	supplied := idx.New()
	require.Equal(t, supplied, idx.FromHeader(supplied.String()))

	for _, junk := range []string{"", "   ", "not-a-ulid", "abc\ninjected=1"} {
		got := idx.FromHeader(junk)
		require.False(t, got.IsZero())
		require.NotEqual(t, idx.ID(junk), got)

		_, err := idx.Parse(got.String())
		require.NoError(t, err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := idx.Parse("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z") // one char short
	require.ErrorIs(t, err, idx.ErrInvalid)
}
