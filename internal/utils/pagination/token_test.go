package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard date/time values
	c := Cursor{
		Date:      time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "txn-1",
	}

	token := EncodeToken(c)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, c, decoded, "Cursor should match after decode")

	// Current time values
	now := time.Now().UTC()
	nowDecoded, err := DecodeToken(EncodeToken(Cursor{Date: now, CreatedAt: now, ID: "x"}))
	assert.NoError(t, err)
	assert.True(t, now.Equal(nowDecoded.Date), "Current date should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeToken(rawToken("2023-05-15T00:00:00Z"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeToken(rawToken("notadate", "2023-05-15T14:30:45Z", "id"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")

	_, err = DecodeToken(rawToken("2023-05-15T00:00:00Z", "2023-05-15T14:30:45Z", ""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty id")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
}

func TestAfter_WalksAllItems(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]Cursor, 0, 7)
	for i := 0; i < 7; i++ {
		// Two items share each date so the created/id tie-breaks matter.
		items = append(items, Cursor{Date: base.AddDate(0, 0, i/2), CreatedAt: base, ID: fmt.Sprintf("id-%d", i)})
	}
	identity := func(c Cursor) Cursor { return c }

	var seen []string
	var after *Cursor
	for pages := 0; pages < 10; pages++ {
		page := After(items, after, 3, identity)
		for _, c := range page {
			seen = append(seen, c.ID)
		}
		if len(page) < 3 {
			break
		}
		// Round-trip through the token like a client would.
		next, err := DecodeToken(EncodeToken(page[len(page)-1]))
		require.NoError(t, err)
		after = &next
	}

	assert.Equal(t, []string{"id-0", "id-1", "id-2", "id-3", "id-4", "id-5", "id-6"}, seen)
}

func TestAfter_CursorPastEnd(t *testing.T) {
	items := []Cursor{{ID: "a"}, {ID: "b"}}
	identity := func(c Cursor) Cursor { return c }

	assert.Empty(t, After(items, &Cursor{ID: "z"}, 5, identity))
	assert.Len(t, After(items, nil, 0, identity), 2, "non-positive limit returns the rest")
}

func rawToken(fields ...string) string {
	return base64.URLEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}
