package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage, "per_page is capped at 100")
}

func TestPaginationParamsOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)

	assert.Equal(t, 2, pag.CurrentPage)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(3, 15, 31)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", at)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.NotNil(t, cursor)

	assert.Equal(t, "abc-123", cursor.ID)
	assert.True(t, at.Equal(cursor.CreatedAt))
}

func TestDecodeCursor_Empty(t *testing.T) {
	params := &CursorParams{}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	params := &CursorParams{Cursor: "not base64!!"}
	_, err := params.DecodeCursor()
	assert.Error(t, err)
}

type cursorItem struct {
	ID        string
	CreatedAt time.Time
}

func TestNewCursorPagination_HasMore(t *testing.T) {
	now := time.Now()
	// limit+1 items fetched means another page exists
	items := []cursorItem{
		{ID: "a", CreatedAt: now},
		{ID: "b", CreatedAt: now},
		{ID: "c", CreatedAt: now},
	}

	pag, trimmed := NewCursorPagination(items, 2,
		func(i cursorItem) string { return i.ID },
		func(i cursorItem) time.Time { return i.CreatedAt },
	)

	assert.Len(t, trimmed, 2)
	assert.True(t, pag.HasNext)
	require.NotNil(t, pag.NextCursor)
	require.NotNil(t, pag.PrevCursor)

	next, err := (&CursorParams{Cursor: *pag.NextCursor}).DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "b", next.ID, "next cursor points at the last returned item")
}

func TestNewCursorPagination_LastPage(t *testing.T) {
	items := []cursorItem{{ID: "a", CreatedAt: time.Now()}}

	pag, trimmed := NewCursorPagination(items, 2,
		func(i cursorItem) string { return i.ID },
		func(i cursorItem) time.Time { return i.CreatedAt },
	)

	assert.Len(t, trimmed, 1)
	assert.False(t, pag.HasNext)
}

func TestCursorParamsValidate(t *testing.T) {
	c := &CursorParams{}
	c.Validate()
	assert.Equal(t, 15, c.Limit)
	assert.Equal(t, CursorDirectionNext, c.Direction)

	c = &CursorParams{Limit: 1000}
	c.Validate()
	assert.Equal(t, 100, c.Limit)
}
