package cardstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifestory-core/internal/cards"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return NewRepository(db)
}

func draftAt(id, sessionID string, cardType cards.Type, date time.Time) *cards.Draft {
	return &cards.Draft{
		ID:          id,
		Type:        cardType,
		Title:       "Title " + id,
		Description: "Description " + id,
		Date:        date,
		ImageURL:    "https://img.example/" + id + ".png",
		SessionID:   sessionID,
		CreatedAt:   date,
	}
}

func TestSaveAndLoadForSession(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	draft := draftAt("c-1", "s-1", cards.TypePlace, time.Date(2010, 6, 1, 12, 0, 0, 0, time.UTC))
	draft.Location = "Portland, Oregon"
	require.NoError(t, repo.Save(ctx, draft))

	loaded, err := repo.LoadForSession(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, draft, loaded[0])
}

func TestPeopleSurviveRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	draft := draftAt("c-1", "s-1", cards.TypePerson, time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC))
	draft.People = []string{"mother", "father"}
	require.NoError(t, repo.Save(ctx, draft))

	loaded, err := repo.LoadForSession(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, []string{"mother", "father"}, loaded[0].People)
	assert.Empty(t, loaded[0].Location)
}

func TestLoadForSessionFiltersBySession(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, draftAt("c-1", "s-1", cards.TypeMemory, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Save(ctx, draftAt("c-2", "s-2", cards.TypeMemory, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))))

	loaded, err := repo.LoadForSession(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "c-1", loaded[0].ID)
}

func TestTimelineSortsByDateDescending(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	oldest := draftAt("c-1", "s-1", cards.TypeEvent, time.Date(1995, 3, 1, 0, 0, 0, 0, time.UTC))
	middle := draftAt("c-2", "s-1", cards.TypePlace, time.Date(2005, 7, 15, 0, 0, 0, 0, time.UTC))
	newest := draftAt("c-3", "s-1", cards.TypeMemory, time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC))

	for _, draft := range []*cards.Draft{middle, newest, oldest} {
		require.NoError(t, repo.Save(ctx, draft))
	}

	timeline, err := repo.Timeline(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, timeline, 3)
	assert.Equal(t, "c-3", timeline[0].ID)
	assert.Equal(t, "c-2", timeline[1].ID)
	assert.Equal(t, "c-1", timeline[2].ID)
}

func TestLoadForSessionEmptyResult(t *testing.T) {
	repo := newTestRepository(t)

	loaded, err := repo.LoadForSession(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
