package store_test

import (
	"testing"

	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/database"
	"github.com/mauv0809/court-draw/internal/schedule"
	"github.com/mauv0809/court-draw/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database with the schema applied.
func setupTestDB(t *testing.T) store.Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return store.New(db)
}

func newSchedule(t *testing.T) *store.ScheduleRecord {
	t.Helper()
	players := []schedule.Participant{"ann", "bob", "cat", "dan", "eve"}
	rounds, err := schedule.Generate(players, 1, 2, schedule.WithSeed(42))
	require.NoError(t, err)
	return &store.ScheduleRecord{
		CourtCount:   1,
		RoundCount:   2,
		Participants: players,
		Rounds:       rounds,
		Seed:         42,
	}
}

func newBracket(t *testing.T) *store.BracketRecord {
	t.Helper()
	b, err := bracket.Generate([]bracket.Participant{"ann", "bob", "cat"}, bracket.Singles, bracket.Random, nil, bracket.WithSeed(9))
	require.NoError(t, err)
	return &store.BracketRecord{
		Name:     "Friday ladder",
		GameType: bracket.Singles,
		Mode:     bracket.Random,
		Bracket:  b,
		Seed:     9,
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	s := setupTestDB(t)
	rec := newSchedule(t)

	require.NoError(t, s.CreateSchedule(rec))
	require.NotEmpty(t, rec.ID)
	require.False(t, rec.CreatedAt.IsZero())

	got, err := s.GetSchedule(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestListSchedules_NewestFirst(t *testing.T) {
	s := setupTestDB(t)

	list, err := s.ListSchedules()
	require.NoError(t, err)
	assert.Empty(t, list)

	first, second := newSchedule(t), newSchedule(t)
	require.NoError(t, s.CreateSchedule(first))
	require.NoError(t, s.CreateSchedule(second))

	list, err = s.ListSchedules()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestDeleteSchedule(t *testing.T) {
	s := setupTestDB(t)
	rec := newSchedule(t)
	require.NoError(t, s.CreateSchedule(rec))

	require.NoError(t, s.DeleteSchedule(rec.ID))
	_, err := s.GetSchedule(rec.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteSchedule(rec.ID), store.ErrNotFound)
}

func TestGetMissing(t *testing.T) {
	s := setupTestDB(t)

	_, err := s.GetSchedule("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetBracket("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBracketRoundTrip(t *testing.T) {
	s := setupTestDB(t)
	rec := newBracket(t)

	require.NoError(t, s.CreateBracket(rec))
	assert.Equal(t, 1, rec.Version)

	got, err := s.GetBracket(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	list, err := s.ListBrackets()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)
}

func TestUpdateBracket_OptimisticVersion(t *testing.T) {
	s := setupTestDB(t)
	rec := newBracket(t)
	require.NoError(t, s.CreateBracket(rec))

	stale, err := s.GetBracket(rec.ID)
	require.NoError(t, err)

	updated, err := bracket.SetScore(rec.Bracket, 0, 0, bracket.SideTeam1, 6)
	require.NoError(t, err)
	rec.Bracket = updated
	require.NoError(t, s.UpdateBracket(rec))
	assert.Equal(t, 2, rec.Version)

	got, err := s.GetBracket(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	require.NotNil(t, got.Bracket.Rounds[0].Matches[0].Score1)
	assert.Equal(t, 6, *got.Bracket.Rounds[0].Matches[0].Score1)

	err = s.UpdateBracket(stale)
	assert.ErrorIs(t, err, store.ErrVersionConflict)
	assert.Equal(t, 1, stale.Version)

	missing := newBracket(t)
	missing.ID = "missing"
	missing.Version = 1
	assert.ErrorIs(t, s.UpdateBracket(missing), store.ErrNotFound)
}

func TestDeleteBracket(t *testing.T) {
	s := setupTestDB(t)
	rec := newBracket(t)
	require.NoError(t, s.CreateBracket(rec))

	require.NoError(t, s.DeleteBracket(rec.ID))
	assert.ErrorIs(t, s.DeleteBracket(rec.ID), store.ErrNotFound)
}
