package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/database"
	"github.com/mauv0809/court-draw/internal/metrics"
	"github.com/mauv0809/court-draw/internal/notifier"
	"github.com/mauv0809/court-draw/internal/playtomic"
	"github.com/mauv0809/court-draw/internal/pubsub"
	"github.com/mauv0809/court-draw/internal/schedule"
	"github.com/mauv0809/court-draw/internal/session"
	"github.com/mauv0809/court-draw/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       *session.Service
	store     store.Store
	totals    metrics.Store
	metrics   *metrics.Mock
	notifier  *notifier.Mock
	pubsub    *pubsub.MockPubSubClient
	playtomic *playtomic.MockClient
}

// setupTestService wires a Service to an in-memory database and mock collaborators.
func setupTestService(t *testing.T, tenantID string) *fixture {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	f := &fixture{
		store:     store.New(db),
		totals:    metrics.New(db),
		metrics:   metrics.NewMock(),
		notifier:  notifier.NewMock(),
		pubsub:    pubsub.NewMock(),
		playtomic: playtomic.NewMockClient(),
	}
	f.svc = session.New(f.store, f.totals, f.metrics, f.notifier, f.pubsub, f.playtomic, tenantID)
	return f
}

func seed(v int64) *int64 { return &v }

func TestGenerateSchedule(t *testing.T) {
	f := setupTestService(t, "")

	rec, err := f.svc.GenerateSchedule(context.Background(), session.ScheduleRequest{
		Participants: []string{"ann", "bob", "cat", "dan", "eve", "fay", "gus", "hal", "ivy"},
		Courts:       2,
		Rounds:       3,
		Seed:         seed(4),
	}, false)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	assert.Len(t, rec.Rounds, 3)
	assert.Equal(t, int64(4), rec.Seed)

	stored, err := f.svc.GetSchedule(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Rounds, stored.Rounds)

	assert.Equal(t, 1, f.notifier.ScheduleCount())
	assert.Equal(t, []pubsub.EventType{pubsub.EventScheduleGenerated}, f.pubsub.Topics())
	assert.Equal(t, 1, f.metrics.SchedulesGenerated())
	assert.Equal(t, 1, f.metrics.EventsPublished())
	assert.Len(t, f.metrics.GenerationDurations(metrics.KindSchedule), 1)

	totals, err := f.svc.Totals()
	require.NoError(t, err)
	assert.Equal(t, 1, totals[metrics.KeySchedulesGenerated])

	text, err := f.svc.ScheduleText(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.FormatText(rec.Rounds), text)

	summary, err := f.svc.ScheduleSummary(rec.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Participants, 9)
}

func TestGenerateSchedule_DryRun(t *testing.T) {
	f := setupTestService(t, "")

	rec, err := f.svc.GenerateSchedule(context.Background(), session.ScheduleRequest{
		Participants: []string{"ann", "bob", "cat", "dan"},
		Courts:       1,
		Rounds:       2,
	}, true)
	require.NoError(t, err)
	assert.Empty(t, rec.ID)

	list, err := f.svc.ListSchedules()
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.pubsub.Topics())
	assert.Equal(t, 1, f.notifier.ScheduleCount(), "dry runs still render the notification")
	assert.Equal(t, 0, f.metrics.SchedulesGenerated())
}

func TestGenerateSchedule_ValidationError(t *testing.T) {
	f := setupTestService(t, "")

	_, err := f.svc.GenerateSchedule(context.Background(), session.ScheduleRequest{
		Participants: []string{"ann", "bob"},
		Courts:       1,
		Rounds:       1,
	}, false)
	assert.ErrorIs(t, err, schedule.ErrInsufficientParticipants)
	assert.Equal(t, 0, f.notifier.ScheduleCount())
}

func TestGenerateSchedule_NotifierFailureStillStores(t *testing.T) {
	f := setupTestService(t, "")
	f.notifier.SendScheduleFunc = func(rec *store.ScheduleRecord, dryRun bool) error {
		return errors.New("slack down")
	}

	rec, err := f.svc.GenerateSchedule(context.Background(), session.ScheduleRequest{
		Participants: []string{"ann", "bob", "cat", "dan"},
		Courts:       1,
		Rounds:       1,
	}, false)
	require.NoError(t, err)

	_, err = f.svc.GetSchedule(rec.ID)
	assert.NoError(t, err)
}

func TestGenerateBracket_KeepsThread(t *testing.T) {
	f := setupTestService(t, "")
	f.notifier.SendBracketFunc = func(rec *store.BracketRecord, dryRun bool) (string, error) {
		return "1700000000.000100", nil
	}

	rec, err := f.svc.GenerateBracket(context.Background(), session.BracketRequest{
		Name:         "Friday cup",
		Participants: []string{"ann", "bob", "cat", "dan", "eve"},
		GameType:     bracket.Singles,
		Mode:         bracket.Random,
		Seed:         seed(1),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)

	stored, err := f.svc.GetBracket(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "1700000000.000100", stored.ThreadTS)
	assert.Len(t, stored.Bracket.Rounds, 3)
	assert.Equal(t, []pubsub.EventType{pubsub.EventBracketGenerated}, f.pubsub.Topics())
	assert.Equal(t, 1, f.metrics.BracketsGenerated())
}

func TestGenerateBracket_ManualErrors(t *testing.T) {
	f := setupTestService(t, "")

	_, err := f.svc.GenerateBracket(context.Background(), session.BracketRequest{
		GameType: bracket.Doubles,
		Mode:     bracket.Manual,
	}, false)
	assert.ErrorIs(t, err, bracket.ErrNoTeamsConfigured)

	list, err := f.svc.ListBrackets()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func manualBracket(t *testing.T, f *fixture) *store.BracketRecord {
	t.Helper()
	rec, err := f.svc.GenerateBracket(context.Background(), session.BracketRequest{
		GameType: bracket.Doubles,
		Mode:     bracket.Manual,
		Teams: []bracket.Team{
			bracket.Pair("ann", "bob"),
			bracket.Pair("cat", "dan"),
			bracket.Guest("eve"),
		},
	}, false)
	require.NoError(t, err)
	f.pubsub.Reset()
	f.notifier.Reset()
	return rec
}

func TestBracketLifecycle(t *testing.T) {
	f := setupTestService(t, "")
	ctx := context.Background()
	rec := manualBracket(t, f)

	rec, err := f.svc.SetScore(ctx, rec.ID, session.ScoreUpdate{Round: 0, Match: 0, Side: bracket.SideTeam1, Score: 6}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Version)
	rec, err = f.svc.SetScore(ctx, rec.ID, session.ScoreUpdate{Round: 0, Match: 0, Side: bracket.SideTeam2, Score: 2, Version: 2}, false)
	require.NoError(t, err)

	rec, err = f.svc.AdvanceWinners(ctx, rec.ID, 0, 0, false)
	require.NoError(t, err)
	final := rec.Bracket.Rounds[1].Matches[0]
	assert.Equal(t, bracket.Pair("ann", "bob"), *final.Team1)
	assert.Equal(t, bracket.Guest("eve"), *final.Team2)
	require.Len(t, f.notifier.SendRoundAdvancedCalls, 1)
	assert.Empty(t, f.notifier.SendChampionCalls)

	_, err = f.svc.SetScore(ctx, rec.ID, session.ScoreUpdate{Round: 1, Match: 0, Side: bracket.SideTeam1, Score: 3}, false)
	require.NoError(t, err)
	rec, err = f.svc.SetScore(ctx, rec.ID, session.ScoreUpdate{Round: 1, Match: 0, Side: bracket.SideTeam2, Score: 6}, false)
	require.NoError(t, err)

	require.Len(t, f.notifier.SendChampionCalls, 1)
	assert.Equal(t, bracket.Guest("eve"), f.notifier.SendChampionCalls[0].Champion)

	champion, ok := bracket.Champion(rec.Bracket)
	require.True(t, ok)
	assert.Equal(t, bracket.Guest("eve"), champion)

	totals, err := f.svc.Totals()
	require.NoError(t, err)
	assert.Equal(t, 1, totals[metrics.KeyChampionsCrowned])
	assert.Equal(t, 1, totals[metrics.KeyWinnersAdvanced])

	_, err = f.svc.AdvanceWinners(ctx, rec.ID, 1, 0, false)
	assert.ErrorIs(t, err, bracket.ErrNoNextRound)
}

func TestSetScore_CorrectedFinalAnnouncesNewChampion(t *testing.T) {
	f := setupTestService(t, "")
	ctx := context.Background()
	rec := manualBracket(t, f)

	for _, u := range []session.ScoreUpdate{
		{Round: 0, Match: 0, Side: bracket.SideTeam1, Score: 6},
		{Round: 0, Match: 0, Side: bracket.SideTeam2, Score: 2},
	} {
		_, err := f.svc.SetScore(ctx, rec.ID, u, false)
		require.NoError(t, err)
	}
	_, err := f.svc.AdvanceWinners(ctx, rec.ID, 0, 0, false)
	require.NoError(t, err)
	for _, u := range []session.ScoreUpdate{
		{Round: 1, Match: 0, Side: bracket.SideTeam1, Score: 3},
		{Round: 1, Match: 0, Side: bracket.SideTeam2, Score: 6},
		{Round: 1, Match: 0, Side: bracket.SideTeam1, Score: 2},
	} {
		_, err = f.svc.SetScore(ctx, rec.ID, u, false)
		require.NoError(t, err)
	}
	require.Len(t, f.notifier.SendChampionCalls, 1, "same champion is announced once")

	rec, err = f.svc.SetScore(ctx, rec.ID, session.ScoreUpdate{Round: 1, Match: 0, Side: bracket.SideTeam1, Score: 7}, false)
	require.NoError(t, err)

	require.Len(t, f.notifier.SendChampionCalls, 2)
	assert.Equal(t, bracket.Pair("ann", "bob"), f.notifier.SendChampionCalls[1].Champion)
	champion, ok := bracket.Champion(rec.Bracket)
	require.True(t, ok)
	assert.Equal(t, bracket.Pair("ann", "bob"), champion)
}

func TestSetScore_StaleVersion(t *testing.T) {
	f := setupTestService(t, "")
	rec := manualBracket(t, f)

	_, err := f.svc.SetScore(context.Background(), rec.ID, session.ScoreUpdate{Side: bracket.SideTeam1, Score: 1, Version: 7}, false)
	assert.ErrorIs(t, err, store.ErrVersionConflict)
	assert.Empty(t, f.pubsub.Topics())
}

func TestSetScore_DryRunDoesNotPersist(t *testing.T) {
	f := setupTestService(t, "")
	rec := manualBracket(t, f)

	preview, err := f.svc.SetScore(context.Background(), rec.ID, session.ScoreUpdate{Side: bracket.SideTeam1, Score: 4}, true)
	require.NoError(t, err)
	require.NotNil(t, preview.Bracket.Rounds[0].Matches[0].Score1)

	stored, err := f.svc.GetBracket(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)
	assert.Nil(t, stored.Bracket.Rounds[0].Matches[0].Score1)
}

func TestAdvanceWinners_TiedMatch(t *testing.T) {
	f := setupTestService(t, "")
	ctx := context.Background()
	rec := manualBracket(t, f)

	_, err := f.svc.SetScore(ctx, rec.ID, session.ScoreUpdate{Side: bracket.SideTeam1, Score: 5}, false)
	require.NoError(t, err)
	_, err = f.svc.SetScore(ctx, rec.ID, session.ScoreUpdate{Side: bracket.SideTeam2, Score: 5}, false)
	require.NoError(t, err)

	_, err = f.svc.AdvanceWinners(ctx, rec.ID, 0, 0, false)
	assert.ErrorIs(t, err, bracket.ErrTiedMatch)
}

func TestUpdateBracket_RetriesOnConflict(t *testing.T) {
	b, err := bracket.Build(bracket.Singles, []bracket.Team{bracket.Single("ann"), bracket.Single("bob")})
	require.NoError(t, err)

	st := store.NewMock()
	st.GetBracketFunc = func(id string) (*store.BracketRecord, error) {
		return &store.BracketRecord{ID: id, GameType: bracket.Singles, Bracket: b, Version: 1}, nil
	}
	attempts := 0
	st.UpdateBracketFunc = func(rec *store.BracketRecord) error {
		attempts++
		if attempts < 2 {
			return store.ErrVersionConflict
		}
		rec.Version++
		return nil
	}

	svc := session.New(st, metrics.NewMockStore(), metrics.NewMock(), notifier.NewMock(), pubsub.NewMock(), playtomic.NewMockClient(), "")
	rec, err := svc.SetScore(context.Background(), "b1", session.ScoreUpdate{Side: bracket.SideTeam2, Score: 3}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, rec.Version)
	assert.Len(t, st.GetBracketCalls, 2)
}

func TestUpdateBracket_GivesUpAfterRetries(t *testing.T) {
	b, err := bracket.Build(bracket.Singles, []bracket.Team{bracket.Single("ann"), bracket.Single("bob")})
	require.NoError(t, err)

	st := store.NewMock()
	st.GetBracketFunc = func(id string) (*store.BracketRecord, error) {
		return &store.BracketRecord{ID: id, Bracket: b, Version: 1}, nil
	}
	st.UpdateBracketFunc = func(rec *store.BracketRecord) error {
		return store.ErrVersionConflict
	}

	svc := session.New(st, metrics.NewMockStore(), metrics.NewMock(), notifier.NewMock(), pubsub.NewMock(), playtomic.NewMockClient(), "")
	_, err = svc.SetScore(context.Background(), "b1", session.ScoreUpdate{Side: bracket.SideTeam2, Score: 3}, false)
	assert.ErrorIs(t, err, store.ErrVersionConflict)
	assert.Len(t, st.UpdateBracketCalls, 3)
}
