package bracket_test

import (
	"testing"

	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveTeamBracket(t *testing.T) bracket.Bracket {
	t.Helper()
	b, err := bracket.Build(bracket.Singles, []bracket.Team{
		bracket.Single("ann"),
		bracket.Single("bob"),
		bracket.Single("cat"),
		bracket.Single("dan"),
		bracket.Single("eve"),
	})
	require.NoError(t, err)
	return b
}

func score(t *testing.T, b bracket.Bracket, round, match, s1, s2 int) bracket.Bracket {
	t.Helper()
	b, err := bracket.SetScore(b, round, match, bracket.SideTeam1, s1)
	require.NoError(t, err)
	b, err = bracket.SetScore(b, round, match, bracket.SideTeam2, s2)
	require.NoError(t, err)
	return b
}

func TestSetScore(t *testing.T) {
	b := fiveTeamBracket(t)

	updated, err := bracket.SetScore(b, 0, 0, bracket.SideTeam1, 6)
	require.NoError(t, err)
	require.NotNil(t, updated.Rounds[0].Matches[0].Score1)
	assert.Equal(t, 6, *updated.Rounds[0].Matches[0].Score1)
	assert.Nil(t, updated.Rounds[0].Matches[0].Score2)
	assert.Nil(t, b.Rounds[0].Matches[0].Score1, "input bracket must stay untouched")
}

func TestSetScore_Errors(t *testing.T) {
	b := fiveTeamBracket(t)

	tests := []struct {
		name    string
		round   int
		match   int
		side    bracket.Side
		score   int
		wantErr error
	}{
		{"round below range", -1, 0, bracket.SideTeam1, 1, bracket.ErrRoundOutOfRange},
		{"round above range", 3, 0, bracket.SideTeam1, 1, bracket.ErrRoundOutOfRange},
		{"match above range", 0, 4, bracket.SideTeam1, 1, bracket.ErrMatchOutOfRange},
		{"bad side", 0, 0, "team3", 1, bracket.ErrInvalidSide},
		{"negative score", 0, 0, bracket.SideTeam2, -2, bracket.ErrNegativeScore},
		{"undecided match", 1, 0, bracket.SideTeam1, 1, bracket.ErrMatchNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bracket.SetScore(b, tt.round, tt.match, tt.side, tt.score)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWinner(t *testing.T) {
	ann, bob, bye := bracket.Single("ann"), bracket.Single("bob"), bracket.Bye()
	three, five := 3, 5

	tests := []struct {
		name    string
		match   bracket.Match
		want    *bracket.Team
		wantErr error
	}{
		{"missing team", bracket.Match{Team1: &ann}, nil, nil},
		{"missing score", bracket.Match{Team1: &ann, Team2: &bob, Score1: &five}, nil, nil},
		{"team facing bye", bracket.Match{Team1: &ann, Team2: &bye}, &ann, nil},
		{"bye facing team", bracket.Match{Team1: &bye, Team2: &bob}, &bob, nil},
		{"double bye", bracket.Match{Team1: &bye, Team2: &bye}, &bye, nil},
		{"higher score wins", bracket.Match{Team1: &ann, Team2: &bob, Score1: &three, Score2: &five}, &bob, nil},
		{"tie", bracket.Match{Team1: &ann, Team2: &bob, Score1: &three, Score2: &three}, nil, bracket.ErrTiedMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bracket.Winner(tt.match)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdvanceWinners_ThroughFinal(t *testing.T) {
	b := fiveTeamBracket(t)
	// Slots: ann-bob, cat-dan, eve-BYE, BYE-BYE.
	b = score(t, b, 0, 0, 6, 3)
	b = score(t, b, 0, 1, 2, 6)

	b, err := bracket.AdvanceWinners(b, 0)
	require.NoError(t, err)

	semi := b.Rounds[1].Matches
	assert.Equal(t, bracket.Single("ann"), *semi[0].Team1)
	assert.Equal(t, bracket.Single("dan"), *semi[0].Team2)
	assert.Equal(t, bracket.Single("eve"), *semi[1].Team1)
	assert.True(t, semi[1].Team2.IsBye())

	b = score(t, b, 1, 0, 4, 6)
	b, err = bracket.AdvanceWinners(b, 1)
	require.NoError(t, err)

	final := b.Rounds[2].Matches[0]
	assert.Equal(t, bracket.Single("dan"), *final.Team1)
	assert.Equal(t, bracket.Single("eve"), *final.Team2)

	_, ok := bracket.Champion(b)
	assert.False(t, ok)

	b = score(t, b, 2, 0, 7, 5)
	champ, ok := bracket.Champion(b)
	require.True(t, ok)
	assert.Equal(t, bracket.Single("dan"), champ)

	_, err = bracket.AdvanceWinners(b, 2)
	assert.ErrorIs(t, err, bracket.ErrNoNextRound)
}

func TestAdvanceWinners_SkipsUndecided(t *testing.T) {
	b := fiveTeamBracket(t)
	b = score(t, b, 0, 0, 6, 1)

	b, err := bracket.AdvanceWinners(b, 0)
	require.NoError(t, err)

	semi := b.Rounds[1].Matches
	assert.Equal(t, bracket.Single("ann"), *semi[0].Team1)
	assert.Nil(t, semi[0].Team2)
	assert.NotNil(t, semi[1].Team1)
	assert.NotNil(t, semi[1].Team2)
}

func TestAdvanceWinners_TieFails(t *testing.T) {
	b := fiveTeamBracket(t)
	b = score(t, b, 0, 0, 4, 4)

	advanced, err := bracket.AdvanceWinners(b, 0)
	assert.ErrorIs(t, err, bracket.ErrTiedMatch)
	assert.Empty(t, advanced.Rounds)
}

func TestAdvanceWinners_CorrectionClearsStaleScores(t *testing.T) {
	b := fiveTeamBracket(t)
	b = score(t, b, 0, 0, 6, 3)
	b = score(t, b, 0, 1, 6, 2)
	b, err := bracket.AdvanceWinners(b, 0)
	require.NoError(t, err)
	b = score(t, b, 1, 0, 6, 4)

	// The first result was entered the wrong way round.
	b = score(t, b, 0, 0, 3, 6)
	b, err = bracket.AdvanceWinners(b, 0)
	require.NoError(t, err)

	semi := b.Rounds[1].Matches[0]
	assert.Equal(t, bracket.Single("bob"), *semi.Team1)
	assert.Equal(t, bracket.Single("cat"), *semi.Team2)
	assert.Nil(t, semi.Score1)
	assert.Nil(t, semi.Score2)
}

func TestAdvanceWinners_CorrectionClearsLaterRounds(t *testing.T) {
	teams := make([]bracket.Team, 0, 8)
	for _, p := range []bracket.Participant{"ann", "bob", "cat", "dan", "eve", "fay", "gus", "hal"} {
		teams = append(teams, bracket.Single(p))
	}
	b, err := bracket.Build(bracket.Singles, teams)
	require.NoError(t, err)

	for round := range b.Rounds {
		for match := range b.Rounds[round].Matches {
			b = score(t, b, round, match, 6, 2)
		}
		if round < len(b.Rounds)-1 {
			b, err = bracket.AdvanceWinners(b, round)
			require.NoError(t, err)
		}
	}
	champion, ok := bracket.Champion(b)
	require.True(t, ok)
	require.Equal(t, bracket.Single("ann"), champion)

	b = score(t, b, 0, 0, 2, 6)
	b, err = bracket.AdvanceWinners(b, 0)
	require.NoError(t, err)

	semi := b.Rounds[1].Matches[0]
	assert.Equal(t, bracket.Single("bob"), *semi.Team1)
	assert.Nil(t, semi.Score1)
	assert.Nil(t, semi.Score2)

	final := b.Rounds[2].Matches[0]
	assert.Nil(t, final.Team1, "ann no longer reaches the final")
	assert.Equal(t, bracket.Single("eve"), *final.Team2)
	assert.Nil(t, final.Score1)
	assert.Nil(t, final.Score2)

	other := b.Rounds[1].Matches[1]
	require.NotNil(t, other.Score1, "the other half is untouched")

	_, ok = bracket.Champion(b)
	assert.False(t, ok)
}

func TestAdvanceWinners_RoundOutOfRange(t *testing.T) {
	b := fiveTeamBracket(t)
	_, err := bracket.AdvanceWinners(b, 5)
	assert.ErrorIs(t, err, bracket.ErrRoundOutOfRange)
}

func TestChampion_SingleRoundBracket(t *testing.T) {
	b, err := bracket.Build(bracket.Singles, []bracket.Team{bracket.Single("ann"), bracket.Bye()})
	require.NoError(t, err)

	champ, ok := bracket.Champion(b)
	require.True(t, ok)
	assert.Equal(t, bracket.Single("ann"), champ)
}
