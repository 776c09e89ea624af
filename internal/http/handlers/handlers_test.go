package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/schedule"
	"github.com/mauv0809/court-draw/internal/session"
	"github.com/mauv0809/court-draw/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDrawText(t *testing.T) {
	t.Run("schedule", func(t *testing.T) {
		sched, br, err := parseDrawText(" 2  3 ann bob cat dan ")
		require.NoError(t, err)
		assert.Nil(t, br)
		assert.Equal(t, &session.ScheduleRequest{
			Courts:       2,
			Rounds:       3,
			Participants: []string{"ann", "bob", "cat", "dan"},
		}, sched)
	})

	t.Run("bracket", func(t *testing.T) {
		sched, br, err := parseDrawText("Bracket doubles ann bob cat")
		require.NoError(t, err)
		assert.Nil(t, sched)
		assert.Equal(t, bracket.Doubles, br.GameType)
		assert.Equal(t, bracket.Random, br.Mode)
		assert.Equal(t, []string{"ann", "bob", "cat"}, br.Participants)
	})

	for _, text := range []string{"", "2", "two 3 ann", "2 three ann", "bracket"} {
		t.Run(fmt.Sprintf("usage %q", text), func(t *testing.T) {
			_, _, err := parseDrawText(text)
			assert.ErrorIs(t, err, errDrawUsage)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", store.ErrNotFound), http.StatusNotFound},
		{store.ErrVersionConflict, http.StatusConflict},
		{bracket.ErrTiedMatch, http.StatusConflict},
		{bracket.ErrNoNextRound, http.StatusConflict},
		{bracket.ErrInvalidSide, http.StatusBadRequest},
		{schedule.ErrInvalidCourtCount, http.StatusBadRequest},
		{session.ErrInvalidDate, http.StatusBadRequest},
		{session.ErrRosterUnavailable, http.StatusServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
