package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-draw/internal/playtomic"
	"golang.org/x/sync/errgroup"
)

// rosterFetchLimit is the number of match lookups run concurrently against Playtomic.
const rosterFetchLimit = 5

// ImportRoster collects the distinct player names booked at the club on date (YYYY-MM-DD).
// Canceled bookings are ignored.
func (s *Service) ImportRoster(ctx context.Context, date string) (*Roster, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if s.tenantID == "" {
		return nil, ErrRosterUnavailable
	}

	summaries, err := s.playtomic.GetMatches(ctx, &playtomic.SearchMatchesParams{
		SportID:       playtomic.SportPadel,
		HasPlayers:    true,
		Sort:          "start_date,ASC",
		TenantIDs:     []string{s.tenantID},
		FromStartDate: day.Format(time.DateOnly) + "T00:00:00",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search matches: %w", err)
	}

	bookings, err := s.fetchDayBookings(ctx, summaries, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{})
	count := 0
	for _, b := range bookings {
		if b.GameStatus == playtomic.GameStatusCanceled || b.Start.Format(time.DateOnly) != date {
			continue
		}
		count++
		for _, p := range b.Players {
			if p.Name != "" {
				names[p.Name] = struct{}{}
			}
		}
	}

	roster := &Roster{Date: date, Participants: make([]string, 0, len(names)), Bookings: count}
	for name := range names {
		roster.Participants = append(roster.Participants, name)
	}
	sort.Strings(roster.Participants)

	s.metrics.IncRosterImports()
	log.Info("Imported roster", "date", date, "bookings", count, "players", len(roster.Participants))
	return roster, nil
}

// fetchDayBookings looks up summaries in start order, rosterFetchLimit at a time, and stops after
// the first batch that reaches a booking starting at or after dayEnd.
func (s *Service) fetchDayBookings(ctx context.Context, summaries []playtomic.MatchSummary, dayEnd time.Time) ([]playtomic.Booking, error) {
	var bookings []playtomic.Booking
	for start := 0; start < len(summaries); start += rosterFetchLimit {
		batch := summaries[start:min(start+rosterFetchLimit, len(summaries))]
		fetched := make([]playtomic.Booking, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for i, summary := range batch {
			g.Go(func() error {
				booking, err := s.playtomic.GetMatch(gctx, summary.MatchID)
				if err != nil {
					return fmt.Errorf("failed to fetch match %s: %w", summary.MatchID, err)
				}
				fetched[i] = booking
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		bookings = append(bookings, fetched...)

		for _, b := range fetched {
			if !b.Start.Before(dayEnd) {
				log.Debug("Stopped roster lookups past the requested day", "fetched", len(bookings), "matches", len(summaries))
				return bookings, nil
			}
		}
	}
	return bookings, nil
}
