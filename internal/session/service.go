package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/metrics"
	"github.com/mauv0809/court-draw/internal/notifier"
	"github.com/mauv0809/court-draw/internal/playtomic"
	"github.com/mauv0809/court-draw/internal/pubsub"
	"github.com/mauv0809/court-draw/internal/schedule"
	"github.com/mauv0809/court-draw/internal/store"
	"golang.org/x/sync/errgroup"
)

// maxUpdateRetries bounds the optimistic-locking retries of a bracket update.
const maxUpdateRetries = 3

// Service generates, stores and announces schedules and brackets.
type Service struct {
	store     store.Store
	totals    metrics.Store
	metrics   metrics.Metrics
	notifier  notifier.Notifier
	pubsub    pubsub.PubSubClient
	playtomic playtomic.PlaytomicClient
	tenantID  string
}

// New creates a new Service.
func New(st store.Store, totals metrics.Store, m metrics.Metrics, n notifier.Notifier, ps pubsub.PubSubClient, pt playtomic.PlaytomicClient, tenantID string) *Service {
	return &Service{
		store:     st,
		totals:    totals,
		metrics:   m,
		notifier:  n,
		pubsub:    ps,
		playtomic: pt,
		tenantID:  tenantID,
	}
}

// GenerateSchedule draws a rotation, stores it and announces it.
// A dry run returns the schedule without storing or publishing it.
func (s *Service) GenerateSchedule(ctx context.Context, req ScheduleRequest, dryRun bool) (*store.ScheduleRecord, error) {
	participants := make([]schedule.Participant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = schedule.Participant(p)
	}
	seed := seedOrNow(req.Seed)

	start := time.Now()
	rounds, err := schedule.Generate(participants, req.Courts, req.Rounds,
		schedule.WithSeed(seed),
		schedule.WithCourtLabels(req.CourtLabels),
	)
	s.metrics.ObserveGenerationDuration(metrics.KindSchedule, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	rec := &store.ScheduleRecord{
		CourtCount:   req.Courts,
		RoundCount:   req.Rounds,
		Participants: participants,
		Rounds:       rounds,
		Seed:         seed,
		CreatedAt:    time.Now(),
	}
	if !dryRun {
		if err := s.store.CreateSchedule(rec); err != nil {
			return nil, err
		}
		s.metrics.IncSchedulesGenerated()
		s.totals.Increment(metrics.KeySchedulesGenerated)
	}
	log.Info("Generated schedule", "id", rec.ID, "participants", len(participants), "courts", req.Courts, "rounds", req.Rounds, "dryRun", dryRun)

	var g errgroup.Group
	g.Go(func() error {
		return s.notifier.SendSchedule(rec, dryRun)
	})
	if !dryRun {
		g.Go(func() error {
			return s.publish(ctx, pubsub.EventScheduleGenerated, pubsub.ScheduleGenerated{
				ScheduleID:   rec.ID,
				Participants: req.Participants,
				CourtCount:   rec.CourtCount,
				RoundCount:   rec.RoundCount,
				CreatedAt:    rec.CreatedAt.Unix(),
			})
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("Schedule stored but not fully announced", "id", rec.ID, "error", err)
	}
	return rec, nil
}

func (s *Service) GetSchedule(id string) (*store.ScheduleRecord, error) {
	return s.store.GetSchedule(id)
}

func (s *Service) ListSchedules() ([]store.ScheduleRecord, error) {
	return s.store.ListSchedules()
}

func (s *Service) DeleteSchedule(id string) error {
	return s.store.DeleteSchedule(id)
}

// ScheduleText renders a stored schedule as plain text.
func (s *Service) ScheduleText(id string) (string, error) {
	rec, err := s.store.GetSchedule(id)
	if err != nil {
		return "", err
	}
	return schedule.FormatText(rec.Rounds), nil
}

// ScheduleSummary reports per-player fairness statistics for a stored schedule.
func (s *Service) ScheduleSummary(id string) (schedule.Summary, error) {
	rec, err := s.store.GetSchedule(id)
	if err != nil {
		return schedule.Summary{}, err
	}
	return schedule.Summarize(rec.Rounds), nil
}

// GenerateBracket forms teams, seeds the bracket, announces it and stores it.
// The announcement goes out first so the record keeps its Slack thread.
func (s *Service) GenerateBracket(ctx context.Context, req BracketRequest, dryRun bool) (*store.BracketRecord, error) {
	participants := make([]bracket.Participant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = bracket.Participant(p)
	}
	seed := seedOrNow(req.Seed)

	start := time.Now()
	b, err := bracket.Generate(participants, req.GameType, req.Mode, req.Teams, bracket.WithSeed(seed))
	s.metrics.ObserveGenerationDuration(metrics.KindBracket, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	rec := &store.BracketRecord{
		Name:      req.Name,
		GameType:  req.GameType,
		Mode:      req.Mode,
		Bracket:   b,
		Seed:      seed,
		CreatedAt: time.Now(),
	}

	ts, err := s.notifier.SendBracket(rec, dryRun)
	if err != nil {
		log.Warn("Failed to announce bracket", "error", err)
	}
	if dryRun {
		log.Info("Generated bracket", "slots", len(b.Rounds[0].Matches)*2, "rounds", len(b.Rounds), "dryRun", dryRun)
		return rec, nil
	}
	rec.ThreadTS = ts

	if err := s.store.CreateBracket(rec); err != nil {
		return nil, err
	}
	s.metrics.IncBracketsGenerated()
	s.totals.Increment(metrics.KeyBracketsGenerated)
	log.Info("Generated bracket", "id", rec.ID, "gameType", rec.GameType, "rounds", len(b.Rounds))

	if err := s.publish(ctx, pubsub.EventBracketGenerated, bracketEvent(rec, -1, nil)); err != nil {
		log.Warn("Bracket stored but not published", "id", rec.ID, "error", err)
	}
	return rec, nil
}

func (s *Service) GetBracket(id string) (*store.BracketRecord, error) {
	return s.store.GetBracket(id)
}

func (s *Service) ListBrackets() ([]store.BracketRecord, error) {
	return s.store.ListBrackets()
}

func (s *Service) DeleteBracket(id string) error {
	return s.store.DeleteBracket(id)
}

// SetScore records a score and announces the champion once the final is decided.
func (s *Service) SetScore(ctx context.Context, id string, update ScoreUpdate, dryRun bool) (*store.BracketRecord, error) {
	rec, champion, err := s.updateBracket(id, update.Version, dryRun, func(b bracket.Bracket) (bracket.Bracket, error) {
		return bracket.SetScore(b, update.Round, update.Match, update.Side, update.Score)
	})
	if err != nil {
		return nil, err
	}
	log.Info("Recorded score", "id", id, "round", update.Round, "match", update.Match, "side", update.Side, "score", update.Score)

	s.announce(ctx, rec, update.Round, champion, false, dryRun)
	return rec, nil
}

// AdvanceWinners moves the decided winners of round into the next round.
func (s *Service) AdvanceWinners(ctx context.Context, id string, round, version int, dryRun bool) (*store.BracketRecord, error) {
	rec, champion, err := s.updateBracket(id, version, dryRun, func(b bracket.Bracket) (bracket.Bracket, error) {
		return bracket.AdvanceWinners(b, round)
	})
	if err != nil {
		return nil, err
	}
	if !dryRun {
		s.metrics.IncWinnersAdvanced()
		s.totals.Increment(metrics.KeyWinnersAdvanced)
	}
	log.Info("Advanced winners", "id", id, "round", round, "version", rec.Version)

	s.announce(ctx, rec, round, champion, true, dryRun)
	return rec, nil
}

// updateBracket applies mutate to the latest stored bracket, retrying on concurrent writes
// unless the caller pinned a version. It returns the champion if the update decided one or replaced the previous one.
func (s *Service) updateBracket(id string, version int, dryRun bool, mutate func(bracket.Bracket) (bracket.Bracket, error)) (*store.BracketRecord, *bracket.Team, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		rec, err := s.store.GetBracket(id)
		if err != nil {
			return nil, nil, err
		}
		if version != 0 && rec.Version != version {
			return nil, nil, fmt.Errorf("bracket %s is at version %d, not %d: %w", id, rec.Version, version, store.ErrVersionConflict)
		}

		prev, hadChampion := bracket.Champion(rec.Bracket)
		updated, err := mutate(rec.Bracket)
		if err != nil {
			return nil, nil, err
		}
		rec.Bracket = updated

		var champion *bracket.Team
		if c, ok := bracket.Champion(updated); ok && (!hadChampion || !c.Equal(prev)) {
			champion = &c
		}

		if dryRun {
			return rec, champion, nil
		}
		err = s.store.UpdateBracket(rec)
		if err == nil {
			return rec, champion, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) || version != 0 {
			return nil, nil, err
		}
		log.Warn("Retrying bracket update after concurrent write", "id", id, "attempt", attempt+1)
		lastErr = err
	}
	return nil, nil, lastErr
}

// announce posts round progress and a new champion, and publishes the change.
// Failures are logged; the update itself is already stored.
func (s *Service) announce(ctx context.Context, rec *store.BracketRecord, round int, champion *bracket.Team, advanced, dryRun bool) {
	var g errgroup.Group
	if advanced {
		g.Go(func() error {
			return s.notifier.SendRoundAdvanced(rec, round, dryRun)
		})
	}
	if champion != nil {
		g.Go(func() error {
			if !dryRun {
				s.totals.Increment(metrics.KeyChampionsCrowned)
			}
			return s.notifier.SendChampion(rec, *champion, dryRun)
		})
	}
	if !dryRun {
		g.Go(func() error {
			return s.publish(ctx, pubsub.EventBracketUpdated, bracketEvent(rec, round, champion))
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("Bracket updated but not fully announced", "id", rec.ID, "error", err)
	}
}

// Totals returns the lifetime counters.
func (s *Service) Totals() (map[string]int, error) {
	return s.totals.GetAll()
}

func (s *Service) publish(ctx context.Context, topic pubsub.EventType, event any) error {
	if err := s.pubsub.SendMessage(ctx, topic, event); err != nil {
		return err
	}
	s.metrics.IncEventsPublished()
	return nil
}

func bracketEvent(rec *store.BracketRecord, round int, champion *bracket.Team) pubsub.BracketChanged {
	event := pubsub.BracketChanged{
		BracketID: rec.ID,
		GameType:  string(rec.GameType),
		Version:   rec.Version,
		Round:     round,
	}
	if champion != nil {
		event.Champion = champion.Name()
	}
	return event
}

func seedOrNow(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}
