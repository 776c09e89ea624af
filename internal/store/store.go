package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/court-draw/internal/bracket"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New returns a Store backed by db. The schema must already be migrated.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) CreateSchedule(rec *ScheduleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = time.UnixMilli(rec.CreatedAt.UnixMilli())
	participants, err := json.Marshal(rec.Participants)
	if err != nil {
		return fmt.Errorf("failed to marshal participants: %w", err)
	}
	rounds, err := json.Marshal(rec.Rounds)
	if err != nil {
		return fmt.Errorf("failed to marshal rounds: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO schedules (id, court_count, round_count, participants_json, rounds_json, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CourtCount, rec.RoundCount, string(participants), string(rounds), rec.Seed, rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	log.Debug("Created schedule", "id", rec.ID, "rounds", rec.RoundCount)
	return nil
}

const scheduleColumns = `id, court_count, round_count, participants_json, rounds_json, seed, created_at`

func (s *store) GetSchedule(id string) (*ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, id)
	rec, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return rec, nil
}

func (s *store) ListSchedules() ([]ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + scheduleColumns + ` FROM schedules ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	records := []ScheduleRecord{}
	for rows.Next() {
		rec, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *store) DeleteSchedule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteByID("schedules", id)
}

func (s *store) CreateBracket(rec *BracketRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = time.UnixMilli(rec.CreatedAt.UnixMilli())
	rec.UpdatedAt = rec.CreatedAt
	rec.Version = 1

	data, err := json.Marshal(rec.Bracket)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO brackets (id, name, game_type, assignment_mode, bracket_json, seed, version, thread_ts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, string(rec.GameType), string(rec.Mode), string(data), rec.Seed, rec.Version, rec.ThreadTS,
		rec.CreatedAt.UnixMilli(), rec.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to create bracket: %w", err)
	}
	log.Debug("Created bracket", "id", rec.ID, "gameType", rec.GameType)
	return nil
}

const bracketColumns = `id, name, game_type, assignment_mode, bracket_json, seed, version, thread_ts, created_at, updated_at`

func (s *store) GetBracket(id string) (*BracketRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+bracketColumns+` FROM brackets WHERE id = ?`, id)
	rec, err := scanBracket(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("bracket %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get bracket: %w", err)
	}
	return rec, nil
}

func (s *store) ListBrackets() ([]BracketRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + bracketColumns + ` FROM brackets ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brackets: %w", err)
	}
	defer rows.Close()

	records := []BracketRecord{}
	for rows.Next() {
		rec, err := scanBracket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bracket: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *store) UpdateBracket(rec *BracketRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(rec.Bracket)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket: %w", err)
	}
	now := time.UnixMilli(time.Now().UnixMilli())
	res, err := s.db.Exec(`
		UPDATE brackets SET name = ?, bracket_json = ?, thread_ts = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		rec.Name, string(data), rec.ThreadTS, now.UnixMilli(), rec.ID, rec.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update bracket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		var exists int
		err := s.db.QueryRow(`SELECT COUNT(*) FROM brackets WHERE id = ?`, rec.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check bracket: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("bracket %s: %w", rec.ID, ErrNotFound)
		}
		log.Warn("Bracket version conflict", "id", rec.ID, "version", rec.Version)
		return fmt.Errorf("bracket %s at version %d: %w", rec.ID, rec.Version, ErrVersionConflict)
	}
	rec.Version++
	rec.UpdatedAt = now
	return nil
}

func (s *store) DeleteBracket(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteByID("brackets", id)
}

func (s *store) deleteByID(table, id string) error {
	res, err := s.db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row scanner) (*ScheduleRecord, error) {
	var (
		rec                  ScheduleRecord
		participants, rounds string
		createdAt            int64
	)
	err := row.Scan(&rec.ID, &rec.CourtCount, &rec.RoundCount, &participants, &rounds, &rec.Seed, &createdAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(participants), &rec.Participants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
	}
	if err := json.Unmarshal([]byte(rounds), &rec.Rounds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rounds: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt)
	return &rec, nil
}

func scanBracket(row scanner) (*BracketRecord, error) {
	var (
		rec                  BracketRecord
		gameType, mode, data string
		createdAt, updatedAt int64
	)
	err := row.Scan(&rec.ID, &rec.Name, &gameType, &mode, &data, &rec.Seed, &rec.Version, &rec.ThreadTS, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &rec.Bracket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bracket: %w", err)
	}
	rec.GameType = bracket.GameType(gameType)
	rec.Mode = bracket.AssignmentMode(mode)
	rec.CreatedAt = time.UnixMilli(createdAt)
	rec.UpdatedAt = time.UnixMilli(updatedAt)
	return &rec, nil
}
