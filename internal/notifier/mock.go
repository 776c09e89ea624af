package notifier

import (
	"sync"

	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/store"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendScheduleFunc      func(rec *store.ScheduleRecord, dryRun bool) error
	SendBracketFunc       func(rec *store.BracketRecord, dryRun bool) (string, error)
	SendRoundAdvancedFunc func(rec *store.BracketRecord, round int, dryRun bool) error
	SendChampionFunc      func(rec *store.BracketRecord, champion bracket.Team, dryRun bool) error

	// Call records
	SendScheduleCalls      []*store.ScheduleRecord
	SendBracketCalls       []*store.BracketRecord
	SendRoundAdvancedCalls []struct {
		BracketID string
		Round     int
	}
	SendChampionCalls []struct {
		BracketID string
		Champion  bracket.Team
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScheduleCalls = nil
	m.SendBracketCalls = nil
	m.SendRoundAdvancedCalls = nil
	m.SendChampionCalls = nil
}

func (m *Mock) SendSchedule(rec *store.ScheduleRecord, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScheduleCalls = append(m.SendScheduleCalls, rec)
	if m.SendScheduleFunc != nil {
		return m.SendScheduleFunc(rec, dryRun)
	}
	return nil
}

func (m *Mock) SendBracket(rec *store.BracketRecord, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBracketCalls = append(m.SendBracketCalls, rec)
	if m.SendBracketFunc != nil {
		return m.SendBracketFunc(rec, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendRoundAdvanced(rec *store.BracketRecord, round int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundAdvancedCalls = append(m.SendRoundAdvancedCalls, struct {
		BracketID string
		Round     int
	}{rec.ID, round})
	if m.SendRoundAdvancedFunc != nil {
		return m.SendRoundAdvancedFunc(rec, round, dryRun)
	}
	return nil
}

func (m *Mock) SendChampion(rec *store.BracketRecord, champion bracket.Team, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChampionCalls = append(m.SendChampionCalls, struct {
		BracketID string
		Champion  bracket.Team
	}{rec.ID, champion})
	if m.SendChampionFunc != nil {
		return m.SendChampionFunc(rec, champion, dryRun)
	}
	return nil
}

// ScheduleCount returns the number of schedules sent.
func (m *Mock) ScheduleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendScheduleCalls)
}

// BracketCount returns the number of brackets sent.
func (m *Mock) BracketCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendBracketCalls)
}
