package store

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// Methods without a configured Func succeed with zero values.
type MockStore struct {
	mu sync.Mutex

	CreateScheduleFunc func(rec *ScheduleRecord) error
	GetScheduleFunc    func(id string) (*ScheduleRecord, error)
	ListSchedulesFunc  func() ([]ScheduleRecord, error)
	DeleteScheduleFunc func(id string) error
	CreateBracketFunc  func(rec *BracketRecord) error
	GetBracketFunc     func(id string) (*BracketRecord, error)
	ListBracketsFunc   func() ([]BracketRecord, error)
	UpdateBracketFunc  func(rec *BracketRecord) error
	DeleteBracketFunc  func(id string) error

	CreateScheduleCalls []*ScheduleRecord
	CreateBracketCalls  []*BracketRecord
	UpdateBracketCalls  []*BracketRecord
	GetBracketCalls     []string
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateSchedule(rec *ScheduleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateScheduleCalls = append(m.CreateScheduleCalls, rec)
	if m.CreateScheduleFunc != nil {
		return m.CreateScheduleFunc(rec)
	}
	return nil
}

func (m *MockStore) GetSchedule(id string) (*ScheduleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetScheduleFunc != nil {
		return m.GetScheduleFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListSchedules() ([]ScheduleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListSchedulesFunc != nil {
		return m.ListSchedulesFunc()
	}
	return []ScheduleRecord{}, nil
}

func (m *MockStore) DeleteSchedule(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteScheduleFunc != nil {
		return m.DeleteScheduleFunc(id)
	}
	return nil
}

func (m *MockStore) CreateBracket(rec *BracketRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateBracketCalls = append(m.CreateBracketCalls, rec)
	if m.CreateBracketFunc != nil {
		return m.CreateBracketFunc(rec)
	}
	return nil
}

func (m *MockStore) GetBracket(id string) (*BracketRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetBracketCalls = append(m.GetBracketCalls, id)
	if m.GetBracketFunc != nil {
		return m.GetBracketFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListBrackets() ([]BracketRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListBracketsFunc != nil {
		return m.ListBracketsFunc()
	}
	return []BracketRecord{}, nil
}

func (m *MockStore) UpdateBracket(rec *BracketRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateBracketCalls = append(m.UpdateBracketCalls, rec)
	if m.UpdateBracketFunc != nil {
		return m.UpdateBracketFunc(rec)
	}
	return nil
}

func (m *MockStore) DeleteBracket(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteBracketFunc != nil {
		return m.DeleteBracketFunc(id)
	}
	return nil
}
