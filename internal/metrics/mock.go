package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	schedulesGenerated  int
	bracketsGenerated   int
	winnersAdvanced     int
	rosterImports       int
	generationDurations map[string][]float64
	slackNotifSent      int
	slackNotifFailed    int
	eventsPublished     int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		generationDurations: make(map[string][]float64),
	}
}

func (m *Mock) IncSchedulesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedulesGenerated++
}

func (m *Mock) IncBracketsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bracketsGenerated++
}

func (m *Mock) IncWinnersAdvanced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.winnersAdvanced++
}

func (m *Mock) IncRosterImports() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterImports++
}

func (m *Mock) ObserveGenerationDuration(kind string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationDurations[kind] = append(m.generationDurations[kind], duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

func (m *Mock) SchedulesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedulesGenerated
}

func (m *Mock) BracketsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bracketsGenerated
}

func (m *Mock) WinnersAdvanced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winnersAdvanced
}

func (m *Mock) RosterImports() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterImports
}

// GenerationDurations returns the durations observed for kind.
func (m *Mock) GenerationDurations(kind string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.generationDurations[kind]...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// MockStore counts increments in memory.
type MockStore struct {
	mu     sync.Mutex
	totals map[string]int
}

func NewMockStore() *MockStore {
	return &MockStore{totals: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.totals))
	for k, v := range m.totals {
		out[k] = v
	}
	return out, nil
}
