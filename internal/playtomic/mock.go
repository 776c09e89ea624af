package playtomic

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the PlaytomicClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetMatchesFunc func(params *SearchMatchesParams) ([]MatchSummary, error)
	GetMatchFunc   func(matchID string) (Booking, error)

	// Call records
	GetMatchesCalls []*SearchMatchesParams
	GetMatchCalls   []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	m.mu.Lock()
	m.GetMatchesCalls = append(m.GetMatchesCalls, params)
	fn := m.GetMatchesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(params)
	}
	return []MatchSummary{}, nil
}

func (m *MockClient) GetMatch(ctx context.Context, matchID string) (Booking, error) {
	m.mu.Lock()
	m.GetMatchCalls = append(m.GetMatchCalls, matchID)
	fn := m.GetMatchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(matchID)
	}
	return Booking{MatchID: matchID}, nil
}
