package schedule

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

type options struct {
	rng         *rand.Rand
	maxAttempts int
	courtLabels []string
}

// Option customises a generation run.
type Option func(*options)

// WithRand sets the random source used to shuffle the roster.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithSeed makes a run reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMaxAttempts overrides MaxAttempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxAttempts = n
		}
	}
}

// WithCourtLabels names the courts in order. Courts without a label fall back to "Court N".
func WithCourtLabels(labels []string) Option {
	return func(o *options) {
		o.courtLabels = append([]string(nil), labels...)
	}
}

func newOptions(opts []Option) *options {
	o := &options{maxAttempts: MaxAttempts}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// Generate distributes participants over roundCount rounds of courtCount doubles courts,
// steering away from repeated partners and opponents.
//
// Each round is searched by reshuffling the roster up to MaxAttempts times. When no
// shuffle avoids a repeated partnership the last attempt is kept, so Generate always
// returns roundCount rounds once the input is valid.
func Generate(participants []Participant, courtCount, roundCount int, opts ...Option) ([]RoundAssignment, error) {
	if err := validate(participants, courtCount); err != nil {
		return nil, err
	}
	if roundCount < 1 || roundCount > MaxRounds {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRoundCount, roundCount)
	}

	o := newOptions(opts)
	history := NewHistory()
	rounds := make([]RoundAssignment, 0, roundCount)
	for number := 1; number <= roundCount; number++ {
		round := o.generateRound(history, number, participants, courtCount)
		history = history.Merge(round)
		rounds = append(rounds, round)
	}
	return rounds, nil
}

// GenerateRound produces a single round given the history of the rounds before it.
// Callers fold the result back with History.Merge.
func GenerateRound(history History, number int, participants []Participant, courtCount int, opts ...Option) (RoundAssignment, error) {
	if err := validate(participants, courtCount); err != nil {
		return RoundAssignment{}, err
	}
	return newOptions(opts).generateRound(history, number, participants, courtCount), nil
}

func validate(participants []Participant, courtCount int) error {
	if len(participants) < PlayersPerCourt {
		return fmt.Errorf("%w: need %d, got %d", ErrInsufficientParticipants, PlayersPerCourt, len(participants))
	}
	if courtCount < 1 || courtCount > MaxCourts {
		return fmt.Errorf("%w: got %d", ErrInvalidCourtCount, courtCount)
	}
	seen := make(map[Participant]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

func (o *options) generateRound(history History, number int, participants []Participant, courtCount int) RoundAssignment {
	need := courtCount * PlayersPerCourt
	pool := make([]Participant, len(participants))

	var round RoundAssignment
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		copy(pool, participants)
		o.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		var repeated bool
		round, repeated = o.buildRound(history, number, pool, need)
		if !repeated {
			return round
		}
	}

	log.Debug("No shuffle avoided a repeated partnership, keeping last attempt", "round", number, "attempts", o.maxAttempts)
	return round
}

// buildRound splits a shuffled pool into courts and reports whether any court
// could not avoid a repeated partnership.
func (o *options) buildRound(history History, number int, pool []Participant, need int) (RoundAssignment, bool) {
	playing := len(pool)
	if playing > need {
		playing = need
	}
	courts := playing / PlayersPerCourt

	round := RoundAssignment{
		Round:   number,
		Matches: make([]Match, 0, courts),
	}
	repeated := false
	for c := 0; c < courts; c++ {
		start := c * PlayersPerCourt
		group := [PlayersPerCourt]Participant{pool[start], pool[start+1], pool[start+2], pool[start+3]}
		best, score := history.bestPairing(group)
		if score >= RepeatPartnerPenalty {
			repeated = true
		}
		round.Matches = append(round.Matches, Match{
			Court: o.courtLabel(c),
			TeamA: best.teamA,
			TeamB: best.teamB,
		})
	}
	round.Waiting = append([]Participant{}, pool[courts*PlayersPerCourt:]...)
	return round, repeated
}

func (o *options) courtLabel(i int) string {
	if i < len(o.courtLabels) && o.courtLabels[i] != "" {
		return o.courtLabels[i]
	}
	return fmt.Sprintf("Court %d", i+1)
}
