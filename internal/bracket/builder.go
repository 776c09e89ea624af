package bracket

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	LabelQualifiers   = "QUALIFIERS"
	LabelFinal        = "FINAL"
	LabelSemiFinal    = "SEMI-FINAL"
	LabelQuarterFinal = "QUARTER-FINAL"
)

type options struct {
	rng *rand.Rand
}

// Option configures Generate.
type Option func(*options)

// WithRand sets the random source used to shuffle the roster.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed shuffles with a source seeded by seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// Generate forms teams from the roster and seeds them into a single-elimination bracket.
// In MANUAL mode the roster is ignored and manualTeams are used in the given order.
func Generate(participants []Participant, gameType GameType, mode AssignmentMode, manualTeams []Team, opts ...Option) (Bracket, error) {
	if gameType != Singles && gameType != Doubles {
		return Bracket{}, fmt.Errorf("%w: %q", ErrInvalidGameType, gameType)
	}
	o := newOptions(opts)

	var teams []Team
	switch mode {
	case Random:
		var err error
		teams, err = randomTeams(participants, gameType, o.rng)
		if err != nil {
			return Bracket{}, err
		}
	case Manual:
		if len(manualTeams) == 0 {
			return Bracket{}, ErrNoTeamsConfigured
		}
		if len(manualTeams) < 2 {
			return Bracket{}, fmt.Errorf("%w: need 2 teams, got %d", ErrInsufficientParticipants, len(manualTeams))
		}
		var err error
		teams, err = manualTeamList(manualTeams, gameType)
		if err != nil {
			return Bracket{}, err
		}
	default:
		return Bracket{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	return Build(gameType, teams)
}

// manualTeamList validates caller-built teams against the game type and copies them.
// A player may appear in only one team.
func manualTeamList(manualTeams []Team, gameType GameType) ([]Team, error) {
	teams := make([]Team, len(manualTeams))
	seen := make(map[Participant]struct{})
	for i, t := range manualTeams {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("team %d: %w", i+1, err)
		}
		if !kindAllowed(t.Kind, gameType) {
			return nil, fmt.Errorf("team %d: %w: %s team in a %s bracket", i+1, ErrInvalidTeam, t.Kind, gameType)
		}
		for _, p := range t.Players {
			if _, ok := seen[p]; ok {
				return nil, fmt.Errorf("team %d: %w: %q", i+1, ErrDuplicateParticipant, p)
			}
			seen[p] = struct{}{}
		}
		teams[i] = t.clone()
	}
	return teams, nil
}

func kindAllowed(kind TeamKind, gameType GameType) bool {
	if gameType == Singles {
		return kind == KindSingle
	}
	return kind == KindPair || kind == KindGuest
}

func randomTeams(participants []Participant, gameType GameType, rng *rand.Rand) ([]Team, error) {
	need := 2
	if gameType == Doubles {
		need = 4
	}
	if len(participants) < need {
		return nil, fmt.Errorf("%w: %s needs %d, got %d", ErrInsufficientParticipants, gameType, need, len(participants))
	}
	seen := make(map[Participant]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, p)
		}
		seen[p] = struct{}{}
	}

	shuffled := append([]Participant(nil), participants...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if gameType == Singles {
		teams := make([]Team, len(shuffled))
		for i, p := range shuffled {
			teams[i] = Single(p)
		}
		return teams, nil
	}

	teams := make([]Team, 0, (len(shuffled)+1)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		teams = append(teams, Pair(shuffled[i], shuffled[i+1]))
	}
	if len(shuffled)%2 == 1 {
		teams = append(teams, Guest(shuffled[len(shuffled)-1]))
	}
	return teams, nil
}

// Build seeds teams into a bracket in the order given, padding the first round with byes
// up to the next power of two.
func Build(gameType GameType, teams []Team) (Bracket, error) {
	if len(teams) < 2 {
		return Bracket{}, fmt.Errorf("%w: need 2 teams, got %d", ErrInsufficientParticipants, len(teams))
	}

	totalRounds := 0
	for (1 << totalRounds) < len(teams) {
		totalRounds++
	}
	size := 1 << totalRounds

	slots := make([]Team, size)
	for i := range slots {
		if i < len(teams) {
			slots[i] = teams[i].clone()
		} else {
			slots[i] = Bye()
		}
	}

	b := Bracket{GameType: gameType, Rounds: make([]Round, totalRounds)}
	for r := 0; r < totalRounds; r++ {
		count := size >> (r + 1)
		matches := make([]Match, count)
		if r == 0 {
			for i := range matches {
				t1, t2 := slots[2*i], slots[2*i+1]
				matches[i] = Match{Team1: &t1, Team2: &t2}
			}
		}
		b.Rounds[r] = Round{Label: roundLabel(r, count), Matches: matches}
	}
	return b, nil
}

func roundLabel(index, matches int) string {
	if index == 0 {
		return LabelQualifiers
	}
	switch matches {
	case 1:
		return LabelFinal
	case 2:
		return LabelSemiFinal
	case 4:
		return LabelQuarterFinal
	}
	return fmt.Sprintf("ROUND %d", index+1)
}
