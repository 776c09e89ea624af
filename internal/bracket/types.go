package bracket

import (
	"fmt"
	"strings"
)

// Participant identifies a player on the roster. Only equality is interpreted.
type Participant string

// GuestName fills the empty partner slot of a GUEST team.
const GuestName Participant = "GUEST"

// GameType selects between one- and two-player teams.
type GameType string

const (
	Singles GameType = "SINGLES"
	Doubles GameType = "DOUBLES"
)

// AssignmentMode decides how teams are formed from the roster.
type AssignmentMode string

const (
	Random AssignmentMode = "RANDOM"
	Manual AssignmentMode = "MANUAL"
)

// TeamKind tags the variant held by a Team.
type TeamKind string

const (
	KindSingle TeamKind = "SINGLE"
	KindPair   TeamKind = "PAIR"
	KindBye    TeamKind = "BYE"
	// KindGuest is a doubles team with one real player and an unfilled partner slot.
	KindGuest TeamKind = "GUEST"
)

// Team is one entry in the bracket.
type Team struct {
	Kind    TeamKind      `json:"kind"`
	Players []Participant `json:"players,omitempty"`
}

func Single(p Participant) Team  { return Team{Kind: KindSingle, Players: []Participant{p}} }
func Pair(a, b Participant) Team { return Team{Kind: KindPair, Players: []Participant{a, b}} }
func Guest(p Participant) Team   { return Team{Kind: KindGuest, Players: []Participant{p}} }
func Bye() Team                  { return Team{Kind: KindBye} }

// IsBye reports whether the team is the padding sentinel.
func (t Team) IsBye() bool {
	return t.Kind == KindBye
}

// Name renders the team for display.
func (t Team) Name() string {
	switch t.Kind {
	case KindBye:
		return "BYE"
	case KindGuest:
		return joinParticipants(append(append([]Participant(nil), t.Players...), GuestName))
	default:
		return joinParticipants(t.Players)
	}
}

// Validate checks that the player count matches the kind.
func (t Team) Validate() error {
	want := map[TeamKind]int{KindSingle: 1, KindPair: 2, KindGuest: 1, KindBye: 0}
	n, ok := want[t.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTeam, t.Kind)
	}
	if len(t.Players) != n {
		return fmt.Errorf("%w: %s team needs %d players, got %d", ErrInvalidTeam, t.Kind, n, len(t.Players))
	}
	if t.Kind == KindPair && t.Players[0] == t.Players[1] {
		return fmt.Errorf("%w: %q cannot partner themselves", ErrInvalidTeam, t.Players[0])
	}
	return nil
}

func (t Team) clone() Team {
	t.Players = append([]Participant(nil), t.Players...)
	return t
}

// Equal reports whether both teams have the same kind and players in the same order.
func (t Team) Equal(o Team) bool {
	if t.Kind != o.Kind || len(t.Players) != len(o.Players) {
		return false
	}
	for i := range t.Players {
		if t.Players[i] != o.Players[i] {
			return false
		}
	}
	return true
}

// Side picks one of the two teams of a match.
type Side string

const (
	SideTeam1 Side = "team1"
	SideTeam2 Side = "team2"
)

// Match is a node of the bracket. A nil team is decided by an earlier round.
type Match struct {
	Team1  *Team `json:"team1"`
	Team2  *Team `json:"team2"`
	Score1 *int  `json:"score1,omitempty"`
	Score2 *int  `json:"score2,omitempty"`
}

// Round is one level of the bracket.
type Round struct {
	Label   string  `json:"label"`
	Matches []Match `json:"matches"`
}

// Bracket is a single-elimination tree stored level by level, first round first.
type Bracket struct {
	GameType GameType `json:"game_type"`
	Rounds   []Round  `json:"rounds"`
}

// Clone returns a deep copy.
func (b Bracket) Clone() Bracket {
	out := Bracket{GameType: b.GameType, Rounds: make([]Round, len(b.Rounds))}
	for r, round := range b.Rounds {
		matches := make([]Match, len(round.Matches))
		for i, m := range round.Matches {
			matches[i] = Match{
				Team1:  cloneTeam(m.Team1),
				Team2:  cloneTeam(m.Team2),
				Score1: cloneInt(m.Score1),
				Score2: cloneInt(m.Score2),
			}
		}
		out.Rounds[r] = Round{Label: round.Label, Matches: matches}
	}
	return out
}

func cloneTeam(t *Team) *Team {
	if t == nil {
		return nil
	}
	c := t.clone()
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func joinParticipants(ps []Participant) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return strings.Join(names, " & ")
}
