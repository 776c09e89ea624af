package schedule

// Participant identifies a player on the roster. Only equality is interpreted.
type Participant string

const (
	// PlayersPerCourt is the number of players on a doubles court.
	PlayersPerCourt = 4

	// MaxCourts and MaxRounds bound the size of a single schedule.
	MaxCourts = 64
	MaxRounds = 100

	// MaxAttempts bounds the reshuffles tried per round before the last attempt is accepted.
	MaxAttempts = 100

	// RepeatPartnerPenalty is added for every team that repeats an earlier partnership.
	// Any court scoring at least this much forces a reshuffle while attempts remain.
	RepeatPartnerPenalty = 100

	// RepeatOpponentPenalty is added for every cross-court pair that has already faced each other.
	RepeatOpponentPenalty = 1
)

// Match is a single doubles game on a court.
type Match struct {
	Court string         `json:"court"`
	TeamA [2]Participant `json:"team_a"`
	TeamB [2]Participant `json:"team_b"`
}

// Players returns the four players of the match, team A first.
func (m Match) Players() []Participant {
	return []Participant{m.TeamA[0], m.TeamA[1], m.TeamB[0], m.TeamB[1]}
}

// RoundAssignment is the outcome of one round: the courts in play and who sits out.
type RoundAssignment struct {
	Round   int           `json:"round"`
	Matches []Match       `json:"matches"`
	Waiting []Participant `json:"waiting"`
}

// Playing returns every participant assigned to a court this round, in court order.
func (r RoundAssignment) Playing() []Participant {
	players := make([]Participant, 0, len(r.Matches)*PlayersPerCourt)
	for _, m := range r.Matches {
		players = append(players, m.Players()...)
	}
	return players
}
