package schedule

import "sort"

// History records who has partnered and who has faced whom during one generation run.
// It is a value: Merge returns a new History and leaves the receiver untouched.
// The zero value is an empty history.
type History struct {
	partners  map[Participant]map[Participant]struct{}
	opponents map[Participant]map[Participant]struct{}
}

// NewHistory returns an empty history.
func NewHistory() History {
	return History{
		partners:  make(map[Participant]map[Participant]struct{}),
		opponents: make(map[Participant]map[Participant]struct{}),
	}
}

// Partnered reports whether a and b have already played on the same team.
func (h History) Partnered(a, b Participant) bool {
	_, ok := h.partners[a][b]
	return ok
}

// Faced reports whether a and b have already played against each other.
func (h History) Faced(a, b Participant) bool {
	_, ok := h.opponents[a][b]
	return ok
}

// Partners returns the sorted set of everyone p has partnered with.
func (h History) Partners(p Participant) []Participant {
	return sortedSet(h.partners[p])
}

// Opponents returns the sorted set of everyone p has played against.
func (h History) Opponents(p Participant) []Participant {
	return sortedSet(h.opponents[p])
}

// Merge returns a copy of h with the partnerships and opponent pairs of round added.
// Both directions are recorded.
func (h History) Merge(round RoundAssignment) History {
	next := h.clone()
	for _, m := range round.Matches {
		link(next.partners, m.TeamA[0], m.TeamA[1])
		link(next.partners, m.TeamB[0], m.TeamB[1])
		for _, a := range m.TeamA {
			for _, b := range m.TeamB {
				link(next.opponents, a, b)
			}
		}
	}
	return next
}

// score rates a candidate court split; lower is better.
func (h History) score(p pairing) int {
	score := 0
	if h.Partnered(p.teamA[0], p.teamA[1]) {
		score += RepeatPartnerPenalty
	}
	if h.Partnered(p.teamB[0], p.teamB[1]) {
		score += RepeatPartnerPenalty
	}
	for _, a := range p.teamA {
		for _, b := range p.teamB {
			if h.Faced(a, b) {
				score += RepeatOpponentPenalty
			}
		}
	}
	return score
}

// bestPairing picks the lowest scoring split of a court group.
// Ties keep the earliest candidate.
func (h History) bestPairing(group [PlayersPerCourt]Participant) (pairing, int) {
	candidates := candidatePairings(group)
	best, bestScore := candidates[0], h.score(candidates[0])
	for _, c := range candidates[1:] {
		if s := h.score(c); s < bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore
}

func (h History) clone() History {
	return History{
		partners:  cloneSets(h.partners),
		opponents: cloneSets(h.opponents),
	}
}

type pairing struct {
	teamA [2]Participant
	teamB [2]Participant
}

// candidatePairings lists the three ways to split four players into two teams.
func candidatePairings(g [PlayersPerCourt]Participant) [3]pairing {
	return [3]pairing{
		{teamA: [2]Participant{g[0], g[1]}, teamB: [2]Participant{g[2], g[3]}},
		{teamA: [2]Participant{g[0], g[2]}, teamB: [2]Participant{g[1], g[3]}},
		{teamA: [2]Participant{g[0], g[3]}, teamB: [2]Participant{g[1], g[2]}},
	}
}

func link(sets map[Participant]map[Participant]struct{}, a, b Participant) {
	if sets[a] == nil {
		sets[a] = make(map[Participant]struct{})
	}
	if sets[b] == nil {
		sets[b] = make(map[Participant]struct{})
	}
	sets[a][b] = struct{}{}
	sets[b][a] = struct{}{}
}

func cloneSets(src map[Participant]map[Participant]struct{}) map[Participant]map[Participant]struct{} {
	dst := make(map[Participant]map[Participant]struct{}, len(src))
	for p, set := range src {
		inner := make(map[Participant]struct{}, len(set))
		for q := range set {
			inner[q] = struct{}{}
		}
		dst[p] = inner
	}
	return dst
}

func sortedSet(set map[Participant]struct{}) []Participant {
	out := make([]Participant, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
