package schedule

import "sort"

// ParticipantStats is one participant's share of a schedule.
type ParticipantStats struct {
	Participant Participant `json:"participant"`
	Played      int         `json:"played"`
	Waited      int         `json:"waited"`
	Partners    int         `json:"partners"`
	Opponents   int         `json:"opponents"`
}

// Summary describes how evenly a schedule spreads games and pairings.
type Summary struct {
	Participants         []ParticipantStats `json:"participants"`
	RepeatedPartnerships int                `json:"repeated_partnerships"`
	RepeatedOpponents    int                `json:"repeated_opponents"`
}

// Summarize replays rounds in order and counts games, sit-outs and repeats.
func Summarize(rounds []RoundAssignment) Summary {
	stats := make(map[Participant]*ParticipantStats)
	get := func(p Participant) *ParticipantStats {
		s, ok := stats[p]
		if !ok {
			s = &ParticipantStats{Participant: p}
			stats[p] = s
		}
		return s
	}

	var summary Summary
	history := NewHistory()
	for _, round := range rounds {
		for _, m := range round.Matches {
			for _, team := range [][2]Participant{m.TeamA, m.TeamB} {
				if history.Partnered(team[0], team[1]) {
					summary.RepeatedPartnerships++
				}
			}
			for _, a := range m.TeamA {
				for _, b := range m.TeamB {
					if history.Faced(a, b) {
						summary.RepeatedOpponents++
					}
				}
			}
			for _, p := range m.Players() {
				get(p).Played++
			}
		}
		for _, p := range round.Waiting {
			get(p).Waited++
		}
		history = history.Merge(round)
	}

	summary.Participants = make([]ParticipantStats, 0, len(stats))
	for p, s := range stats {
		s.Partners = len(history.partners[p])
		s.Opponents = len(history.opponents[p])
		summary.Participants = append(summary.Participants, *s)
	}
	sort.Slice(summary.Participants, func(i, j int) bool {
		return summary.Participants[i].Participant < summary.Participants[j].Participant
	})
	return summary
}
