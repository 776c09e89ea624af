package schedule

import (
	"fmt"
	"strings"
)

// FormatText renders rounds as a plain-text sheet for pasting into chats or printing.
func FormatText(rounds []RoundAssignment) string {
	var b strings.Builder
	for i, round := range rounds {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Round %d\n", round.Round)
		for _, m := range round.Matches {
			fmt.Fprintf(&b, "  %s: %s vs %s\n", m.Court, teamName(m.TeamA), teamName(m.TeamB))
		}
		if len(round.Waiting) > 0 {
			fmt.Fprintf(&b, "  Waiting: %s\n", joinParticipants(round.Waiting, ", "))
		}
	}
	return b.String()
}

func teamName(team [2]Participant) string {
	return joinParticipants(team[:], " & ")
}

func joinParticipants(ps []Participant, sep string) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return strings.Join(names, sep)
}
