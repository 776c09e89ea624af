package bracket

import "fmt"

// SetScore records a score for one side of a match and returns the updated copy.
func SetScore(b Bracket, round, match int, side Side, score int) (Bracket, error) {
	m, err := lookup(b, round, match)
	if err != nil {
		return Bracket{}, err
	}
	if side != SideTeam1 && side != SideTeam2 {
		return Bracket{}, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	if score < 0 {
		return Bracket{}, fmt.Errorf("%w: %d", ErrNegativeScore, score)
	}
	if m.Team1 == nil || m.Team2 == nil {
		return Bracket{}, ErrMatchNotReady
	}

	out := b.Clone()
	target := &out.Rounds[round].Matches[match]
	if side == SideTeam1 {
		target.Score1 = &score
	} else {
		target.Score2 = &score
	}
	return out, nil
}

// Winner returns the team that leaves m, or nil when the match is not decided yet.
func Winner(m Match) (*Team, error) {
	if m.Team1 == nil || m.Team2 == nil {
		return nil, nil
	}
	switch {
	case m.Team1.IsBye() && m.Team2.IsBye():
		bye := Bye()
		return &bye, nil
	case m.Team2.IsBye():
		return cloneTeam(m.Team1), nil
	case m.Team1.IsBye():
		return cloneTeam(m.Team2), nil
	}
	if m.Score1 == nil || m.Score2 == nil {
		return nil, nil
	}
	switch {
	case *m.Score1 > *m.Score2:
		return cloneTeam(m.Team1), nil
	case *m.Score2 > *m.Score1:
		return cloneTeam(m.Team2), nil
	}
	return nil, ErrTiedMatch
}

// AdvanceWinners moves every decided winner of round into the following round.
// Winners of matches 2i and 2i+1 meet in match i of the next round. Undecided
// matches leave their slot empty. A placed team that changes clears the stale scores
// and everything that team had reached in later rounds.
func AdvanceWinners(b Bracket, round int) (Bracket, error) {
	if round < 0 || round >= len(b.Rounds) {
		return Bracket{}, fmt.Errorf("%w: %d", ErrRoundOutOfRange, round)
	}
	if round == len(b.Rounds)-1 {
		return Bracket{}, ErrNoNextRound
	}

	out := b.Clone()
	next := out.Rounds[round+1].Matches
	for i, m := range out.Rounds[round].Matches {
		w, err := Winner(m)
		if err != nil {
			return Bracket{}, fmt.Errorf("round %d match %d: %w", round, i, err)
		}
		if w == nil {
			continue
		}
		target := &next[i/2]
		slot := &target.Team1
		if i%2 == 1 {
			slot = &target.Team2
		}
		if *slot != nil && (*slot).Equal(*w) {
			continue
		}
		*slot = w
		target.Score1, target.Score2 = nil, nil
		clearPath(out, round+1, i/2)
	}
	return out, nil
}

// clearPath empties the slot fed by match idx of round in every later round.
func clearPath(b Bracket, round, idx int) {
	for r := round + 1; r < len(b.Rounds); r++ {
		m := &b.Rounds[r].Matches[idx/2]
		if idx%2 == 0 {
			m.Team1 = nil
		} else {
			m.Team2 = nil
		}
		m.Score1, m.Score2 = nil, nil
		idx /= 2
	}
}

// Champion returns the winner of the final once it is decided.
func Champion(b Bracket) (Team, bool) {
	if len(b.Rounds) == 0 {
		return Team{}, false
	}
	final := b.Rounds[len(b.Rounds)-1]
	if len(final.Matches) != 1 {
		return Team{}, false
	}
	w, err := Winner(final.Matches[0])
	if err != nil || w == nil || w.IsBye() {
		return Team{}, false
	}
	return *w, true
}

func lookup(b Bracket, round, match int) (Match, error) {
	if round < 0 || round >= len(b.Rounds) {
		return Match{}, fmt.Errorf("%w: %d", ErrRoundOutOfRange, round)
	}
	matches := b.Rounds[round].Matches
	if match < 0 || match >= len(matches) {
		return Match{}, fmt.Errorf("%w: %d", ErrMatchOutOfRange, match)
	}
	return matches[match], nil
}
