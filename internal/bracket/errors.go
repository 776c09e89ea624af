package bracket

import "errors"

var (
	ErrInsufficientParticipants = errors.New("not enough participants for a bracket")
	ErrNoTeamsConfigured        = errors.New("manual assignment needs at least one team")
	ErrInvalidGameType          = errors.New("unknown game type")
	ErrInvalidMode              = errors.New("unknown assignment mode")
	ErrInvalidTeam              = errors.New("invalid team")
	ErrDuplicateParticipant     = errors.New("participant is listed more than once")

	ErrRoundOutOfRange = errors.New("round index out of range")
	ErrMatchOutOfRange = errors.New("match index out of range")
	ErrInvalidSide     = errors.New("side must be team1 or team2")
	ErrNegativeScore   = errors.New("score cannot be negative")
	ErrMatchNotReady   = errors.New("match teams are not decided yet")
	ErrTiedMatch       = errors.New("match is tied, enter a deciding score")
	ErrNoNextRound     = errors.New("final round has no next round")
)
