package schedule

import "errors"

var (
	ErrInsufficientParticipants = errors.New("not enough participants to fill a court")
	ErrInvalidCourtCount        = errors.New("court count must be between 1 and 64")
	ErrInvalidRoundCount        = errors.New("round count must be between 1 and 100")
	ErrDuplicateParticipant     = errors.New("participant is listed more than once")
)
