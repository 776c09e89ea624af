package store

// Store persists generated schedules and brackets.
type Store interface {
	CreateSchedule(rec *ScheduleRecord) error
	GetSchedule(id string) (*ScheduleRecord, error)
	ListSchedules() ([]ScheduleRecord, error)
	DeleteSchedule(id string) error

	CreateBracket(rec *BracketRecord) error
	GetBracket(id string) (*BracketRecord, error)
	ListBrackets() ([]BracketRecord, error)
	// UpdateBracket writes rec if its Version still matches the stored one and bumps it.
	UpdateBracket(rec *BracketRecord) error
	DeleteBracket(id string) error
}
