package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncSchedulesGenerated()
	IncBracketsGenerated()
	IncWinnersAdvanced()
	IncRosterImports()
	ObserveGenerationDuration(kind string, duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	SetStartupTime(duration float64)
}

// Store keeps lifetime counters that survive restarts.
type Store interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}

// Keys counted by the Store.
const (
	KeySchedulesGenerated = "schedules_generated"
	KeyBracketsGenerated  = "brackets_generated"
	KeyWinnersAdvanced    = "winners_advanced"
	KeyChampionsCrowned   = "champions_crowned"
)

// Generation kinds observed by ObserveGenerationDuration.
const (
	KindSchedule = "schedule"
	KindBracket  = "bracket"
)
