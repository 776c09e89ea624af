package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/database"
	"github.com/mauv0809/court-draw/internal/schedule"
	"github.com/mauv0809/court-draw/internal/store"
)

const (
	numSchedules = 20
	numBrackets  = 5
)

var demoRoster = []string{
	"Alba", "Bruno", "Carla", "Diego", "Elena", "Fede", "Gala", "Hugo",
	"Irene", "Jorge", "Kira", "Luis", "Marta", "Nico", "Olga", "Pablo",
}

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"TURSO_PRIMARY_URL": os.Getenv("TURSO_PRIMARY_URL"),
		"TURSO_AUTH_TOKEN":  os.Getenv("TURSO_AUTH_TOKEN"),
	}
	value, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	config["DB_NAME"] = value
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()
	st := store.New(db)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	startTime := time.Now()

	for i := 0; i < numSchedules; i++ {
		rec, err := seedSchedule(rng)
		if err != nil {
			log.Fatalf("Failed to generate schedule: %s", err)
		}
		if err := st.CreateSchedule(rec); err != nil {
			log.Fatalf("Failed to insert schedule: %s", err)
		}
		log.Debug("Inserted schedule", "id", rec.ID, "players", len(rec.Participants))
	}
	log.Info("Inserted schedules", "count", numSchedules)

	for i := 0; i < numBrackets; i++ {
		rec, err := seedBracket(rng)
		if err != nil {
			log.Fatalf("Failed to generate bracket: %s", err)
		}
		if err := st.CreateBracket(rec); err != nil {
			log.Fatalf("Failed to insert bracket: %s", err)
		}
		log.Debug("Inserted bracket", "id", rec.ID, "gameType", rec.GameType)
	}
	log.Info("Inserted brackets", "count", numBrackets)

	log.Info("Seeding finished", "duration", time.Since(startTime))
}

// pickRoster returns between atLeast and len(demoRoster) distinct names.
func pickRoster(rng *rand.Rand, atLeast int) []string {
	n := atLeast + rng.Intn(len(demoRoster)-atLeast+1)
	names := append([]string(nil), demoRoster...)
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	return names[:n]
}

func seedSchedule(rng *rand.Rand) (*store.ScheduleRecord, error) {
	names := pickRoster(rng, schedule.PlayersPerCourt)
	participants := make([]schedule.Participant, len(names))
	for i, n := range names {
		participants[i] = schedule.Participant(n)
	}
	courts := 1 + rng.Intn(len(participants)/schedule.PlayersPerCourt)
	rounds := 1 + rng.Intn(6)
	seed := rng.Int63()

	generated, err := schedule.Generate(participants, courts, rounds, schedule.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	return &store.ScheduleRecord{
		CourtCount:   courts,
		RoundCount:   rounds,
		Participants: participants,
		Rounds:       generated,
		Seed:         seed,
		CreatedAt:    time.Now().Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
	}, nil
}

// seedBracket draws a bracket and plays its first round with random scores.
func seedBracket(rng *rand.Rand) (*store.BracketRecord, error) {
	gameType := bracket.Singles
	if rng.Intn(2) == 0 {
		gameType = bracket.Doubles
	}
	names := pickRoster(rng, 4)
	participants := make([]bracket.Participant, len(names))
	for i, n := range names {
		participants[i] = bracket.Participant(n)
	}
	seed := rng.Int63()

	b, err := bracket.Generate(participants, gameType, bracket.Random, nil, bracket.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	for i, m := range b.Rounds[0].Matches {
		if m.Team1.IsBye() || m.Team2.IsBye() {
			continue
		}
		s1 := rng.Intn(7)
		s2 := 6
		if s1 == 6 {
			s2 = 7
		}
		if rng.Intn(2) == 0 {
			s1, s2 = s2, s1
		}
		if b, err = bracket.SetScore(b, 0, i, bracket.SideTeam1, s1); err != nil {
			return nil, err
		}
		if b, err = bracket.SetScore(b, 0, i, bracket.SideTeam2, s2); err != nil {
			return nil, err
		}
	}
	if len(b.Rounds) > 1 {
		if b, err = bracket.AdvanceWinners(b, 0); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	return &store.BracketRecord{
		Name:      "Seeded " + string(gameType) + " cup",
		GameType:  gameType,
		Mode:      bracket.Random,
		Bracket:   b,
		Seed:      seed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
