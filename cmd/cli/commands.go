package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/spf13/cobra"
)

var (
	players     []string
	courts      int
	rounds      int
	courtLabels []string
	seed        int64
	name        string
	gameType    string
	mode        string
	teams       []string
	side        string
	version     int
	date        string
)

func init() {
	scheduleCmd.Flags().StringSliceVarP(&players, "players", "p", nil, "Comma separated player names")
	scheduleCmd.Flags().IntVarP(&courts, "courts", "c", 1, "Number of courts")
	scheduleCmd.Flags().IntVarP(&rounds, "rounds", "r", 1, "Number of rounds")
	scheduleCmd.Flags().StringSliceVar(&courtLabels, "court-labels", nil, "Names for the courts, in order")
	scheduleCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for a reproducible draw")
	_ = scheduleCmd.MarkFlagRequired("players")

	bracketCmd.Flags().StringSliceVarP(&players, "players", "p", nil, "Comma separated player names (RANDOM mode)")
	bracketCmd.Flags().StringSliceVar(&teams, "team", nil, "A manual team as name or name+name, repeatable (MANUAL mode)")
	bracketCmd.Flags().StringVar(&name, "name", "", "Bracket name")
	bracketCmd.Flags().StringVarP(&gameType, "game-type", "g", "SINGLES", "SINGLES or DOUBLES")
	bracketCmd.Flags().StringVarP(&mode, "mode", "m", "RANDOM", "RANDOM or MANUAL")
	bracketCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for a reproducible draw")

	scoreCmd.Flags().StringVar(&side, "side", "team1", "team1 or team2")
	scoreCmd.Flags().IntVar(&version, "version", 0, "Expected bracket version, 0 for latest")
	advanceCmd.Flags().IntVar(&version, "version", 0, "Expected bracket version, 0 for latest")
	rosterCmd.Flags().StringVar(&date, "date", "", "Day to import, YYYY-MM-DD (default today)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(scheduleTextCmd)
	rootCmd.AddCommand(bracketCmd)
	rootCmd.AddCommand(showBracketCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(rosterCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/stats", nil)
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Draw a court rotation",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"participants": players,
			"courts":       courts,
			"rounds":       rounds,
		}
		if len(courtLabels) > 0 {
			body["court_labels"] = courtLabels
		}
		if cmd.Flags().Changed("seed") {
			body["seed"] = seed
		}
		return performRequest(http.MethodPost, "/schedules", body)
	},
}

var scheduleTextCmd = &cobra.Command{
	Use:   "schedule-text <id>",
	Short: "Print a stored rotation as text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/schedules/"+url.PathEscape(args[0])+"/text", nil)
	},
}

var bracketCmd = &cobra.Command{
	Use:   "bracket",
	Short: "Draw a knockout bracket",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"name":         name,
			"participants": players,
			"game_type":    strings.ToUpper(gameType),
			"mode":         strings.ToUpper(mode),
		}
		if len(teams) > 0 {
			parsed, err := parseTeams(teams)
			if err != nil {
				return err
			}
			body["teams"] = parsed
		}
		if cmd.Flags().Changed("seed") {
			body["seed"] = seed
		}
		return performRequest(http.MethodPost, "/brackets", body)
	},
}

var showBracketCmd = &cobra.Command{
	Use:   "show-bracket <id>",
	Short: "Show a stored bracket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/brackets/"+url.PathEscape(args[0]), nil)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <bracket-id> <round> <match> <score>",
	Short: "Record one side's score",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := atois(args[1:])
		if err != nil {
			return err
		}
		path := fmt.Sprintf("/brackets/%s/rounds/%d/matches/%d/score", url.PathEscape(args[0]), nums[0], nums[1])
		return performRequest(http.MethodPut, path, map[string]any{
			"side":    side,
			"score":   nums[2],
			"version": version,
		})
	},
}

var advanceCmd = &cobra.Command{
	Use:   "advance <bracket-id> <round>",
	Short: "Move the winners of a round into the next one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := atois(args[1:])
		if err != nil {
			return err
		}
		path := fmt.Sprintf("/brackets/%s/rounds/%d/advance", url.PathEscape(args[0]), nums[0])
		if version > 0 {
			path += "?version=" + strconv.Itoa(version)
		}
		return performRequest(http.MethodPost, path, nil)
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the players booked at the club on a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/roster"
		if date != "" {
			path += "?date=" + url.QueryEscape(date)
		}
		return performRequest(http.MethodGet, path, nil)
	},
}

// parseTeams turns "ann+bob" into a pair, "eve+GUEST" into a guest team and "ann" into a single.
func parseTeams(specs []string) ([]bracket.Team, error) {
	out := make([]bracket.Team, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, "+")
		switch {
		case len(parts) == 1:
			out = append(out, bracket.Single(bracket.Participant(parts[0])))
		case len(parts) == 2 && bracket.Participant(parts[1]) == bracket.GuestName:
			out = append(out, bracket.Guest(bracket.Participant(parts[0])))
		case len(parts) == 2:
			out = append(out, bracket.Pair(bracket.Participant(parts[0]), bracket.Participant(parts[1])))
		default:
			return nil, fmt.Errorf("invalid team %q", spec)
		}
	}
	return out, nil
}

func atois(args []string) ([]int, error) {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", a, err)
		}
		nums[i] = n
	}
	return nums, nil
}

func performRequest(method, endpoint string, payload any) error {
	target := host + endpoint
	if dryRun {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target += sep + "dry_run=true"
	}
	fmt.Printf("Making request to %s %s\n", method, target)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
