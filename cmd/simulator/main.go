package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "practice":
		practiceCmd(apiURL, args)
	case "report":
		reportCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Practice Simulator - Development tool for exercising the progress API

USAGE:
  simulator <command> [options]

COMMANDS:
  practice  Register a user and submit a burst of practice sessions
  report    Run "practice" and then print stats, achievements and the weekly report
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Submit 7 completed 10-minute sessions for a fresh user
  simulator practice

  # 3 sessions of 25 minutes each, including one abandoned session
  simulator practice --count=3 --minutes=25 --abandon=1

  # Full round trip: sessions, stats, achievements, weekly buckets
  simulator report --count=7`)
}

func practiceCmd(apiURL string, args []string) string {
	fs := flag.NewFlagSet("practice", flag.ExitOnError)
	count := fs.Int("count", 7, "Number of completed sessions to submit")
	minutes := fs.Int("minutes", 10, "Duration of each session in minutes")
	abandon := fs.Int("abandon", 0, "Number of additional incomplete sessions to submit")
	fs.Parse(args)

	if *count < 1 {
		fmt.Println("Error: --count must be at least 1")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Practice Simulator ===")
	fmt.Println()

	name := fmt.Sprintf("sim_%s", uuid.New().String()[:8])
	fmt.Printf("Registering user %s... ", name)
	_, token, err := client.RegisterUser(name)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")

	fmt.Printf("Submitting %d completed sessions of %d minutes:\n", *count, *minutes)
	for i := 0; i < *count; i++ {
		session, err := client.SubmitSession(token, *minutes*60, "timer", true)
		if err != nil {
			fmt.Printf("  session %d FAILED: %v\n", i+1, err)
			os.Exit(1)
		}
		fmt.Printf("  session %d OK (id: %s)\n", i+1, session.ID)
		time.Sleep(50 * time.Millisecond)
	}

	for i := 0; i < *abandon; i++ {
		if _, err := client.SubmitSession(token, *minutes*60, "timer", false); err != nil {
			fmt.Printf("  abandoned session %d FAILED: %v\n", i+1, err)
			os.Exit(1)
		}
		fmt.Printf("  abandoned session %d OK (should not affect stats)\n", i+1)
	}

	return token
}

func reportCmd(apiURL string, args []string) {
	token := practiceCmd(apiURL, args)
	client := NewAPIClient(apiURL)

	fmt.Println()
	stats, err := client.GetStats(token)
	if err != nil {
		fmt.Printf("Failed to fetch stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stats: %d min total, %d sessions, streak %d (longest %d)\n",
		stats.TotalMinutes, stats.TotalSessions, stats.CurrentStreak, stats.LongestStreak)

	achievements, err := client.GetAchievements(token)
	if err != nil {
		fmt.Printf("Failed to fetch achievements: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Achievements (%d):\n", len(achievements))
	for _, a := range achievements {
		fmt.Printf("  %s (value %d) at %s\n", a.Type, a.Value, a.UnlockedAt)
	}

	buckets, err := client.GetWeeklyProgress(token)
	if err != nil {
		fmt.Printf("Failed to fetch weekly progress: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("This week:")
	for _, b := range buckets {
		fmt.Printf("  %-9s %s  %3d min  %d sessions\n", b.Day, b.Date, b.Minutes, b.Sessions)
	}
}
