package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/abs-calendar/internal/calendar"
	"github.com/pfrederiksen/abs-calendar/internal/release"
)

func main() {
	at, err := release.ParseTime("2026-01-28T11:30:00+11:00")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
		os.Exit(1)
	}

	// Create a sample release
	rec := release.NewRecord(at,
		"Consumer Price Index, Australia",
		"Quarterly CPI",
		"Dec Qtr 2025",
		"https://www.abs.gov.au/statistics/economy/price-indexes-and-inflation/consumer-price-index-australia/latest-release",
	)

	loc, err := calendar.ParseAllDay("", calendar.DefaultTimezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timezone: %v\n", err)
		os.Exit(1)
	}

	icsContent := calendar.Serialize([]*release.Record{rec}, calendar.Options{AllDay: loc, Now: time.Now()})

	// Write to file (owner read/write only)
	filename := "test-abs-calendar.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app")
	fmt.Println("2. Or subscribe to /v1/calendar from a running 'abs-calendar serve'")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
