package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/database"
	"github.com/LASTRADA-Software/fs-directory-cleaner/internal/exitcodes"
)

func main() {
	dbPath := flag.String("db", "/var/lib/fs-directory-cleaner/history.db", "Path to history database")
	recent := flag.Int("recent", 0, "Show N most recent events")
	summary := flag.Bool("summary", false, "Show event counts per action")
	action := flag.String("action", "", "Filter by action (REMOVE, DRY_RUN, SKIP, ERROR)")
	pathPattern := flag.String("path", "", "Filter by path pattern (SQL LIKE syntax)")
	since := flag.Duration("since", 0, "Show events newer than this duration (e.g. 24h)")
	jsonOutput := flag.Bool("json", false, "Output in JSON format")
	flag.Parse()

	db, err := database.New(*dbPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to open database %s: %v", *dbPath, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()

	switch {
	case *summary:
		showSummary(db, *jsonOutput)
	case *recent > 0:
		showRecent(db, *recent, *jsonOutput)
	case *action != "":
		showByAction(db, *action, *jsonOutput)
	case *pathPattern != "":
		showByPath(db, *pathPattern, *jsonOutput)
	case *since > 0:
		showSince(db, *since, *jsonOutput)
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  fs-directory-cleaner-query --recent 10        # Show 10 most recent events")
		fmt.Println("  fs-directory-cleaner-query --summary          # Show counts per action")
		fmt.Println("  fs-directory-cleaner-query --action REMOVE    # Show only actual removals")
		fmt.Println("  fs-directory-cleaner-query --path '/data/%'   # Show events under /data")
		fmt.Println("  fs-directory-cleaner-query --since 24h        # Show events from the last day")
		os.Exit(exitcodes.UsageError)
	}
}

func showSummary(db *database.HistoryDB, jsonOutput bool) {
	counts, err := db.GetEventCountByAction()
	if err != nil {
		log.Fatalf("ERROR: Failed to get summary: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(counts, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("Events by action:")
	for action, count := range counts {
		fmt.Printf("  %-10s %d\n", action, count)
	}
}

func showRecent(db *database.HistoryDB, limit int, jsonOutput bool) {
	events, err := db.GetRecentEvents(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get recent events: %v", err)
	}
	printEvents(events, jsonOutput)
}

func showByAction(db *database.HistoryDB, action string, jsonOutput bool) {
	events, err := db.GetEventsByAction(action)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by action: %v", err)
	}
	printEvents(events, jsonOutput)
}

func showByPath(db *database.HistoryDB, pathPattern string, jsonOutput bool) {
	events, err := db.GetEventsByPath(pathPattern)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by path: %v", err)
	}
	printEvents(events, jsonOutput)
}

func showSince(db *database.HistoryDB, since time.Duration, jsonOutput bool) {
	events, err := db.GetEventsSince(time.Now().Add(-since))
	if err != nil {
		log.Fatalf("ERROR: Failed to query by time: %v", err)
	}
	printEvents(events, jsonOutput)
}

func printEvents(events []database.Event, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.MarshalIndent(events, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(events) == 0 {
		fmt.Println("No events found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTimestamp\tAction\tMode\tPath\tReason")
	_, _ = fmt.Fprintln(w, "--\t---------\t------\t----\t----\t------")

	for _, e := range events {
		reason := e.Reason
		if e.ErrorMessage != "" {
			reason = e.ErrorMessage
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.Mode, e.Path, reason)
	}
	_ = w.Flush()
}
