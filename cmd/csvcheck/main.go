// Command csvcheck validates a meeting CSV offline, without geocoding or
// starting the service. It reports rejected rows with reasons, the distinct
// addresses a load would geocode, and which entries yield a usable join link.
//
// Usage:
//
//	go run ./cmd/csvcheck -csv data/meetings.csv
//	go run ./cmd/csvcheck -csv https://example.com/meetings.csv -verbose
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/meeting-locator/internal/domain"
	"github.com/couchcryptid/meeting-locator/internal/source"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path or URL of the meeting CSV")
	verbose := flag.Bool("verbose", false, "print every accepted meeting")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *verbose); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath string, verbose bool) int {
	fmt.Println("=== Meeting CSV Validation ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := source.NewLoader(csvPath, 30*time.Second, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rows, err := loader.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	meetings, rowPhase := validateRows(rows, verbose)
	phases := []*phase{
		rowPhase,
		analyzeAddresses(meetings),
		analyzeJoinLinks(meetings),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d issues)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d total, %d accepted, %d rejected\n",
		len(rows), len(meetings), len(rows)-len(meetings))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll checks passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Row validation ──
// Runs the same row validation a catalog load applies.

func validateRows(rows []map[string]string, verbose bool) ([]domain.Meeting, *phase) {
	p := &phase{name: "Phase 1: Row Validation"}

	var meetings []domain.Meeting
	for i, row := range rows {
		m, err := domain.ParseRow(row)
		if err != nil {
			// Data row numbering starts at CSV line 2 (after the header).
			p.errorf("line %d: %v", i+2, err)
			continue
		}
		meetings = append(meetings, m)
		if verbose {
			fmt.Printf("  %-30s %-10s %-10s %s\n", m.Name, m.Day, m.Time, m.Type)
		}
	}
	return meetings, p
}

// ── Phase 2: Address analysis ──
// Reports what a geocoding pass would see: distinct addresses and how many
// lookups caching saves. In-person meetings without an address are flagged,
// they would never appear on the map.

func analyzeAddresses(meetings []domain.Meeting) *phase {
	p := &phase{name: "Phase 2: Address Analysis"}

	distinct := map[string]int{}
	for i := range meetings {
		m := &meetings[i]
		if m.Address == "" {
			if m.Type != domain.TypeVirtual {
				p.errorf("%q: %s meeting has no address", m.Name, m.Type)
			}
			continue
		}
		distinct[m.Address]++
	}

	shared := 0
	for _, n := range distinct {
		if n > 1 {
			shared++
		}
	}
	fmt.Printf("  Addresses: %d distinct (%d shared by multiple meetings)\n", len(distinct), shared)
	return p
}

// ── Phase 3: Join links ──
// Checks which remote-capable meetings yield a usable join URL.

func analyzeJoinLinks(meetings []domain.Meeting) *phase {
	p := &phase{name: "Phase 3: Join Links"}

	derivable := 0
	for i := range meetings {
		m := &meetings[i]
		if _, ok := domain.JoinLink(*m); ok {
			derivable++
			continue
		}
		if m.Type != domain.TypeInPerson && m.RemoteJoinID != "" {
			p.errorf("%q: remote id %q yields no join link (no 9-11 digit id)", m.Name, m.RemoteJoinID)
		}
	}
	fmt.Printf("  Join links: %d derivable\n", derivable)
	return p
}
