// Command backend_check reads every configured academic year from the records
// backend and reports row counts, shape problems and call latency.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/gateway"
	"github.com/noah-isme/student-records/pkg/config"
)

type call struct {
	Action   string
	Success  bool
	Duration time.Duration
}

type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) ObserveGatewayCall(action string, success bool, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{Action: action, Success: success, Duration: duration})
}

func (r *recorder) last() call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return call{}
	}
	return r.calls[len(r.calls)-1]
}

type yearReport struct {
	Year        string
	Students    int
	Pending     int
	Unenrolled  int
	NoClass     int
	ReadCall    call
	PendingCall call
}

func main() {
	var (
		years   string
		timeout time.Duration
		strict  bool
	)

	flag.StringVar(&years, "years", "", "Comma separated years, defaults to SETTINGS_YEARS")
	flag.DurationVar(&timeout, "timeout", 15*time.Second, "Overall timeout")
	flag.BoolVar(&strict, "strict", false, "Exit non-zero when any backend call fails")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	targets := cfg.Settings.Years
	if strings.TrimSpace(years) != "" {
		targets = nil
		for _, y := range strings.Split(years, ",") {
			if y = strings.TrimSpace(y); y != "" {
				targets = append(targets, y)
			}
		}
	}

	rec := &recorder{}
	client := gateway.NewClient(cfg.Backend, cfg.Settings, zap.NewNop(), rec)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	settings := client.FetchSettings(ctx)
	fmt.Printf("Settings: %d classes, %d sections, %d years\n", len(settings.ClassList), len(settings.SectionList), len(settings.YearList))

	var (
		reports  []yearReport
		failures int
	)
	for _, year := range targets {
		report := checkYear(ctx, client, rec, year)
		if !report.ReadCall.Success || !report.PendingCall.Success {
			failures++
		}
		reports = append(reports, report)
	}

	printReport(reports)

	fmt.Printf("Failed calls: %d\n", failures)
	if strict && failures > 0 {
		os.Exit(1)
	}
}

func checkYear(ctx context.Context, client *gateway.Client, rec *recorder, year string) yearReport {
	report := yearReport{Year: year}

	students := client.ReadProfiles(ctx, year)
	report.ReadCall = rec.last()
	report.Students = len(students)
	for _, s := range students {
		if _, ok := s.LatestRecord(); !ok {
			report.Unenrolled++
			continue
		}
		if enrollment, ok := s.EnrollmentFor(year); ok && enrollment.Class == "" {
			report.NoClass++
		}
	}

	pending := client.GetPending(ctx, year)
	report.PendingCall = rec.last()
	report.Pending = len(pending)
	return report
}

func printReport(results []yearReport) {
	fmt.Println("Backend Check Report")
	fmt.Println("====================")
	for _, res := range results {
		status := "OK"
		if !res.ReadCall.Success || !res.PendingCall.Success {
			status = "ERROR"
		} else if res.NoClass > 0 {
			status = "WARN"
		}
		fmt.Printf("[%s] %s\n", status, res.Year)
		fmt.Printf("  Students: %d (%s)\n", res.Students, res.ReadCall.Duration)
		fmt.Printf("  Pending: %d (%s)\n", res.Pending, res.PendingCall.Duration)
		fmt.Printf("  Without enrollment: %d | Enrolled without class: %d\n", res.Unenrolled, res.NoClass)
	}
}
