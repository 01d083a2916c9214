package healthcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"NewsDigest/internal/config"
)

// Status is the outcome of a single probe.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Overall summarises every probe of a run.
type Overall string

const (
	OverallHealthy   Overall = "healthy"
	OverallDegraded  Overall = "degraded"
	OverallUnhealthy Overall = "unhealthy"
)

var apiEndpoints = []string{
	"/api/news/articles",
	"/api/news/trending",
	"/api/news/stats",
}

// Probe checks one dependency and returns details worth reporting.
type Probe interface {
	Name() string
	Check(ctx context.Context) (map[string]any, error)
}

// Check is the recorded result of one probe.
type Check struct {
	Service      string         `json:"service"`
	Status       Status         `json:"status"`
	ResponseTime float64        `json:"response_time"`
	Details      map[string]any `json:"details"`
}

// Report aggregates a full run.
type Report struct {
	OverallStatus   Overall   `json:"overall_status"`
	HealthyServices int       `json:"healthy_services"`
	TotalServices   int       `json:"total_services"`
	Timestamp       time.Time `json:"timestamp"`
	Checks          []Check   `json:"checks"`
}

// ExitCode maps the overall status to the process exit code.
func (r Report) ExitCode() int {
	switch r.OverallStatus {
	case OverallHealthy:
		return 0
	case OverallDegraded:
		return 1
	default:
		return 2
	}
}

// Checker runs probes concurrently with a shared per-probe timeout.
type Checker struct {
	probes  []Probe
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewChecker builds a checker over the given probes.
func NewChecker(timeout time.Duration, logger *slog.Logger, probes ...Probe) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		probes:  probes,
		timeout: timeout,
		logger:  logger.With("component", "healthcheck"),
		now:     time.Now,
	}
}

// DefaultProbes returns the backend, frontend, database and API endpoint probes.
// db may be nil when no database connection could be opened.
func DefaultProbes(cfg config.HealthCheckConfig, db DatabaseProbe, dbErr error) []Probe {
	client := &http.Client{Timeout: cfg.Timeout}
	backend := strings.TrimRight(cfg.BackendURL, "/")

	probes := []Probe{
		&HTTPProbe{Service: "backend", URL: backend + "/health", Client: client, DecodeBody: true},
		&HTTPProbe{Service: "frontend", URL: cfg.FrontendURL, Client: client},
		&databaseCheck{db: db, openErr: dbErr},
	}
	for _, endpoint := range apiEndpoints {
		probes = append(probes, &HTTPProbe{
			Service:    "api" + endpoint,
			URL:        backend + endpoint,
			Client:     client,
			DecodeBody: true,
			CountItems: true,
		})
	}
	return probes
}

// Run executes every probe and builds the report.
func (c *Checker) Run(ctx context.Context) Report {
	c.logger.Info("starting health check", "probes", len(c.probes))

	checks := make([]Check, len(c.probes))
	var wg sync.WaitGroup
	for i, probe := range c.probes {
		wg.Add(1)
		go func(i int, probe Probe) {
			defer wg.Done()
			checks[i] = c.runProbe(ctx, probe)
		}(i, probe)
	}
	wg.Wait()

	report := Report{
		TotalServices: len(checks),
		Timestamp:     c.now().UTC(),
		Checks:        checks,
	}
	for _, check := range checks {
		if check.Status == StatusHealthy {
			report.HealthyServices++
		}
	}
	switch {
	case report.HealthyServices == report.TotalServices:
		report.OverallStatus = OverallHealthy
	case report.HealthyServices > 0:
		report.OverallStatus = OverallDegraded
	default:
		report.OverallStatus = OverallUnhealthy
	}

	c.logger.Info("health check completed",
		"status", report.OverallStatus,
		"healthy", report.HealthyServices,
		"total", report.TotalServices,
	)
	return report
}

func (c *Checker) runProbe(ctx context.Context, probe Probe) Check {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	details, err := probe.Check(ctx)
	check := Check{
		Service:      probe.Name(),
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).Seconds(),
		Details:      details,
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Details = map[string]any{"error": err.Error()}
		c.logger.Warn("probe failed", "service", check.Service, "error", err)
	}
	if check.Details == nil {
		check.Details = map[string]any{}
	}
	return check
}

// HTTPProbe expects a 200 from a GET on URL.
type HTTPProbe struct {
	Service    string
	URL        string
	Client     *http.Client
	DecodeBody bool
	CountItems bool
}

func (p *HTTPProbe) Name() string { return p.Service }

func (p *HTTPProbe) Check(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if !p.DecodeBody {
		return map[string]any{"status_code": resp.StatusCode}, nil
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if p.CountItems {
		length := 1
		if items, ok := body.([]any); ok {
			length = len(items)
		}
		return map[string]any{"data_length": length}, nil
	}
	if obj, ok := body.(map[string]any); ok {
		return obj, nil
	}
	return map[string]any{"body": body}, nil
}

// DatabaseProbe is the slice of the article store the checker needs.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (articles, interactions int, err error)
}

type databaseCheck struct {
	db      DatabaseProbe
	openErr error
}

func (d *databaseCheck) Name() string { return "database" }

func (d *databaseCheck) Check(ctx context.Context) (map[string]any, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	if d.db == nil {
		return nil, fmt.Errorf("database not configured")
	}
	if err := d.db.Ping(ctx); err != nil {
		return nil, err
	}
	articles, interactions, err := d.db.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"article_count":     articles,
		"interaction_count": interactions,
	}, nil
}

func statusIcon(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// WriteText prints a human readable report.
func WriteText(w io.Writer, report Report) {
	rule := strings.Repeat("=", 60)
	overallIcon := map[Overall]string{
		OverallHealthy:   "✅",
		OverallDegraded:  "⚠️",
		OverallUnhealthy: "❌",
	}[report.OverallStatus]

	fmt.Fprintf(w, "\n%s\n🏥 NEWS DIGEST - HEALTH REPORT\n%s\n", rule, rule)
	fmt.Fprintf(w, "\n%s Overall Status: %s\n", overallIcon, strings.ToUpper(string(report.OverallStatus)))
	fmt.Fprintf(w, "📊 Services: %d/%d healthy\n", report.HealthyServices, report.TotalServices)
	fmt.Fprintf(w, "🕐 Timestamp: %s\n", report.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "\n📋 Service Details:\n%s\n", strings.Repeat("-", 40))

	for _, check := range report.Checks {
		ok := check.Status == StatusHealthy
		fmt.Fprintf(w, "%s %s: %s (%.3fs)\n", statusIcon(ok), check.Service, check.Status, check.ResponseTime)
		if !ok {
			fmt.Fprintf(w, "   %v\n", check.Details["error"])
			continue
		}
		if check.Service == "database" {
			fmt.Fprintf(w, "   📰 Articles: %v\n", check.Details["article_count"])
			fmt.Fprintf(w, "   👥 Interactions: %v\n", check.Details["interaction_count"])
		}
	}
	fmt.Fprintf(w, "\n%s\n", rule)
}

// WriteJSON saves the report to path.
func WriteJSON(path string, report Report) error {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
