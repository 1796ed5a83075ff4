package llm

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ProbeStatus is the outcome of the most recent gateway probe. CheckedAt
// is zero when no probe has run yet.
type ProbeStatus struct {
	Healthy   bool
	CheckedAt time.Time
	Latency   time.Duration
	Error     string
}

// HealthMonitor remembers the latest probe outcome for the health endpoint
// and optionally re-probes on a cron schedule.
type HealthMonitor struct {
	client *Client

	mu   sync.RWMutex
	last ProbeStatus
}

func NewHealthMonitor(client *Client) *HealthMonitor {
	return &HealthMonitor{client: client}
}

// Last returns the most recent probe outcome without triggering a probe.
func (m *HealthMonitor) Last() ProbeStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// ProbeNow runs one probe, records the outcome and returns it.
func (m *HealthMonitor) ProbeNow(ctx context.Context) ProbeStatus {
	start := time.Now()
	err := m.client.Probe(ctx)
	status := ProbeStatus{
		Healthy:   err == nil,
		CheckedAt: time.Now(),
		Latency:   time.Since(start),
	}
	if err != nil {
		status.Error = err.Error()
	}

	m.mu.Lock()
	m.last = status
	m.mu.Unlock()
	return status
}

// StartScheduler starts a cron-based loop that periodically probes the
// provider. The schedule is a standard 5-field cron expression
// (minute hour day-of-month month day-of-week), e.g. "*/15 * * * *".
// An empty schedule disables the loop; so does an unconfigured client.
func (m *HealthMonitor) StartScheduler(schedule string) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Println("Health probe disabled (health_probe_schedule not set)")
		return
	}
	if !m.client.Configured() {
		log.Println("Health probe disabled: LLM gateway is not configured")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid health_probe_schedule '%s': %v, health probe disabled", schedule, err)
		return
	}
	log.Printf("Health probe scheduled (cron: %s) provider=%s", schedule, m.client.Provider())

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			time.Sleep(next.Sub(now))

			status := m.ProbeNow(context.Background())
			if status.Healthy {
				log.Printf("health probe ok provider=%s latency=%s", m.client.Provider(), status.Latency.Round(time.Millisecond))
			} else {
				log.Printf("health probe failed provider=%s: %s", m.client.Provider(), status.Error)
			}
		}
	}()
}
