package util

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// PerfEnabled turns on request timing and counters
var PerfEnabled bool

// PerfMetric aggregates the timings recorded under one name
type PerfMetric struct {
	Name      string
	Count     int64
	TotalTime time.Duration
	MaxTime   time.Duration
}

// Avg is the mean recorded duration
func (m PerfMetric) Avg() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.TotalTime / time.Duration(m.Count)
}

// PerfTracker collects timings and counters for one run
type PerfTracker struct {
	mu       sync.Mutex
	started  time.Time
	metrics  map[string]*PerfMetric
	counters map[string]int64
}

var (
	globalPerf     *PerfTracker
	globalPerfOnce sync.Once
)

// NewPerfTracker returns an empty tracker
func NewPerfTracker() *PerfTracker {
	return &PerfTracker{
		started:  time.Now(),
		metrics:  make(map[string]*PerfMetric),
		counters: make(map[string]int64),
	}
}

// GetPerfTracker returns the process-wide tracker
func GetPerfTracker() *PerfTracker {
	globalPerfOnce.Do(func() {
		globalPerf = NewPerfTracker()
	})
	return globalPerf
}

// Record adds one timing under name
func (pt *PerfTracker) Record(name string, d time.Duration) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	m, ok := pt.metrics[name]
	if !ok {
		m = &PerfMetric{Name: name}
		pt.metrics[name] = m
	}
	m.Count++
	m.TotalTime += d
	if d > m.MaxTime {
		m.MaxTime = d
	}
}

// Increment bumps the counter called name
func (pt *PerfTracker) Increment(name string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.counters[name]++
}

// Counter returns the current value of a counter
func (pt *PerfTracker) Counter(name string) int64 {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.counters[name]
}

// Metrics returns the timings sorted by total time, slowest first
func (pt *PerfTracker) Metrics() []PerfMetric {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	out := make([]PerfMetric, 0, len(pt.metrics))
	for _, m := range pt.metrics {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalTime > out[j].TotalTime
	})
	return out
}

var (
	perfTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D9480F")).Bold(true)
	perfCellStyle  = lipgloss.NewStyle().Padding(0, 1)
	perfSlowStyle  = perfCellStyle.Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// Report renders the collected timings and counters
func (pt *PerfTracker) Report() string {
	metrics := pt.Metrics()

	pt.mu.Lock()
	counterNames := make([]string, 0, len(pt.counters))
	for name := range pt.counters {
		counterNames = append(counterNames, name)
	}
	counters := make(map[string]int64, len(pt.counters))
	for k, v := range pt.counters {
		counters[k] = v
	}
	uptime := time.Since(pt.started).Round(time.Millisecond)
	pt.mu.Unlock()
	sort.Strings(counterNames)

	timings := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Operation", "Count", "Total", "Avg", "Max").
		StyleFunc(func(row, col int) lipgloss.Style {
			// attempts that waited out the player delay or a timeout stand out
			if row >= 0 && row < len(metrics) && col == 4 && metrics[row].MaxTime > 5*time.Second {
				return perfSlowStyle
			}
			return perfCellStyle
		})
	for _, m := range metrics {
		timings.Row(
			m.Name,
			strconv.FormatInt(m.Count, 10),
			m.TotalTime.Round(time.Millisecond).String(),
			m.Avg().Round(time.Millisecond).String(),
			m.MaxTime.Round(time.Millisecond).String(),
		)
	}

	counts := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Counter", "Value").
		StyleFunc(func(_, _ int) lipgloss.Style { return perfCellStyle })
	for _, name := range counterNames {
		counts.Row(name, strconv.FormatInt(counters[name], 10))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		perfTitleStyle.Render("Request report ("+uptime.String()+")"),
		timings.String(),
		counts.String(),
	)
}

// Perf records the time elapsed since start under name
func Perf(name string, start time.Time) {
	if !PerfEnabled {
		return
	}
	GetPerfTracker().Record(name, time.Since(start))
}

// PerfCount increments a counter
func PerfCount(name string) {
	if !PerfEnabled {
		return
	}
	GetPerfTracker().Increment(name)
}
