package live

import (
	"fmt"
	"sync"
	"time"

	"github.com/nmoreaux/instalens-go/internal/domain"
	"github.com/nmoreaux/instalens-go/internal/util"
)

// milestoneStep is the follower interval that produces a milestone alert.
const milestoneStep = 5000

// DetectSpike flags an engagement burst: rate is the event count observed in
// the current window, baseline the historical average for the same window.
func DetectSpike(rate, baseline float64, factor float64) (domain.Alert, bool) {
	if baseline <= 0 || factor <= 0 || rate < baseline*factor {
		return domain.Alert{}, false
	}
	return domain.Alert{
		Type:    domain.AlertSpike,
		Title:   "Engagement Spike",
		Message: fmt.Sprintf("Your account is receiving %.1fx more activity than usual", rate/baseline),
	}, true
}

// DetectMilestone flags a follower count crossing a milestone boundary.
func DetectMilestone(previous, current int64) (domain.Alert, bool) {
	if current <= previous {
		return domain.Alert{}, false
	}
	if previous/milestoneStep == current/milestoneStep {
		return domain.Alert{}, false
	}
	crossed := (current / milestoneStep) * milestoneStep
	return domain.Alert{
		Type:    domain.AlertMilestone,
		Title:   "Milestone Reached",
		Message: fmt.Sprintf("Congratulations! You've reached %s followers!", util.FormatCount(crossed)),
	}, true
}

// DetectDrop flags a follower loss over the observation window.
func DetectDrop(previous, current int64) (domain.Alert, bool) {
	if current >= previous {
		return domain.Alert{}, false
	}
	return domain.Alert{
		Type:    domain.AlertWarning,
		Title:   "Follower Drop",
		Message: fmt.Sprintf("You lost %d followers in the last 24 hours", previous-current),
	}, true
}

// Monitor keeps a bounded in-order history of feed events and the alerts
// derived from them, for the monitoring tab to render.
type Monitor struct {
	mu       sync.Mutex
	events   []domain.Event
	alerts   []domain.Alert
	capacity int

	windowStart time.Time
	windowCount int
	baseline    float64

	// now is swappable for tests.
	now func() time.Time
}

const monitorWindow = time.Minute

func NewMonitor(capacity int, baseline float64) *Monitor {
	if capacity <= 0 {
		capacity = 100
	}
	return &Monitor{
		capacity: capacity,
		baseline: baseline,
		now:      time.Now,
	}
}

// Record appends an event, trims history to capacity and returns a spike
// alert when the per-window event rate clears three times the baseline.
func (m *Monitor) Record(event domain.Event) (domain.Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	if len(m.events) > m.capacity {
		m.events = m.events[len(m.events)-m.capacity:]
	}

	now := m.now()
	if m.windowStart.IsZero() || now.Sub(m.windowStart) >= monitorWindow {
		m.windowStart = now
		m.windowCount = 0
	}
	m.windowCount++

	alert, ok := DetectSpike(float64(m.windowCount), m.baseline, 3)
	if ok {
		alert.ID = fmt.Sprintf("alert-%d", len(m.alerts)+1)
		alert.Time = now.Format("15:04")
		m.alerts = append(m.alerts, alert)
		// Reset the window so one burst raises one alert.
		m.windowStart = now
		m.windowCount = 0
	}
	return alert, ok
}

// Events returns the recorded history, oldest first.
func (m *Monitor) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *Monitor) Alerts() []domain.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}
