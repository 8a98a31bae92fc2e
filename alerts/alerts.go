// Package alerts holds the transient notification state raised after
// mutations. Only one alert is visible at a time; a newer alert replaces the
// current one and each alert dismisses itself after a fixed display time.
package alerts

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindSuccess Kind = "alert-success"
	KindError   Kind = "alert-error"
	KindInfo    Kind = "alert-info"
)

// DisplayTime is how long an alert stays visible before auto-dismissing.
const DisplayTime = 4 * time.Second

type Alert struct {
	Message string
	Kind    Kind
}

// Notifier is the sink mutations report their outcome to.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Manager keeps at most one live alert, last write wins.
type Manager struct {
	mu      sync.Mutex
	current *Alert
	gen     int
	ttl     time.Duration
}

func NewManager() *Manager {
	return &Manager{ttl: DisplayTime}
}

func (m *Manager) Success(message string) { m.show(Alert{Message: message, Kind: KindSuccess}) }

func (m *Manager) Error(message string) { m.show(Alert{Message: message, Kind: KindError}) }

func (m *Manager) Info(message string) { m.show(Alert{Message: message, Kind: KindInfo}) }

// Current returns the alert on display, or nil when none is active.
func (m *Manager) Current() *Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	alert := *m.current
	return &alert
}

func (m *Manager) show(alert Alert) {
	m.mu.Lock()
	m.current = &alert
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	time.AfterFunc(m.ttl, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// A newer alert owns the slot now; leave it alone.
		if m.gen == gen {
			m.current = nil
		}
	})
}

// LogNotifier reports outcomes to the process logger, for headless use.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n *LogNotifier) Success(message string) {
	n.Logger.Infof("Event ID: OPERATION_OK, Description: %s", message)
}

func (n *LogNotifier) Error(message string) {
	n.Logger.Errorf("Event ID: OPERATION_FAILED, Description: %s", message)
}
