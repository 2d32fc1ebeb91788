package events

import "time"

// Dashboard event types
const (
	DashboardEventMetricsUpdate   = "metrics_update"
	DashboardEventCacheInvalidate = "cache_invalidate"
	DashboardEventDayRollover     = "day_rollover"
)

// DashboardEvent notifies dashboard consumers that derived data for a user
// (or for everyone, when UserID is empty) is stale.
type DashboardEvent struct {
	EventType string      `json:"event_type"`
	UserID    string      `json:"user_id,omitempty"`
	EntityID  string      `json:"entity_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}
