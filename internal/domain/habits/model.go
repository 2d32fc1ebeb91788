package habits

import (
	"errors"

	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

var (
	ErrBucketNotFound = errors.New("weekly bucket not found")
	ErrLogNotFound    = errors.New("log entry not found")
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrRemoteWrite    = errors.New("remote write failed")
)

// LogEntry is one recorded activity. Entries are immutable once created;
// the only permitted change is deletion.
type LogEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Time      string  `json:"time"`
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// DayRecord holds one day's logs. Logs are stored in append order; Total is
// kept equal to the sum of log amounts at all times.
type DayRecord struct {
	Day   weekcal.Day `json:"day"`
	Logs  []LogEntry  `json:"logs"`
	Total float64     `json:"total"`
	Goal  float64     `json:"goal"`
}

// WeekBucket is the persisted document for one user, metric and ISO week.
// Days always holds exactly seven records in Monday-first order.
type WeekBucket struct {
	UserID  string      `json:"userId"`
	HabitID string      `json:"habitId,omitempty"`
	WeekID  string      `json:"weekId"`
	Days    []DayRecord `json:"days"`
}

// NewWeekBucket builds a fresh bucket with empty logs and the default goal on
// every day.
func NewWeekBucket(userID, habitID, weekID string, goal float64) *WeekBucket {
	days := make([]DayRecord, 0, len(weekcal.MondayFirst))
	for _, day := range weekcal.MondayFirst {
		days = append(days, DayRecord{
			Day:   day,
			Logs:  []LogEntry{},
			Total: 0,
			Goal:  goal,
		})
	}
	return &WeekBucket{
		UserID:  userID,
		HabitID: habitID,
		WeekID:  weekID,
		Days:    days,
	}
}

// DayRecordFor returns the record for the named day, or nil.
func (b *WeekBucket) DayRecordFor(day weekcal.Day) *DayRecord {
	for i := range b.Days {
		if b.Days[i].Day == day {
			return &b.Days[i]
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand out while the original keeps
// mutating under the store lock.
func (b *WeekBucket) Clone() *WeekBucket {
	if b == nil {
		return nil
	}
	out := *b
	out.Days = make([]DayRecord, len(b.Days))
	for i, d := range b.Days {
		out.Days[i] = d
		out.Days[i].Logs = append([]LogEntry(nil), d.Logs...)
	}
	return &out
}

// Metric describes one tracked habit. WeeklyGoal is only set for
// accumulating metrics that also have a whole-week target.
type Metric struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	DailyGoal  float64 `json:"dailyGoal"`
	WeeklyGoal float64 `json:"weeklyGoal,omitempty"`
}

// Metrics is the registry of tracked habits.
var Metrics = []Metric{
	{ID: "meditation", Name: "Meditation", Unit: "min", DailyGoal: 15},
	{ID: "running", Name: "Running", Unit: "km", DailyGoal: 1, WeeklyGoal: 5},
	{ID: "work", Name: "Focus Work", Unit: "min", DailyGoal: 240},
}

// MetricByID looks up a metric in the registry.
func MetricByID(id string) (Metric, bool) {
	for _, m := range Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}
