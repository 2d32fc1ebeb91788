package workout

import (
	"errors"
	"sort"

	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

var (
	ErrUnknownExercise = errors.New("exercise is not part of the day plan")
	ErrUnknownDay      = errors.New("unknown weekday")
	ErrRemoteWrite     = errors.New("remote write failed")
)

// Exercise is one prescribed movement. Sets and reps are free-form strings
// since prescriptions like "to failure" or "30-45 sec" are not numeric.
type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets string `json:"sets,omitempty"`
	Reps string `json:"reps,omitempty"`
}

// DayWorkout is one day of the weekly plan. The exercise catalog is fixed
// once the week document is created.
type DayWorkout struct {
	Day       weekcal.Day `json:"day"`
	Focus     string      `json:"focus,omitempty"`
	Exercises []Exercise  `json:"exercises"`
}

// WorkoutWeek is the persisted checklist document for one user and week.
// Completed holds the checked exercise ids as a sorted, duplicate-free
// slice; membership semantics are those of a set, and every id in it
// belongs to some day's catalog.
type WorkoutWeek struct {
	UserID    string       `json:"userId"`
	WeekID    string       `json:"weekId"`
	Workouts  []DayWorkout `json:"workouts"`
	Completed []string     `json:"completedExercises"`
}

// HasExercise reports whether the id belongs to the day's catalog.
func (d *DayWorkout) HasExercise(id string) bool {
	for _, e := range d.Exercises {
		if e.ID == id {
			return true
		}
	}
	return false
}

// IsCompleted reports whether the exercise id is checked off.
func (w *WorkoutWeek) IsCompleted(id string) bool {
	for _, e := range w.Completed {
		if e == id {
			return true
		}
	}
	return false
}

// toggle flips the id's membership in the completed set and keeps the slice
// sorted and free of duplicates.
func (w *WorkoutWeek) toggle(id string) {
	set := make(map[string]struct{}, len(w.Completed)+1)
	for _, e := range w.Completed {
		set[e] = struct{}{}
	}
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}

	w.Completed = make([]string, 0, len(set))
	for e := range set {
		w.Completed = append(w.Completed, e)
	}
	sort.Strings(w.Completed)
}

// doneFor counts the day's exercises that are checked off.
func (w *WorkoutWeek) doneFor(d *DayWorkout) int {
	var n int
	for _, e := range d.Exercises {
		if w.IsCompleted(e.ID) {
			n++
		}
	}
	return n
}

// DayFor returns the plan for the named day, or nil.
func (w *WorkoutWeek) DayFor(day weekcal.Day) *DayWorkout {
	for i := range w.Workouts {
		if w.Workouts[i].Day == day {
			return &w.Workouts[i]
		}
	}
	return nil
}

// Clone returns a deep copy.
func (w *WorkoutWeek) Clone() *WorkoutWeek {
	if w == nil {
		return nil
	}
	out := *w
	out.Workouts = make([]DayWorkout, len(w.Workouts))
	for i, d := range w.Workouts {
		out.Workouts[i] = d
		out.Workouts[i].Exercises = append([]Exercise(nil), d.Exercises...)
	}
	out.Completed = append([]string(nil), w.Completed...)
	return &out
}

// DayPlan is one day of the built-in training plan.
type DayPlan struct {
	Day       weekcal.Day
	Focus     string
	Exercises []Exercise
}

// DefaultPlan is the weekly training plan every new checklist starts from,
// Monday first.
var DefaultPlan = [7]DayPlan{
	{weekcal.Monday, "Chest", []Exercise{
		{ID: "mon-1", Name: "Bench Press", Sets: "4", Reps: "8"},
		{ID: "mon-2", Name: "Incline Dumbbell Press", Sets: "3", Reps: "10"},
		{ID: "mon-3", Name: "Chest Fly", Sets: "3", Reps: "12"},
		{ID: "mon-4", Name: "Push-Ups", Sets: "3", Reps: "to failure"},
	}},
	{weekcal.Tuesday, "Back", []Exercise{
		{ID: "tue-1", Name: "Pull-Ups", Sets: "4", Reps: "to failure"},
		{ID: "tue-2", Name: "Barbell Row", Sets: "4", Reps: "8"},
		{ID: "tue-3", Name: "Lat Pulldown", Sets: "3", Reps: "10"},
		{ID: "tue-4", Name: "Face Pull", Sets: "3", Reps: "15"},
	}},
	{weekcal.Wednesday, "Legs", []Exercise{
		{ID: "wed-1", Name: "Squat", Sets: "4", Reps: "8"},
		{ID: "wed-2", Name: "Leg Press", Sets: "3", Reps: "12"},
		{ID: "wed-3", Name: "Romanian Deadlift", Sets: "3", Reps: "10"},
		{ID: "wed-4", Name: "Calf Raise", Sets: "4", Reps: "15"},
	}},
	{weekcal.Thursday, "Shoulders", []Exercise{
		{ID: "thu-1", Name: "Overhead Press", Sets: "4", Reps: "8"},
		{ID: "thu-2", Name: "Lateral Raise", Sets: "3", Reps: "12"},
		{ID: "thu-3", Name: "Front Raise", Sets: "3", Reps: "12"},
		{ID: "thu-4", Name: "Shrugs", Sets: "3", Reps: "15"},
	}},
	{weekcal.Friday, "Arms", []Exercise{
		{ID: "fri-1", Name: "Barbell Curl", Sets: "3", Reps: "10"},
		{ID: "fri-2", Name: "Hammer Curl", Sets: "3", Reps: "12"},
		{ID: "fri-3", Name: "Tricep Pushdown", Sets: "3", Reps: "12"},
		{ID: "fri-4", Name: "Skull Crushers", Sets: "3", Reps: "10"},
	}},
	{weekcal.Saturday, "Core", []Exercise{
		{ID: "sat-1", Name: "Plank", Sets: "3", Reps: "45 sec"},
		{ID: "sat-2", Name: "Crunches", Sets: "3", Reps: "20"},
		{ID: "sat-3", Name: "Russian Twist", Sets: "3", Reps: "20"},
		{ID: "sat-4", Name: "Leg Raise", Sets: "3", Reps: "15"},
	}},
	{weekcal.Sunday, "Mobility", []Exercise{
		{ID: "sun-1", Name: "Foam Rolling", Sets: "1", Reps: "10 min"},
		{ID: "sun-2", Name: "Hip Stretch", Sets: "2", Reps: "60 sec"},
		{ID: "sun-3", Name: "Hamstring Stretch", Sets: "2", Reps: "60 sec"},
		{ID: "sun-4", Name: "Shoulder Stretch", Sets: "2", Reps: "60 sec"},
	}},
}

// NewWorkoutWeek builds a fresh checklist from the default plan.
func NewWorkoutWeek(userID, weekID string) *WorkoutWeek {
	workouts := make([]DayWorkout, 0, len(DefaultPlan))
	for _, p := range DefaultPlan {
		workouts = append(workouts, DayWorkout{
			Day:       p.Day,
			Focus:     p.Focus,
			Exercises: append([]Exercise(nil), p.Exercises...),
		})
	}
	return &WorkoutWeek{
		UserID:    userID,
		WeekID:    weekID,
		Workouts:  workouts,
		Completed: []string{},
	}
}
