package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/habits"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/tasks"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/timer"
	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/workout"
)

var log = logrus.New()

// statusForError maps domain errors to HTTP status codes; anything unmapped
// is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, habits.ErrUnknownMetric),
		errors.Is(err, habits.ErrLogNotFound),
		errors.Is(err, tasks.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, habits.ErrInvalidAmount),
		errors.Is(err, tasks.ErrInvalidPriority),
		errors.Is(err, tasks.ErrEmptyTitle),
		errors.Is(err, workout.ErrUnknownExercise),
		errors.Is(err, workout.ErrUnknownDay):
		return http.StatusBadRequest
	case errors.Is(err, timer.ErrTimerRunning):
		return http.StatusConflict
	case errors.Is(err, habits.ErrRemoteWrite),
		errors.Is(err, workout.ErrRemoteWrite):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
