package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/luewire/DailyFlow-HabitTracker/internal/domain/tasks"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/weekcal"
)

// RegisterCustomValidators installs the request tag validators on gin's
// binding engine. Call once during startup.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return tasks.ValidPriority(fl.Field().String())
	})

	v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return weekcal.DayIndex(weekcal.Day(fl.Field().String())) >= 0
	})
}
