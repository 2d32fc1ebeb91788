package dto

// AddLogRequest records an activity against today for one metric.
type AddLogRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// AddWaterRequest records a drink. The name is optional; when empty it is
// derived from the amount.
type AddWaterRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ToggleExerciseRequest flips one exercise's completed state; the day names
// which catalog the exercise id belongs to.
type ToggleExerciseRequest struct {
	Day        string `json:"day" binding:"required,weekday"`
	ExerciseID string `json:"exerciseId" binding:"required"`
}

// TimerDurationRequest replaces the session length.
type TimerDurationRequest struct {
	Minutes int `json:"minutes" binding:"min=0,max=180"`
}

// TimerAdjustRequest shifts the session length by signed minutes and
// seconds; the deltas are normalized before clamping.
type TimerAdjustRequest struct {
	DeltaMinutes int `json:"deltaMinutes"`
	DeltaSeconds int `json:"deltaSeconds"`
}

// TimerSnoozeRequest re-arms a ringing timer; zero minutes uses the break
// length.
type TimerSnoozeRequest struct {
	Minutes int `json:"minutes" binding:"min=0,max=180"`
}

// LinkTaskRequest associates the running session with a task; an empty id
// unlinks.
type LinkTaskRequest struct {
	TaskID string `json:"taskId"`
}

// CreateTaskRequest adds a to-do item.
type CreateTaskRequest struct {
	Title    string `json:"title" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,priority"`
	DueDate  string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateTaskRequest changes a task's title, priority or due date; empty
// fields are left untouched.
type UpdateTaskRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority" binding:"omitempty,priority"`
	DueDate  string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
}

// ReorderTasksRequest rewrites the manual sort order. The list must name
// every task of the caller exactly once.
type ReorderTasksRequest struct {
	TaskIDs []string `json:"taskIds" binding:"required,min=1,dive,required"`
}
