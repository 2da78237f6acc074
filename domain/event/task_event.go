package event

import (
	"notify-lab/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TaskEvent is the upstream payload published on the task-notifications
// subject by the task/team/user services. user_id, type, title and message
// are mandatory; task_id is an opaque optional reference.
//
// UserID is a pointer so that an absent field is distinguishable from a
// zero value during validation.
type TaskEvent struct {
	UserID  *int64 `json:"user_id" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	TaskID  *int64 `json:"task_id"`
}

func (e TaskEvent) Validate() error {
	return validate.Struct(e)
}

// Notification builds the record to persist. The store assigns id,
// created_at and the initial read flag on insert.
func (e TaskEvent) Notification() domain.Notification {
	return domain.Notification{
		UserID:  domain.UserID(*e.UserID),
		Type:    e.Type,
		Title:   e.Title,
		Message: e.Message,
		TaskID:  e.TaskID,
	}
}
