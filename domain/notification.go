package domain

import (
	"time"
)

// UserID is the stable numeric identifier resolved by the identity
// verification collaborator. The core never issues or stores credentials,
// it only consumes resolved ids.
type UserID int64

// Notification is the durable record produced for every consumed domain
// event. It is immutable after insert except for the Read flag, which
// transitions false -> true exactly once via an acknowledgement scoped to
// both the notification id and the owning user id.
//
// The JSON shape is the wire format pushed to connected clients and
// returned by the query API: the addressee is implicit (the connection or
// the token already identifies the user), so UserID is never serialized.
type Notification struct {
	ID        uint64    `json:"id"`
	UserID    UserID    `json:"-"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	TaskID    *int64    `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}
