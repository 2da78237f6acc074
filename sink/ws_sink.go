package sink

import (
	"notify-lab/domain"
	"notify-lab/errors"
	"sync"

	"github.com/google/uuid"
)

// WsSink decouples the broadcaster from the websocket writer. Push only
// hands the notification to a buffered channel; the owning session drains
// it onto the socket. The broadcaster therefore never suspends on network
// backpressure while iterating a registry snapshot.
type WsSink struct {
	id     uuid.UUID
	events chan domain.Notification
	closed chan struct{}
	once   sync.Once
}

func NewWsSink(bufferSize int) *WsSink {
	return &WsSink{
		id:     uuid.New(),
		events: make(chan domain.Notification, bufferSize),
		closed: make(chan struct{}),
	}
}

// ID distinguishes two connections of the same user in logs.
func (s *WsSink) ID() uuid.UUID { return s.id }

// Push is called by the broadcaster. A closed sink reports ErrSinkClosed;
// a full buffer reports ErrSinkBackpressure. Both count as a failed push
// so the registry prunes the connection instead of letting it stall
// delivery to healthy ones.
func (s *WsSink) Push(n domain.Notification) error {
	select {
	case <-s.closed:
		return errors.ErrSinkClosed
	default:
	}

	select {
	case s.events <- n:
		return nil
	case <-s.closed:
		return errors.ErrSinkClosed
	default:
		return errors.ErrSinkBackpressure
	}
}

// Events is drained by the session's writer loop.
func (s *WsSink) Events() <-chan domain.Notification { return s.events }

// Closed unblocks the writer loop when the session tears down.
func (s *WsSink) Closed() <-chan struct{} { return s.closed }

// Close is idempotent; only the owning session calls it.
func (s *WsSink) Close() {
	s.once.Do(func() { close(s.closed) })
}
