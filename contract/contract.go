//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"notify-lab/domain"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// PushSink is one live push channel, owned by the session that created it.
// The registry and the broadcaster only hold non-owning references: Push
// must never block, and Close is the owner's business.
type PushSink interface {
	Push(n domain.Notification) error
	Close()
}

type IRegistry interface {
	Register(userID domain.UserID, sink PushSink)
	Deregister(userID domain.UserID, sink PushSink)
	Snapshot(userID domain.UserID) []PushSink
	Connections() int
}

type IBroadcaster interface {
	Broadcast(n domain.Notification)
}

// TokenVerifier resolves an opaque bearer credential to a user id or
// rejects it. Issuing tokens is the identity service's job, not ours.
type TokenVerifier interface {
	Verify(token string) (domain.UserID, error)
}
