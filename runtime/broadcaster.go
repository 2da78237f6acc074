package runtime

import (
	goerrors "errors"
	"log/slog"
	"notify-lab/contract"
	"notify-lab/domain"
	"notify-lab/errors"
)

// Broadcaster fans a persisted notification out to every live connection
// of its addressee. A failed push prunes exactly that connection from the
// registry; this is the sole path by which a registry entry disappears
// without a client-initiated close.
type Broadcaster struct {
	log      *slog.Logger
	registry contract.IRegistry
}

func NewBroadcaster(log *slog.Logger, registry contract.IRegistry) *Broadcaster {
	return &Broadcaster{log: log, registry: registry}
}

// Broadcast pushes the payload to each connection in a snapshot of the
// addressee's set. No connections is a normal outcome: offline delivery is
// satisfied later by the query API. Failures are independent per
// connection and never abort delivery to the rest.
func (b *Broadcaster) Broadcast(n domain.Notification) {
	sinks := b.registry.Snapshot(n.UserID)
	if len(sinks) == 0 {
		return
	}

	for _, sink := range sinks {
		err := sink.Push(n)
		if err == nil {
			continue
		}
		if goerrors.Is(err, errors.ErrSinkClosed) {
			b.log.Debug("Pruning closed connection",
				"user_id", n.UserID, "notification_id", n.ID)
		} else {
			// Unexpected push failures still trigger cleanup, but they
			// must stay observable instead of being swallowed.
			b.log.Error("Push failed, pruning connection",
				"user_id", n.UserID, "notification_id", n.ID, "error", err)
		}
		b.registry.Deregister(n.UserID, sink)
	}
}
