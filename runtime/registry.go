package runtime

import (
	"notify-lab/contract"
	"notify-lab/domain"
	"sync"
)

// Registry is the only state shared between the consumer task and the
// per-connection session tasks. It maps a user to the ordered list of that
// user's live push channels.
//
// It holds non-owning references: sessions create and close their sinks,
// the registry only exposes them for fan-out.
type Registry struct {
	mu          sync.Mutex
	connections map[domain.UserID][]contract.PushSink
}

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[domain.UserID][]contract.PushSink),
	}
}

// Register adds a connection to the user's set, creating the entry on
// first connect. Registering the same sink twice is a no-op so the
// invariant "one entry per open connection" survives sloppy callers.
func (r *Registry) Register(userID domain.UserID, sink contract.PushSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.connections[userID] {
		if existing == sink {
			return
		}
	}
	r.connections[userID] = append(r.connections[userID], sink)
}

// Deregister removes a connection from the user's set. It is idempotent:
// both the error path and the deferred cleanup of a session may call it,
// and the broadcaster may race them after a failed push. Once the set is
// empty the mapping entry is removed entirely.
func (r *Registry) Deregister(userID domain.UserID, sink contract.PushSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sinks, ok := r.connections[userID]
	if !ok {
		return
	}
	for i, existing := range sinks {
		if existing == sink {
			r.connections[userID] = append(sinks[:i], sinks[i+1:]...)
			break
		}
	}
	if len(r.connections[userID]) == 0 {
		delete(r.connections, userID)
	}
}

// Snapshot returns a point-in-time copy of the user's connections, taken
// under the same lock as mutation. Callers iterate and push without
// holding the lock, so a slow connection never stalls registration for
// other users.
func (r *Registry) Snapshot(userID domain.UserID) []contract.PushSink {
	r.mu.Lock()
	defer r.mu.Unlock()

	sinks, ok := r.connections[userID]
	if !ok {
		return nil
	}
	snapshot := make([]contract.PushSink, len(sinks))
	copy(snapshot, sinks)
	return snapshot
}

// Connections reports the total number of live connections across all
// users, for the heartbeat log.
func (r *Registry) Connections() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, sinks := range r.connections {
		total += len(sinks)
	}
	return total
}
