//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"log/slog"
	"notify-lab/domain"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type INotificationRepository interface {
	Insert(n domain.Notification) (domain.Notification, error)
	ListByUser(userID domain.UserID, limit int) ([]domain.Notification, error)
	ListUnread(userID domain.UserID, limit int) ([]domain.Notification, error)
	UnreadCount(userID domain.UserID) (int, error)
	MarkAsRead(id uint64, userID domain.UserID) (bool, error)
}

// NotificationRepository persists notifications in BadgerDB.
//
// Two keys are written per record:
//  1. "ntf:{user_id}:{created_at_padded}:{id_padded}" holds the record.
//     The 19-digit zero padding makes lexicographical order equal to
//     chronological order, so a reverse prefix scan yields newest-first
//     without any index maintenance.
//  2. "nid:{id_padded}" points at the primary key, so an acknowledgement
//     addressed by notification id finds the row in two reads.
type NotificationRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger

	// created_at must be monotonically non-decreasing per row so key order
	// and id order never disagree.
	mu          sync.Mutex
	lastCreated time.Time
}

func NewNotificationRepository(db *badger.DB, log *slog.Logger) (*NotificationRepository, error) {
	seq, err := db.GetSequence([]byte("seq:notification-id"), 64)
	if err != nil {
		return nil, fmt.Errorf("notification id sequence: %w", err)
	}
	return &NotificationRepository{db: db, seq: seq, log: log}, nil
}

// Close releases the id sequence lease. Unused ids in the current lease
// are lost, leaving gaps; uniqueness and monotonicity are what matters.
func (r *NotificationRepository) Close() error {
	return r.seq.Release()
}

// storedNotification is the on-disk shape. Unlike the wire shape it keeps
// the owner, which ownership checks and fan-out need back.
type storedNotification struct {
	ID        uint64    `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	TaskID    *int64    `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// Insert assigns the id and created_at and writes the record with its id
// pointer in a single transaction. The returned record is what clients
// see pushed and replayed.
func (r *NotificationRepository) Insert(n domain.Notification) (domain.Notification, error) {
	next, err := r.seq.Next()
	if err != nil {
		return domain.Notification{}, fmt.Errorf("next notification id: %w", err)
	}
	n.ID = next + 1
	n.Read = false

	r.mu.Lock()
	now := time.Now().UTC()
	if now.Before(r.lastCreated) {
		now = r.lastCreated
	}
	r.lastCreated = now
	r.mu.Unlock()
	n.CreatedAt = now

	bytes, err := json.Marshal(fromNotification(n))
	if err != nil {
		return domain.Notification{}, err
	}

	key := primaryKey(n.UserID, n.CreatedAt, n.ID)
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		return txn.Set(idKey(n.ID), key)
	})
	if err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

// ListByUser returns the user's notifications, newest first, bounded by
// limit. No side effects.
func (r *NotificationRepository) ListByUser(userID domain.UserID, limit int) ([]domain.Notification, error) {
	return r.scan(userID, limit, func(storedNotification) bool { return true })
}

// ListUnread returns the user's unread notifications, newest first,
// bounded by limit. Used for the replay on connect.
func (r *NotificationRepository) ListUnread(userID domain.UserID, limit int) ([]domain.Notification, error) {
	return r.scan(userID, limit, func(s storedNotification) bool { return !s.Read })
}

// UnreadCount counts the user's rows with read = false.
func (r *NotificationRepository) UnreadCount(userID domain.UserID) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := userPrefix(userID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var stored storedNotification
				if err := json.Unmarshal(value, &stored); err != nil {
					return err
				}
				if !stored.Read {
					count++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkAsRead flips the read flag to true, only if the row belongs to the
// caller. Zero rows matched (missing id, foreign owner, already read rows
// included via matched=true) is not an error: acknowledgements are
// idempotent.
func (r *NotificationRepository) MarkAsRead(id uint64, userID domain.UserID) (bool, error) {
	matched := false
	err := r.db.Update(func(txn *badger.Txn) error {
		pointer, err := txn.Get(idKey(id))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		key, err := pointer.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		var stored storedNotification
		err = item.Value(func(value []byte) error {
			return json.Unmarshal(value, &stored)
		})
		if err != nil {
			return err
		}

		if stored.UserID != int64(userID) {
			// Cross-user acknowledgement: silently affects zero rows.
			return nil
		}
		matched = true
		if stored.Read {
			return nil
		}
		stored.Read = true
		bytes, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		return txn.Set(key, bytes)
	})
	if err != nil {
		return false, err
	}
	if !matched {
		r.log.Debug("Acknowledgement matched no row", "notification_id", id, "user_id", userID)
	}
	return matched, nil
}

// scan walks the user's prefix in reverse so results come back newest
// first, collecting records that pass keep until limit is reached.
func (r *NotificationRepository) scan(userID domain.UserID, limit int,
	keep func(storedNotification) bool) ([]domain.Notification, error) {
	var records []storedNotification
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := userPrefix(userID)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key of this user, then walk back.
		seekKey := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) == limit {
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var stored storedNotification
				if err := json.Unmarshal(value, &stored); err != nil {
					return err
				}
				if keep(stored) {
					records = append(records, stored)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(records, func(item storedNotification, _ int) domain.Notification {
		return toNotification(item)
	}), nil
}

func primaryKey(userID domain.UserID, createdAt time.Time, id uint64) []byte {
	return []byte(fmt.Sprintf("ntf:%d:%019d:%019d", userID, createdAt.UnixNano(), id))
}

func idKey(id uint64) []byte {
	return []byte(fmt.Sprintf("nid:%019d", id))
}

func userPrefix(userID domain.UserID) []byte {
	return []byte(fmt.Sprintf("ntf:%d:", userID))
}

func fromNotification(n domain.Notification) storedNotification {
	return storedNotification{
		ID:        n.ID,
		UserID:    int64(n.UserID),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		TaskID:    n.TaskID,
		CreatedAt: n.CreatedAt,
		Read:      n.Read,
	}
}

func toNotification(s storedNotification) domain.Notification {
	return domain.Notification{
		ID:        s.ID,
		UserID:    domain.UserID(s.UserID),
		Type:      s.Type,
		Title:     s.Title,
		Message:   s.Message,
		TaskID:    s.TaskID,
		CreatedAt: s.CreatedAt,
		Read:      s.Read,
	}
}
