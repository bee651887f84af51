package store

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/engine"
	"go.etcd.io/bbolt"
)

const (
	suspendBucket  = "suspend"
	undoBucket     = "undo"
	rollbackBucket = "rollback"
)

var currentKey = []byte("current")

// Snapshots keeps the three save slots of a running game in one bbolt file: the suspend
// slot written after every command, the undo slot written before each card play, and one
// rollback slot per turn start.
type Snapshots struct {
	db *bbolt.DB
}

func OpenSnapshots(path string) (*Snapshots, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("snapshot path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, errors.Wrap(err, "create snapshot dir")
	}
	db, err := bbolt.Open(clean, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot db")
	}
	s := &Snapshots{db: db}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range []string{suspendBucket, undoBucket, rollbackBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(b)); err != nil {
				return errors.Wrapf(err, "create %s bucket", b)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Snapshots) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func turnKey(turn int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(turn))
	return k
}

func (s *Snapshots) put(ctx context.Context, bucket string, key []byte, w *engine.World) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := w.Snapshot()
	if err != nil {
		return errors.Wrap(err, "encode world")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put(key, payload)
	})
}

func (s *Snapshots) get(ctx context.Context, bucket string, key []byte, opts []engine.Option) (*engine.World, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(bucket)).Get(key); v != nil {
			payload = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrNotFound
	}
	return engine.RestoreWorld(payload, opts...)
}

func (s *Snapshots) clear(bucket string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucket))
		return err
	})
}

// Suspend saves the game so it can be resumed after quitting.
func (s *Snapshots) Suspend(ctx context.Context, w *engine.World) error {
	return errors.Wrap(s.put(ctx, suspendBucket, currentKey, w), "suspend")
}

// Resume loads the suspended game. Resuming invalidates undo.
func (s *Snapshots) Resume(ctx context.Context, opts ...engine.Option) (*engine.World, error) {
	w, err := s.get(ctx, suspendBucket, currentKey, opts)
	if err != nil {
		return nil, err
	}
	return w, s.ClearUndo()
}

// MarkUndo saves the state a card play starts from.
func (s *Snapshots) MarkUndo(ctx context.Context, w *engine.World) error {
	return errors.Wrap(s.put(ctx, undoBucket, currentKey, w), "save undo")
}

// Undo returns the state before the last card play and consumes it.
func (s *Snapshots) Undo(ctx context.Context, opts ...engine.Option) (*engine.World, error) {
	w, err := s.get(ctx, undoBucket, currentKey, opts)
	if err != nil {
		return nil, err
	}
	return w, s.ClearUndo()
}

func (s *Snapshots) ClearUndo() error { return errors.Wrap(s.clear(undoBucket), "clear undo") }

// MarkTurn saves the state at the start of w.Turn.
func (s *Snapshots) MarkTurn(ctx context.Context, w *engine.World) error {
	return errors.Wrapf(s.put(ctx, rollbackBucket, turnKey(w.Turn), w), "save turn %d", w.Turn)
}

// Rollback returns the state at the start of turn and drops later turns and undo.
func (s *Snapshots) Rollback(ctx context.Context, turn int, opts ...engine.Option) (*engine.World, error) {
	w, err := s.get(ctx, rollbackBucket, turnKey(turn), opts)
	if err != nil {
		return nil, err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(rollbackBucket))
		var later [][]byte
		c := b.Cursor()
		for k, _ := c.Seek(turnKey(turn + 1)); k != nil; k, _ = c.Next() {
			later = append(later, append([]byte(nil), k...))
		}
		for _, k := range later {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "drop later turns")
	}
	return w, s.ClearUndo()
}

// Turns lists the turns a rollback can return to.
func (s *Snapshots) Turns() ([]int, error) {
	var out []int
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(rollbackBucket)).ForEach(func(k, _ []byte) error {
			out = append(out, int(binary.BigEndian.Uint64(k)))
			return nil
		})
	})
	return out, err
}

// Reset drops every slot; a new game starts clean.
func (s *Snapshots) Reset() error {
	for _, b := range []string{suspendBucket, undoBucket, rollbackBucket} {
		if err := s.clear(b); err != nil {
			return errors.Wrapf(err, "clear %s", b)
		}
	}
	return nil
}
