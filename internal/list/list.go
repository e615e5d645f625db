// Package list keeps one session's snapshot of a remote collection. The
// snapshot changes only after the remote service confirms a mutation.
package list

import (
	"context"
	"errors"
	"sync"

	applog "crudadmin/internal/log"
)

// ErrIncomplete is returned by Submit when required fields are blank.
var ErrIncomplete = errors.New("required fields missing")

// ErrNoRecord is returned when an id is not in the local snapshot.
var ErrNoRecord = errors.New("record not in list")

type Keyed interface{ Key() int }

// Resource is the slice of the API client a List needs.
type Resource[R Keyed, C, U any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, payload C) (R, error)
	Update(ctx context.Context, id int, payload U) (R, error)
	Delete(ctx context.Context, id int) error
}

// Messages shown in the error banner, one per operation.
type Messages struct {
	Load   string
	Save   string
	Delete string
}

func messagesFor(noun, plural string) Messages {
	return Messages{
		Load:   "Failed to load " + plural,
		Save:   "Failed to save " + noun,
		Delete: "Failed to delete " + noun,
	}
}

type List[R Keyed, C, U any] struct {
	res     Resource[R, C, U]
	noun    string
	msgs    Messages
	mounted sync.Once
	ready   chan struct{}

	mu      sync.Mutex
	records []R
	loading bool
	loadErr bool
	errMsg  string
}

func New[R Keyed, C, U any](res Resource[R, C, U], noun, plural string) *List[R, C, U] {
	return &List[R, C, U]{res: res, noun: noun, msgs: messagesFor(noun, plural), ready: make(chan struct{})}
}

// Mount issues the initial fetch in the background. Later calls are no-ops.
// The fetch cannot be cancelled once issued.
func (l *List[R, C, U]) Mount() <-chan struct{} {
	l.mounted.Do(func() {
		l.mu.Lock()
		l.loading = true
		l.mu.Unlock()
		go l.load(context.Background())
	})
	return l.ready
}

func (l *List[R, C, U]) load(ctx context.Context) {
	defer close(l.ready)
	recs, err := l.res.List(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.loadErr = true
		l.errMsg = l.msgs.Load
		applog.Error(nil, l.noun+".list.fail", err, nil)
		return
	}
	l.records = recs
	l.loadErr = false
	l.errMsg = ""
}

// Ready closes once the initial fetch has settled.
func (l *List[R, C, U]) Ready() <-chan struct{} { return l.ready }

func (l *List[R, C, U]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// LoadFailed reports whether the initial fetch failed; no table is shown then.
func (l *List[R, C, U]) LoadFailed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadErr
}

// Err is the current banner message, empty when none.
func (l *List[R, C, U]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

func (l *List[R, C, U]) Messages() Messages { return l.msgs }

// Records returns a copy of the snapshot in display order.
func (l *List[R, C, U]) Records() []R {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]R(nil), l.records...)
}

func (l *List[R, C, U]) Find(id int) (R, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.Key() == id {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// Delete removes id from the snapshot once the service confirms. A declined
// confirmation does nothing.
func (l *List[R, C, U]) Delete(ctx context.Context, id int, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if err := l.res.Delete(ctx, id); err != nil {
		l.fail(l.msgs.Delete, "delete", id, err)
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.records[:0:0]
	for _, r := range l.records {
		if r.Key() != id {
			kept = append(kept, r)
		}
	}
	l.records = kept
	return nil
}

// create appends the record returned by the service.
func (l *List[R, C, U]) create(ctx context.Context, payload C) error {
	rec, err := l.res.Create(ctx, payload)
	if err != nil {
		l.fail(l.msgs.Save, "create", 0, err)
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return nil
}

// update replaces the record with matching id, keeping its position.
func (l *List[R, C, U]) update(ctx context.Context, id int, payload U) error {
	rec, err := l.res.Update(ctx, id, payload)
	if err != nil {
		l.fail(l.msgs.Save, "update", id, err)
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]R, len(l.records))
	for i, r := range l.records {
		if r.Key() == id {
			next[i] = rec
		} else {
			next[i] = r
		}
	}
	l.records = next
	return nil
}

func (l *List[R, C, U]) fail(msg, op string, id int, err error) {
	fields := map[string]any{}
	if id != 0 {
		fields["id"] = id
	}
	applog.Error(nil, l.noun+"."+op+".fail", err, fields)
	l.mu.Lock()
	l.errMsg = msg
	l.mu.Unlock()
}
