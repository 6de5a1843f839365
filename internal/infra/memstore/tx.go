package memstore

import (
	"context"

	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/pkg/errs"
	"visit-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type memTx struct {
	store    *Store
	readOnly bool

	// undo entries run in reverse under store.mu; each only restores a value
	// this transaction wrote and nobody has overwritten since
	undo []func()
	held map[uuid.UUID]func()
}

func (t *memTx) LockProperty(ctx context.Context, propertyID uuid.UUID) error {
	if _, ok := t.held[propertyID]; ok {
		return nil
	}
	release, err := t.store.locks.Lock(ctx, propertyID.String())
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "failed to lock property %s", propertyID), errs.ErrStorage)
	}
	if t.held == nil {
		t.held = make(map[uuid.UUID]func())
	}
	t.held[propertyID] = release
	return nil
}

func (t *memTx) Properties() shared.PropertyReader  { return &propertyRepo{tx: t} }
func (t *memTx) Patterns() shared.PatternRepository { return &patternRepo{tx: t} }
func (t *memTx) Slots() shared.SlotRepository       { return &slotRepo{tx: t} }
func (t *memTx) Bookings() shared.BookingRepository { return &bookingRepo{tx: t} }

// writable must be called with store.mu held.
func (t *memTx) writable() error {
	if t.readOnly {
		return infra.WrapRepoErr("cannot write in a read-only transaction", nil)
	}
	return nil
}

// onRollback must be called with store.mu held.
func (t *memTx) onRollback(fn func()) {
	t.undo = append(t.undo, fn)
}

func (t *memTx) rollback() {
	if len(t.undo) == 0 {
		return
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memTx) releaseLocks() {
	for id, release := range t.held {
		release()
		delete(t.held, id)
	}
}
