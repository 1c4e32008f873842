package listing

import (
	"context"
	"fmt"
)

// Editor holds the state of a create or edit dialog.
type Editor[T Entity[T]] struct {
	draft    T
	open     bool
	creating bool
	err      error
}

// Create opens the dialog on a defaulted draft.
func (e *Editor[T]) Create(draft T) {
	e.draft = draft
	e.open = true
	e.creating = true
	e.err = nil
}

// Edit opens the dialog on a deep copy of row, so edits never leak into the
// table until saved.
func (e *Editor[T]) Edit(row T) {
	e.draft = row.Clone()
	e.open = true
	e.creating = false
	e.err = nil
}

func (e *Editor[T]) IsOpen() bool   { return e.open }
func (e *Editor[T]) Creating() bool { return e.creating }
func (e *Editor[T]) Err() error     { return e.err }

// Draft returns the draft for in-place edits.
func (e *Editor[T]) Draft() *T { return &e.draft }

// Prepare validates the draft and returns a copy to save. A validation error
// is kept on the editor and no copy should be sent.
func (e *Editor[T]) Prepare() (T, error) {
	if err := e.draft.Validate(); err != nil {
		e.err = err
		var zero T
		return zero, err
	}
	e.err = nil
	return e.draft.Clone(), nil
}

// Finish records the save result. Success closes the dialog.
func (e *Editor[T]) Finish(err error) bool {
	if err != nil {
		e.err = err
		return false
	}
	e.Close()
	return true
}

// Close discards the draft.
func (e *Editor[T]) Close() {
	var zero T
	e.draft = zero
	e.open = false
	e.creating = false
	e.err = nil
}

// Save creates item when it has no id and updates it otherwise.
func Save[T Entity[T], D any](ctx context.Context, svc Service[T, D], item T) (T, error) {
	if item.Key() == "" {
		saved, err := svc.Create(ctx, item)
		if err != nil {
			return saved, fmt.Errorf("create %q: %w", item.Label(), err)
		}
		return saved, nil
	}
	saved, err := svc.Update(ctx, item)
	if err != nil {
		return saved, fmt.Errorf("update %q: %w", item.Label(), err)
	}
	return saved, nil
}

// Remove deletes row.
func Remove[T Entity[T], D any](ctx context.Context, svc Service[T, D], row T) error {
	if err := svc.Delete(ctx, row.Key()); err != nil {
		return fmt.Errorf("delete %q: %w", row.Label(), err)
	}
	return nil
}

// DeletePrompt is the confirmation question for deleting row.
func DeletePrompt(row Row) string {
	label := row.Label()
	if label == "" {
		label = "this item"
	}
	return fmt.Sprintf("Delete %s?", label)
}
