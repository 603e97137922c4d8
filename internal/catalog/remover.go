package catalog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Confirmer asks the user to retype title and returns the answer
type Confirmer func(title string) (string, error)

// RemoveResult reports what RemoveByTitle did
type RemoveResult int

const (
	RemoveNotFound RemoveResult = iota
	RemoveCancelled
	RemoveDeleted
)

func (r RemoveResult) String() string {
	switch r {
	case RemoveNotFound:
		return "not_found"
	case RemoveCancelled:
		return "cancelled"
	case RemoveDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Remover deletes books after the user confirms the exact title
type Remover struct {
	catalog *Catalog
	confirm Confirmer
}

// NewRemover creates a remover for c
func NewRemover(c *Catalog, confirm Confirmer) *Remover {
	return &Remover{catalog: c, confirm: confirm}
}

// RemoveByTitle finds the first book whose title matches ignoring case.
// The confirmation must match the stored title exactly, case included.
func (r *Remover) RemoveByTitle(title string) (RemoveResult, error) {
	title = strings.TrimSpace(title)
	index := -1
	for i, b := range r.catalog.books {
		if strings.EqualFold(b.Title, title) {
			index = i
			break
		}
	}
	if index < 0 {
		slog.Info("No book found to remove", "title", title)
		return RemoveNotFound, nil
	}

	stored := r.catalog.books[index].Title
	answer, err := r.confirm(stored)
	if err != nil {
		return RemoveCancelled, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if strings.TrimSpace(answer) != stored {
		slog.Info("Title mismatch, deletion cancelled", "title", stored)
		return RemoveCancelled, nil
	}

	if _, err := r.catalog.Remove(index); err != nil {
		return RemoveCancelled, err
	}
	return RemoveDeleted, nil
}
