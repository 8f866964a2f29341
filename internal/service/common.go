package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"boardapi/internal/board"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListResult is the service-level DTO for paginated listings.
type ListResult[T any] struct {
	Items  []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func listResult[T any](res *repository.PageResult[T], pq repository.PageQuery) *ListResult[T] {
	return &ListResult[T]{Items: res.Items, Total: res.Total, Limit: pq.Limit, Offset: pq.Offset}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// cleanText trims s and checks its length in characters.
func cleanText(field, s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < min {
		if min == 1 {
			return "", invalid(field, "is required")
		}
		return "", invalid(field, "is too short")
	}
	if n > max {
		return "", invalid(field, "is too long")
	}
	return s, nil
}

// optional treats nil and "" alike as "no value".
func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func findProject(ctx context.Context, repos *repository.Store, clientID, id string) (*model.Project, error) {
	p, err := repos.Projects.FindByID(ctx, clientID, id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	return p, nil
}

// lockWritableProject takes the project row lock. Every board mutation goes
// through it first, so writers of one board never interleave.
func lockWritableProject(ctx context.Context, tx *repository.Store, clientID, id string) (*model.Project, error) {
	p, err := tx.Projects.LockByID(ctx, clientID, id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	if p.Archived() {
		return nil, ErrProjectArchived
	}
	return p, nil
}

func columnSlots(cols []model.Column) []board.Slot {
	out := make([]board.Slot, len(cols))
	for i, c := range cols {
		out[i] = board.Slot{ID: c.ID, Position: c.Position}
	}
	return out
}

func taskSlots(tasks []model.Task) []board.Slot {
	out := make([]board.Slot, len(tasks))
	for i, t := range tasks {
		out[i] = board.Slot{ID: t.ID, Position: t.Position}
	}
	return out
}

// without drops the slot for id, used when that row is written separately.
func without(slots []board.Slot, id string) []board.Slot {
	out := slots[:0:0]
	for _, s := range slots {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

func writeColumnOrder(ctx context.Context, tx *repository.Store, clientID string, stored []board.Slot, order []string, skip string) error {
	updates := without(board.Diff(stored, order), skip)
	if len(updates) == 0 {
		return nil
	}
	return tx.Columns.UpdatePositions(ctx, clientID, updates)
}

func writeTaskOrder(ctx context.Context, tx *repository.Store, clientID string, stored []board.Slot, order []string, skip string) error {
	updates := without(board.Diff(stored, order), skip)
	if len(updates) == 0 {
		return nil
	}
	return tx.Tasks.UpdatePositions(ctx, clientID, updates)
}

// wipFull reports whether a column with n live tasks cannot take more.
func wipFull(c *model.Column, n int) bool {
	return c.WIPLimit != nil && n >= *c.WIPLimit
}

// recalcMilestone recomputes progress from the live tasks currently assigned.
// A milestone that no longer exists is skipped.
func recalcMilestone(ctx context.Context, tx *repository.Store, clientID, id string, now time.Time) error {
	m, err := tx.Milestones.LockByID(ctx, clientID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	total, completed, err := tx.Tasks.MilestoneCounts(ctx, clientID, id)
	if err != nil {
		return err
	}

	m.TotalTasks = total
	m.CompletedTasks = completed
	m.Progress = board.Progress(total, completed)
	if board.Complete(total, completed) {
		if m.CompletedAt == nil {
			m.CompletedAt = &now
		}
	} else {
		m.CompletedAt = nil
	}
	m.UpdatedAt = now
	return tx.Milestones.UpdateProgress(ctx, m)
}

// recalcMilestones recalculates each distinct, non-nil milestone once.
func recalcMilestones(ctx context.Context, tx *repository.Store, clientID string, now time.Time, ids ...*string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		if err := recalcMilestone(ctx, tx, clientID, *id, now); err != nil {
			return err
		}
	}
	return nil
}
