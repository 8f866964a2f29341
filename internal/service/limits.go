package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

// Limits are the effective plan limits of a client. Usable is false when the
// client has no active, unexpired license; such a client may not grow at all.
// Non-positive maximums are unlimited.
type Limits struct {
	Usable      bool `json:"usable"`
	MaxProjects int  `json:"max_projects"`
	MaxSeats    int  `json:"max_seats"`
}

func (l Limits) AllowsProjects(current int) bool {
	return l.Usable && (l.MaxProjects <= 0 || current < l.MaxProjects)
}

func (l Limits) AllowsSeats(current int) bool {
	return l.Usable && (l.MaxSeats <= 0 || current < l.MaxSeats)
}

func effectiveLimits(lic *model.License, plan *model.Plan, now time.Time) Limits {
	if lic == nil || plan == nil || !lic.Usable(now) {
		return Limits{}
	}
	seats := plan.MaxSeats
	if lic.Seats > 0 {
		seats = lic.Seats
	}
	return Limits{Usable: true, MaxProjects: plan.MaxProjects, MaxSeats: seats}
}

// loadLimits reads the client's license and plan.
func loadLimits(ctx context.Context, repos *repository.Store, clientID string, now time.Time) (Limits, *model.License, *model.Plan, error) {
	lic, err := repos.Licenses.FindByClient(ctx, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return Limits{}, nil, nil, nil
	}
	if err != nil {
		return Limits{}, nil, nil, err
	}
	plan, err := repos.Plans.FindByID(ctx, lic.PlanID)
	if err != nil {
		return Limits{}, lic, nil, notFound(err, "plan")
	}
	return effectiveLimits(lic, plan, now), lic, plan, nil
}

// lockClientLimits serializes quota checks for a client by locking its row.
func lockClientLimits(ctx context.Context, tx *repository.Store, clientID string, now time.Time) (Limits, error) {
	if _, err := tx.Clients.LockByID(ctx, clientID); err != nil {
		return Limits{}, notFound(err, "client")
	}
	limits, _, _, err := loadLimits(ctx, tx, clientID, now)
	return limits, err
}
