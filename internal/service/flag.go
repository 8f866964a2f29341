package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"boardapi/internal/auth"
	"boardapi/internal/flags"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type FlagInput struct {
	Description    string
	Enabled        bool
	ClientIDs      []string
	RolloutPercent int
}

// FlagService evaluates feature flags for tenants and lets platform admins edit them.
type FlagService interface {
	// Evaluate returns every flag's value for the caller's client, cached per client.
	Evaluate(ctx context.Context, p auth.Principal) (map[string]bool, error)
	List(ctx context.Context) ([]model.FeatureFlag, error)
	Upsert(ctx context.Context, key string, in FlagInput) (*model.FeatureFlag, error)
	Delete(ctx context.Context, key string) error
}

type flagService struct {
	repos *repository.Store
	cache flags.Cache
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewFlagService(repos *repository.Store, cache flags.Cache, log logrus.FieldLogger) FlagService {
	return &flagService{repos: repos, cache: cache, log: log, now: utcNow}
}

func (s *flagService) logger(event string) logrus.FieldLogger {
	return s.log.WithFields(logrus.Fields{"component": "flags", "event": event})
}

func (s *flagService) Evaluate(ctx context.Context, p auth.Principal) (map[string]bool, error) {
	values, ok, err := s.cache.Get(ctx, p.ClientID)
	if err != nil {
		s.logger("flag_cache_read_failed").WithError(err).Warn("flag cache unavailable")
	}
	if ok {
		return values, nil
	}

	all, err := s.repos.Flags.List(ctx)
	if err != nil {
		return nil, err
	}
	values = flags.EvaluateAll(all, p.ClientID)
	if err := s.cache.Set(ctx, p.ClientID, values); err != nil {
		s.logger("flag_cache_write_failed").WithError(err).Warn("flag cache unavailable")
	}
	return values, nil
}

func (s *flagService) List(ctx context.Context) ([]model.FeatureFlag, error) {
	return s.repos.Flags.List(ctx)
}

func (s *flagService) Upsert(ctx context.Context, key string, in FlagInput) (*model.FeatureFlag, error) {
	if !flags.ValidKey(key) {
		return nil, invalid("key", "must match ^[a-z0-9][a-z0-9_.-]{1,63}$")
	}
	if in.RolloutPercent < 0 || in.RolloutPercent > 100 {
		return nil, invalid("rollout_percent", "must be between 0 and 100")
	}
	desc, err := cleanText("description", in.Description, 0, 1000)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(in.ClientIDs))
	seen := make(map[string]bool, len(in.ClientIDs))
	for _, id := range in.ClientIDs {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	f := &model.FeatureFlag{
		Key:            key,
		Description:    desc,
		Enabled:        in.Enabled,
		ClientIDs:      ids,
		RolloutPercent: in.RolloutPercent,
		UpdatedAt:      s.now(),
	}
	if err := s.repos.Flags.Upsert(ctx, f); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return f, nil
}

func (s *flagService) Delete(ctx context.Context, key string) error {
	if err := s.repos.Flags.Delete(ctx, key); err != nil {
		return notFound(err, "feature flag")
	}
	s.invalidate(ctx)
	return nil
}

func (s *flagService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger("flag_cache_invalidate_failed").WithError(err).Warn("stale flag evaluations may be served until they expire")
	}
}
