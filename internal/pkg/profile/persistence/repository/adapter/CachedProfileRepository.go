package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	cport "recovery-chat/internal/infrastructure/cache/port"
	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

// CachedProfileRepository is a read-through cache in front of another
// ProfileRepository. Only GetProfile is cached; writes go to the store and
// then evict the key. Cache failures degrade to store reads.
type CachedProfileRepository struct {
	repository.ProfileRepository
	cache  cport.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedProfileRepository(next repository.ProfileRepository, cache cport.Cache, ttl time.Duration, logger *zap.Logger) *CachedProfileRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProfileRepository{ProfileRepository: next, cache: cache, ttl: ttl, logger: logger}
}

var _ repository.ProfileRepository = (*CachedProfileRepository)(nil)

func profileKey(userID string) string {
	return "profile:" + userID
}

func (r *CachedProfileRepository) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	key := profileKey(userID)
	raw, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var p profile.Profile
		if jerr := json.Unmarshal([]byte(raw), &p); jerr == nil {
			return p, nil
		}
		r.logger.Warn("dropping undecodable cached profile", zap.String("key", key))
		_, _ = r.cache.Del(ctx, key)
	case !errors.Is(err, cport.ErrMiss):
		r.logger.Warn("profile cache read failed", zap.String("key", key), zap.Error(err))
	}

	p, err := r.ProfileRepository.GetProfile(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	if b, jerr := json.Marshal(p); jerr == nil {
		if serr := r.cache.Set(ctx, key, string(b), r.ttl); serr != nil {
			r.logger.Warn("profile cache write failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return p, nil
}

func (r *CachedProfileRepository) CreateProfile(ctx context.Context, p profile.Profile) error {
	if err := r.ProfileRepository.CreateProfile(ctx, p); err != nil {
		return err
	}
	r.evict(ctx, p.UserID)
	return nil
}

func (r *CachedProfileRepository) UpdateProfile(ctx context.Context, p profile.Profile) error {
	if err := r.ProfileRepository.UpdateProfile(ctx, p); err != nil {
		return err
	}
	r.evict(ctx, p.UserID)
	return nil
}

func (r *CachedProfileRepository) evict(ctx context.Context, userID string) {
	if _, err := r.cache.Del(ctx, profileKey(userID)); err != nil {
		r.logger.Warn("profile cache eviction failed", zap.String("user_id", userID), zap.Error(err))
	}
}
