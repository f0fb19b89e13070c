package repository

import (
	"context"
	"errors"

	"earshot/internal/cache"
	"earshot/internal/models"

	"gorm.io/gorm"
)

// EpisodeRepository defines persistence operations for episodes and the
// per-episode like set. Liking an episode also records it in the user's
// favorite-episodes set; both writes happen in one transaction.
type EpisodeRepository interface {
	Create(ctx context.Context, episode *models.Episode) error
	GetByID(ctx context.Context, id uint) (*models.Episode, error)
	GetBySlug(ctx context.Context, slug string) (*models.Episode, error)
	List(ctx context.Context, limit, offset int) ([]models.Episode, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, episode *models.Episode) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, episodeID uint) error
	Unlike(ctx context.Context, userID, episodeID uint) error
	IsLiked(ctx context.Context, userID, episodeID uint) (bool, error)
	CountLikes(ctx context.Context, episodeID uint) (int64, error)
}

type episodeRepository struct {
	db *gorm.DB
}

// NewEpisodeRepository returns a new EpisodeRepository implementation.
func NewEpisodeRepository(db *gorm.DB) EpisodeRepository {
	return &episodeRepository{db: db}
}

// applyEpisodeDetails attaches the computed likes_count column and preloads
// the books mentioned in the episode.
func applyEpisodeDetails(db *gorm.DB) *gorm.DB {
	return db.
		Select("episodes.*, (SELECT COUNT(*) FROM likes WHERE likes.episode_id = episodes.id) AS likes_count").
		Preload("MentionedBooks")
}

func (r *episodeRepository) Create(ctx context.Context, episode *models.Episode) error {
	if err := r.db.WithContext(ctx).Create(episode).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("An episode with this title already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *episodeRepository) GetByID(ctx context.Context, id uint) (*models.Episode, error) {
	var episode models.Episode
	key := cache.EpisodeKey(id)

	err := cache.Aside(ctx, key, &episode, cache.EpisodeTTL, func() error {
		err := applyEpisodeDetails(r.db.WithContext(ctx)).First(&episode, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Episode", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &episode, nil
}

func (r *episodeRepository) GetBySlug(ctx context.Context, slug string) (*models.Episode, error) {
	var episode models.Episode
	key := cache.EpisodeSlugKey(slug)

	err := cache.Aside(ctx, key, &episode, cache.EpisodeTTL, func() error {
		err := applyEpisodeDetails(r.db.WithContext(ctx)).
			Where("episodes.slug = ?", slug).
			First(&episode).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundMessage("Episode not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &episode, nil
}

func (r *episodeRepository) List(ctx context.Context, limit, offset int) ([]models.Episode, error) {
	var episodes []models.Episode
	err := r.db.WithContext(ctx).
		Select("episodes.*, (SELECT COUNT(*) FROM likes WHERE likes.episode_id = episodes.id) AS likes_count").
		Order("publish_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&episodes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return episodes, nil
}

func (r *episodeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Episode{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *episodeRepository) Update(ctx context.Context, episode *models.Episode) error {
	// A title change renames the slug, so the entry cached under the old
	// slug has to go too or it keeps serving the pre-update episode.
	prevSlug := r.currentSlug(ctx, episode.ID)

	if err := r.db.WithContext(ctx).Save(episode).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("An episode with this title already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateEpisode(ctx, episode.ID, episode.Slug)
	if prevSlug != "" && prevSlug != episode.Slug {
		cache.Invalidate(ctx, cache.EpisodeSlugKey(prevSlug))
	}
	return nil
}

// currentSlug looks up the stored slug for cache invalidation. It returns ""
// when caching is disabled or the row cannot be read; invalidation is
// best-effort.
func (r *episodeRepository) currentSlug(ctx context.Context, episodeID uint) string {
	if cache.GetClient() == nil {
		return ""
	}
	var slugs []string
	err := r.db.WithContext(ctx).Model(&models.Episode{}).
		Where("id = ?", episodeID).
		Pluck("slug", &slugs).Error
	if err != nil || len(slugs) == 0 {
		return ""
	}
	return slugs[0]
}

func (r *episodeRepository) Delete(ctx context.Context, id uint) error {
	var episode models.Episode
	if err := r.db.WithContext(ctx).First(&episode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Episode", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&episode).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEpisode(ctx, episode.ID, episode.Slug)
	return nil
}

// Like records a like and adds the episode to the user's favorites. The raw
// inserts rely on ON CONFLICT DO NOTHING so repeated likes stay idempotent
// without a prior existence check.
func (r *episodeRepository) Like(ctx context.Context, userID, episodeID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`INSERT INTO likes (user_id, episode_id, created_at)
			 VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (user_id, episode_id) DO NOTHING`,
			userID, episodeID,
		).Error; err != nil {
			return err
		}
		return tx.Exec(
			`INSERT INTO user_favorite_episodes (user_id, episode_id)
			 VALUES (?, ?)
			 ON CONFLICT DO NOTHING`,
			userID, episodeID,
		).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	// Likes change the likes_count baked into cached detail entries, so both
	// the ID and slug keys must go.
	cache.InvalidateEpisode(ctx, episodeID, r.currentSlug(ctx, episodeID))
	cache.InvalidateUser(ctx, userID)
	return nil
}

// Unlike removes the like and clears the episode from the user's favorites,
// whether or not a like row existed.
func (r *episodeRepository) Unlike(ctx context.Context, userID, episodeID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM likes WHERE user_id = ? AND episode_id = ?`,
			userID, episodeID,
		).Error; err != nil {
			return err
		}
		return tx.Exec(
			`DELETE FROM user_favorite_episodes WHERE user_id = ? AND episode_id = ?`,
			userID, episodeID,
		).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEpisode(ctx, episodeID, r.currentSlug(ctx, episodeID))
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *episodeRepository) IsLiked(ctx context.Context, userID, episodeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND episode_id = ?", userID, episodeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *episodeRepository) CountLikes(ctx context.Context, episodeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("episode_id = ?", episodeID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
