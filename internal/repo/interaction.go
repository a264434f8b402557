package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thinklet/thinklet/internal/models"
)

type Reaction int

const (
	ReactionLike Reaction = iota
	ReactionDislike
)

// ToggleReaction flips the given flag on the (user, article) row,
// creating the row lazily on first use. Activating one flag always
// clears the other. The toggle and the recount run inside a single
// transaction so the returned counts include this caller's own write.
func (r *GormRepo) ToggleReaction(ctx context.Context, userID, articleID uuid.UUID, reaction Reaction) (*models.Interaction, int64, int64, error) {
	var (
		it       models.Interaction
		likes    int64
		dislikes int64
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND article_id = ?", userID, articleID).First(&it).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			it = models.Interaction{
				UserID:    userID,
				ArticleID: articleID,
				Like:      reaction == ReactionLike,
				Dislike:   reaction == ReactionDislike,
			}
			if err := tx.Create(&it).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if reaction == ReactionLike {
				if it.Like {
					it.Like = false
				} else {
					it.Like = true
					it.Dislike = false
				}
			} else {
				if it.Dislike {
					it.Dislike = false
				} else {
					it.Dislike = true
					it.Like = false
				}
			}
			if err := tx.Save(&it).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Interaction{}).
			Where("article_id = ? AND liked = ?", articleID, true).
			Count(&likes).Error; err != nil {
			return err
		}
		return tx.Model(&models.Interaction{}).
			Where("article_id = ? AND disliked = ?", articleID, true).
			Count(&dislikes).Error
	})
	if err != nil {
		return nil, 0, 0, err
	}
	return &it, likes, dislikes, nil
}

func (r *GormRepo) ToggleBlock(ctx context.Context, userID, articleID uuid.UUID) (*models.Interaction, error) {
	var it models.Interaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND article_id = ?", userID, articleID).First(&it).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			it = models.Interaction{UserID: userID, ArticleID: articleID, Block: true}
			return tx.Create(&it).Error
		}
		if err != nil {
			return err
		}
		it.Block = !it.Block
		return tx.Save(&it).Error
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *GormRepo) FindInteraction(ctx context.Context, userID, articleID uuid.UUID) (*models.Interaction, error) {
	var it models.Interaction
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *GormRepo) ReactionCounts(ctx context.Context, articleID uuid.UUID) (int64, int64, error) {
	var likes, dislikes int64
	if err := r.DB.WithContext(ctx).Model(&models.Interaction{}).
		Where("article_id = ? AND liked = ?", articleID, true).
		Count(&likes).Error; err != nil {
		return 0, 0, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Interaction{}).
		Where("article_id = ? AND disliked = ?", articleID, true).
		Count(&dislikes).Error; err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
