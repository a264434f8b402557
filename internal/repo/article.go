package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thinklet/thinklet/internal/models"
)

func (r *GormRepo) CreateArticle(ctx context.Context, article *models.Article) error {
	return r.DB.WithContext(ctx).Create(article).Error
}

func (r *GormRepo) GetArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var article models.Article
	if err := r.DB.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("id = ?", id).
		First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *GormRepo) ArticleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Article{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type ArticlePatch struct {
	Title       *string
	Description *string
	Thumbnail   *string
	Tags        []string
	CategoryID  *uuid.UUID
}

func (r *GormRepo) UpdateArticle(ctx context.Context, id uuid.UUID, patch ArticlePatch) (*models.Article, error) {
	var article models.Article
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Description != nil {
		article.Description = *patch.Description
	}
	if patch.Thumbnail != nil {
		article.Thumbnail = *patch.Thumbnail
	}
	if patch.Tags != nil {
		article.Tags = patch.Tags
	}
	if patch.CategoryID != nil {
		article.CategoryID = *patch.CategoryID
	}

	if err := r.DB.WithContext(ctx).Save(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *GormRepo) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Article{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ArticlesByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Article, error) {
	var items []models.Article
	if err := r.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// PreferenceFeed returns articles whose category is one of the user's
// preferences or whose tags contain a preference name, newest first.
// Tags are stored as a JSON array, so tag matching is a substring test
// against the serialized column.
func (r *GormRepo) PreferenceFeed(ctx context.Context, categoryIDs []uuid.UUID, tagNames []string, offset, limit int) ([]models.Article, error) {
	q := r.DB.WithContext(ctx).Model(&models.Article{})

	cond := r.DB.Where("category_id IN ?", categoryIDs)
	for _, name := range tagNames {
		cond = cond.Or("tags LIKE ?", `%"`+name+`"%`)
	}

	var items []models.Article
	if err := q.Where(cond).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
