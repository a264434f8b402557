package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/thinklet/thinklet/internal/apperr"
	"github.com/thinklet/thinklet/internal/events"
	"github.com/thinklet/thinklet/internal/logging"
	"github.com/thinklet/thinklet/internal/models"
	"github.com/thinklet/thinklet/internal/repo"
	"github.com/thinklet/thinklet/internal/search"
	"github.com/thinklet/thinklet/internal/transport"
	"github.com/thinklet/thinklet/internal/util"
)

type ArticleService struct {
	Repo   *repo.GormRepo
	Index  *search.Index
	Events *events.Producer
}

func (s *ArticleService) buildResponse(ctx context.Context, article *models.Article, userID *uuid.UUID) (*transport.ArticleResponse, error) {
	likes, dislikes, err := s.Repo.ReactionCounts(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	var userInteraction transport.InteractionDTO
	if userID != nil {
		it, err := s.Repo.FindInteraction(ctx, *userID, article.ID)
		if err != nil && !repo.IsNotFound(err) {
			return nil, err
		}
		if it != nil {
			userInteraction = transport.InteractionDTO{
				Liked:    it.Like,
				Disliked: it.Dislike,
				Blocked:  it.Block,
			}
		}
	}

	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}

	return &transport.ArticleResponse{
		ID:          article.ID,
		Title:       article.Title,
		Description: article.Description,
		Thumbnail:   article.Thumbnail,
		Tags:        tags,
		Category: transport.CategoryDTO{
			ID:   article.Category.ID,
			Name: article.Category.Name,
		},
		Author: transport.AuthorDTO{
			ID:        article.Author.ID,
			FirstName: article.Author.FirstName,
			LastName:  article.Author.LastName,
			Profile:   article.Author.Profile,
		},
		LikesCount:      likes,
		DislikesCount:   dislikes,
		UserInteraction: userInteraction,
		CreatedAt:       article.CreatedAt,
		UpdatedAt:       article.UpdatedAt,
	}, nil
}

func (s *ArticleService) indexArticle(ctx context.Context, article *models.Article) {
	l := logging.FromContext(ctx)
	doc := search.ArticleDoc{
		ID:          article.ID.String(),
		Title:       article.Title,
		Description: article.Description,
		Tags:        article.Tags,
		CategoryID:  article.CategoryID.String(),
		AuthorID:    article.AuthorID.String(),
		CreatedAt:   article.CreatedAt,
	}
	if err := s.Index.IndexArticle(ctx, doc); err != nil {
		l.Error("article_index_failed", "article_id", article.ID, "error", err)
	}
}

func (s *ArticleService) publish(ctx context.Context, key string, event map[string]any) {
	l := logging.FromContext(ctx)
	if err := s.Events.PublishEvent(ctx, "article_events", key, event); err != nil {
		l.Error("event_publish_failed", "error", err)
	}
}

func (s *ArticleService) Create(ctx context.Context, authorID uuid.UUID, req transport.CreateArticleRequest) (*transport.ArticleResponse, error) {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "Title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "Description is required")
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		missing = append(missing, "Category is required")
	}
	if len(missing) > 0 {
		return nil, apperr.MissingFields(strings.Join(missing, ", "))
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperr.InvalidCategory()
	}
	if _, err := s.Repo.FindCategory(ctx, categoryID); err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.InvalidCategory()
		}
		return nil, err
	}

	article := models.Article{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		CategoryID:  categoryID,
		AuthorID:    authorID,
	}
	if err := s.Repo.CreateArticle(ctx, &article); err != nil {
		return nil, err
	}

	s.indexArticle(ctx, &article)
	s.publish(ctx, article.ID.String(), map[string]any{
		"type":      "article_created",
		"articleId": article.ID,
		"authorId":  authorID,
	})

	return s.Get(ctx, article.ID, &authorID)
}

func (s *ArticleService) Get(ctx context.Context, articleID uuid.UUID, userID *uuid.UUID) (*transport.ArticleResponse, error) {
	article, err := s.Repo.GetArticle(ctx, articleID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.ArticleNotFound()
		}
		return nil, err
	}
	return s.buildResponse(ctx, article, userID)
}

func (s *ArticleService) Update(ctx context.Context, articleID, userID uuid.UUID, req transport.UpdateArticleRequest) (*transport.ArticleResponse, error) {
	article, err := s.Repo.GetArticle(ctx, articleID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.ArticleNotFound()
		}
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, apperr.Forbidden("Only the author can edit this article")
	}

	patch := repo.ArticlePatch{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperr.InvalidCategory()
		}
		if _, err := s.Repo.FindCategory(ctx, categoryID); err != nil {
			if repo.IsNotFound(err) {
				return nil, apperr.InvalidCategory()
			}
			return nil, err
		}
		patch.CategoryID = &categoryID
	}

	updated, err := s.Repo.UpdateArticle(ctx, articleID, patch)
	if err != nil {
		return nil, err
	}

	s.indexArticle(ctx, updated)
	s.publish(ctx, updated.ID.String(), map[string]any{
		"type":      "article_updated",
		"articleId": updated.ID,
	})

	return s.Get(ctx, updated.ID, &userID)
}

func (s *ArticleService) Delete(ctx context.Context, articleID, userID uuid.UUID) error {
	article, err := s.Repo.GetArticle(ctx, articleID)
	if err != nil {
		if repo.IsNotFound(err) {
			return apperr.ArticleNotFound()
		}
		return err
	}
	if article.AuthorID != userID {
		return apperr.Forbidden("Only the author can delete this article")
	}

	if err := s.Repo.DeleteArticle(ctx, articleID); err != nil {
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Index.DeleteArticle(ctx, articleID.String()); err != nil {
		l.Error("article_unindex_failed", "article_id", articleID, "error", err)
	}
	s.publish(ctx, articleID.String(), map[string]any{
		"type":      "article_deleted",
		"articleId": articleID,
	})
	return nil
}

func (s *ArticleService) MyArticles(ctx context.Context, userID uuid.UUID) ([]transport.ArticleResponse, error) {
	items, err := s.Repo.ArticlesByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.responses(ctx, items, &userID)
}

// PreferenceFeed pages through articles matching the caller's three
// preferences, either by category or by tag name, newest first.
func (s *ArticleService) PreferenceFeed(ctx context.Context, userID uuid.UUID, page, size int) ([]transport.ArticleResponse, error) {
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.UserNotFound()
		}
		return nil, err
	}
	if len(user.Preferences) == 0 {
		return []transport.ArticleResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(user.Preferences))
	names := make([]string, 0, len(user.Preferences))
	for _, cat := range user.Preferences {
		ids = append(ids, cat.ID)
		names = append(names, cat.Name)
	}

	offset, limit := util.Calculate(page, size)
	items, err := s.Repo.PreferenceFeed(ctx, ids, names, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.responses(ctx, items, &userID)
}

func (s *ArticleService) responses(ctx context.Context, items []models.Article, userID *uuid.UUID) ([]transport.ArticleResponse, error) {
	out := make([]transport.ArticleResponse, 0, len(items))
	for i := range items {
		article, err := s.Repo.GetArticle(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		resp, err := s.buildResponse(ctx, article, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *ArticleService) Like(ctx context.Context, articleID, userID uuid.UUID) (*transport.LikeResponse, error) {
	exists, err := s.Repo.ArticleExists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ArticleNotFound()
	}

	it, likes, dislikes, err := s.Repo.ToggleReaction(ctx, userID, articleID, repo.ReactionLike)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, articleID.String(), map[string]any{
		"type":      "article_liked",
		"articleId": articleID,
		"userId":    userID,
		"liked":     it.Like,
	})

	return &transport.LikeResponse{
		Liked:         it.Like,
		LikesCount:    likes,
		DislikesCount: dislikes,
	}, nil
}

func (s *ArticleService) Dislike(ctx context.Context, articleID, userID uuid.UUID) (*transport.DislikeResponse, error) {
	exists, err := s.Repo.ArticleExists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ArticleNotFound()
	}

	it, likes, dislikes, err := s.Repo.ToggleReaction(ctx, userID, articleID, repo.ReactionDislike)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, articleID.String(), map[string]any{
		"type":      "article_disliked",
		"articleId": articleID,
		"userId":    userID,
		"disliked":  it.Dislike,
	})

	return &transport.DislikeResponse{
		Disliked:      it.Dislike,
		LikesCount:    likes,
		DislikesCount: dislikes,
	}, nil
}

func (s *ArticleService) Block(ctx context.Context, articleID, userID uuid.UUID) (*transport.BlockResponse, error) {
	exists, err := s.Repo.ArticleExists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ArticleNotFound()
	}

	it, err := s.Repo.ToggleBlock(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}
	return &transport.BlockResponse{Blocked: it.Block}, nil
}

type SearchResult struct {
	Total int64               `json:"total"`
	Items []search.ArticleDoc `json:"items"`
}

func (s *ArticleService) Search(ctx context.Context, query string, page, size int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" || s.Index == nil {
		return &SearchResult{Items: []search.ArticleDoc{}}, nil
	}

	from, limit := util.Calculate(page, size)
	total, docs, err := s.Index.Search(ctx, query, from, limit)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Total: total, Items: docs}, nil
}
