package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/thinklet/thinklet/internal/apperr"
	"github.com/thinklet/thinklet/internal/logging"
	"github.com/thinklet/thinklet/internal/service"
	"github.com/thinklet/thinklet/internal/transport"
	"github.com/thinklet/thinklet/internal/util"
)

type ArticleHTTP struct {
	Svc *service.ArticleService
}

func (h *ArticleHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "article_create")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, apperr.Forbidden("Access token missing"))
	}

	var req transport.CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("article_create_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "invalid body",
			"code":    "VALIDATION_ERROR",
		})
	}

	article, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return respondError(c, err)
	}

	l.Info("article_create_success", "article_id", article.ID)
	return c.JSON(http.StatusCreated, article)
}

func (h *ArticleHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperr.ArticleNotFound())
	}

	// Identity is optional here; anonymous readers get zeroed
	// userInteraction flags.
	var userID *uuid.UUID
	if id, err := currentUserID(c); err == nil {
		userID = &id
	}

	article, err := h.Svc.Get(ctx, articleID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "article_update")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, apperr.Forbidden("Access token missing"))
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperr.ArticleNotFound())
	}

	var req transport.UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("article_update_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "invalid body",
			"code":    "VALIDATION_ERROR",
		})
	}

	article, err := h.Svc.Update(ctx, articleID, userID, req)
	if err != nil {
		return respondError(c, err)
	}

	l.Info("article_update_success", "article_id", article.ID)
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "article_delete")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, apperr.Forbidden("Access token missing"))
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperr.ArticleNotFound())
	}

	if err := h.Svc.Delete(ctx, articleID, userID); err != nil {
		return respondError(c, err)
	}

	l.Info("article_delete_success", "article_id", articleID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Article deleted successfully",
	})
}

func (h *ArticleHTTP) My(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, apperr.Forbidden("Access token missing"))
	}

	articles, err := h.Svc.MyArticles(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"articles": articles,
	})
}

func (h *ArticleHTTP) Feed(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, apperr.Forbidden("Access token missing"))
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	articles, err := h.Svc.PreferenceFeed(ctx, userID, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"articles": articles,
	})
}

func (h *ArticleHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	result, err := h.Svc.Search(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ArticleHTTP) reactionTarget(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.Forbidden("Access token missing")
	}

	var req transport.ReactionRequest
	if err := c.Bind(&req); err != nil {
		return uuid.Nil, uuid.Nil, apperr.MissingFields("Article ID is required")
	}
	articleID, err := uuid.Parse(req.ArticleID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.MissingFields("Article ID is required")
	}
	return articleID, userID, nil
}

func (h *ArticleHTTP) Like(c echo.Context) error {
	ctx := c.Request().Context()

	articleID, userID, err := h.reactionTarget(c)
	if err != nil {
		return respondError(c, err)
	}

	res, err := h.Svc.Like(ctx, articleID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ArticleHTTP) Dislike(c echo.Context) error {
	ctx := c.Request().Context()

	articleID, userID, err := h.reactionTarget(c)
	if err != nil {
		return respondError(c, err)
	}

	res, err := h.Svc.Dislike(ctx, articleID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ArticleHTTP) Block(c echo.Context) error {
	ctx := c.Request().Context()

	articleID, userID, err := h.reactionTarget(c)
	if err != nil {
		return respondError(c, err)
	}

	res, err := h.Svc.Block(ctx, articleID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
