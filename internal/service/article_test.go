package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinklet/thinklet/internal/models"
	"github.com/thinklet/thinklet/internal/repo"
	"github.com/thinklet/thinklet/internal/transport"
)

func newTestArticleService(t *testing.T) (*ArticleService, *repo.GormRepo) {
	t.Helper()

	rp := &repo.GormRepo{DB: initTestDB(t)}
	return &ArticleService{Repo: rp}, rp
}

func seedUser(t *testing.T, rp *repo.GormRepo, email string, prefs ...models.Category) *models.User {
	t.Helper()

	user := models.User{
		FirstName:    "Ravi",
		LastName:     "Menon",
		Email:        email,
		Phone:        "9123456780",
		PasswordHash: "x",
		Preferences:  prefs,
	}
	require.NoError(t, rp.DB.Create(&user).Error)
	return &user
}

func seedArticle(t *testing.T, rp *repo.GormRepo, author *models.User, cat models.Category, title string, tags ...string) *models.Article {
	t.Helper()

	article := models.Article{
		Title:       title,
		Description: "body of " + title,
		Tags:        tags,
		CategoryID:  cat.ID,
		AuthorID:    author.ID,
	}
	require.NoError(t, rp.DB.Create(&article).Error)
	return &article
}

func TestArticleService_Create(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")

	res, err := svc.Create(ctx, author.ID, transport.CreateArticleRequest{
		Title:       "  Go generics in practice  ",
		Description: "a walkthrough",
		Tags:        []string{"go", "generics"},
		CategoryID:  cats[0].ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Go generics in practice", res.Title)
	assert.Equal(t, "tech", res.Category.Name)
	assert.Equal(t, author.ID, res.Author.ID)
	assert.Equal(t, []string{"go", "generics"}, res.Tags)
	assert.Zero(t, res.LikesCount)
	assert.Zero(t, res.DislikesCount)
}

func TestArticleService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")

	_, err := svc.Create(ctx, author.ID, transport.CreateArticleRequest{})
	assertCode(t, err, "MISSING_FIELDS")

	_, err = svc.Create(ctx, author.ID, transport.CreateArticleRequest{
		Title:       "t",
		Description: "d",
		CategoryID:  uuid.NewString(),
	})
	assertCode(t, err, "INVALID_CATEGORY")
}

func TestArticleService_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestArticleService(t)

	_, err := svc.Get(context.Background(), uuid.New(), nil)
	assertCode(t, err, "ARTICLE_NOT_FOUND")
}

func TestArticleService_Update_AuthorOnly(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")
	other := seedUser(t, rp, "lina@example.com")
	article := seedArticle(t, rp, author, cats[0], "original title")

	newTitle := "edited title"
	_, err := svc.Update(ctx, article.ID, other.ID, transport.UpdateArticleRequest{Title: &newTitle})
	assertCode(t, err, "FORBIDDEN")

	res, err := svc.Update(ctx, article.ID, author.ID, transport.UpdateArticleRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "edited title", res.Title)
	assert.Equal(t, "body of original title", res.Description, "untouched fields keep their value")
}

func TestArticleService_Delete_AuthorOnly(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")
	other := seedUser(t, rp, "lina@example.com")
	article := seedArticle(t, rp, author, cats[0], "to delete")

	err := svc.Delete(ctx, article.ID, other.ID)
	assertCode(t, err, "FORBIDDEN")

	require.NoError(t, svc.Delete(ctx, article.ID, author.ID))

	_, err = svc.Get(ctx, article.ID, nil)
	assertCode(t, err, "ARTICLE_NOT_FOUND")

	err = svc.Delete(ctx, article.ID, author.ID)
	assertCode(t, err, "ARTICLE_NOT_FOUND")
}

func TestArticleService_Like_Toggle(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")
	reader := seedUser(t, rp, "lina@example.com")
	article := seedArticle(t, rp, author, cats[0], "toggling")

	res, err := svc.Like(ctx, article.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 1, res.LikesCount)
	assert.EqualValues(t, 0, res.DislikesCount)

	// Second like undoes the first.
	res, err = svc.Like(ctx, article.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.EqualValues(t, 0, res.LikesCount)
	assert.EqualValues(t, 0, res.DislikesCount)
}

func TestArticleService_LikeThenDislike_MutualExclusion(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")
	reader := seedUser(t, rp, "lina@example.com")
	article := seedArticle(t, rp, author, cats[0], "exclusive")

	_, err := svc.Like(ctx, article.ID, reader.ID)
	require.NoError(t, err)

	res, err := svc.Dislike(ctx, article.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, res.Disliked)
	assert.EqualValues(t, 0, res.LikesCount)
	assert.EqualValues(t, 1, res.DislikesCount)

	it, err := rp.FindInteraction(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.False(t, it.Like && it.Dislike, "a row may never hold both reactions")
}

func TestArticleService_Like_CountsAcrossUsers(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")
	article := seedArticle(t, rp, author, cats[0], "popular")

	first := seedUser(t, rp, "a@example.com")
	second := seedUser(t, rp, "b@example.com")

	_, err := svc.Like(ctx, article.ID, first.ID)
	require.NoError(t, err)

	res, err := svc.Like(ctx, article.ID, second.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.LikesCount)
}

func TestArticleService_Like_UnknownArticle(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	reader := seedUser(t, rp, "lina@example.com")

	_, err := svc.Like(context.Background(), uuid.New(), reader.ID)
	assertCode(t, err, "ARTICLE_NOT_FOUND")

	_, err = svc.Dislike(context.Background(), uuid.New(), reader.ID)
	assertCode(t, err, "ARTICLE_NOT_FOUND")
}

func TestArticleService_Block_Toggle(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")
	reader := seedUser(t, rp, "lina@example.com")
	article := seedArticle(t, rp, author, cats[0], "blockable")

	res, err := svc.Block(ctx, article.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, res.Blocked)

	res, err = svc.Block(ctx, article.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, res.Blocked)
}

func TestArticleService_MyArticles(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech")
	author := seedUser(t, rp, "ravi@example.com")
	other := seedUser(t, rp, "lina@example.com")

	seedArticle(t, rp, author, cats[0], "mine one")
	seedArticle(t, rp, author, cats[0], "mine two")
	seedArticle(t, rp, other, cats[0], "not mine")

	items, err := svc.MyArticles(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, author.ID, item.Author.ID)
	}
}

func TestArticleService_PreferenceFeed(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	ctx := context.Background()
	cats := seedCategories(t, rp.DB, "tech", "health", "travel", "finance")
	author := seedUser(t, rp, "ravi@example.com")
	reader := seedUser(t, rp, "lina@example.com", cats[0], cats[1], cats[2])

	inCategory := seedArticle(t, rp, author, cats[0], "by category")
	byTag := seedArticle(t, rp, author, cats[3], "by tag", "health")
	seedArticle(t, rp, author, cats[3], "outside feed")

	items, err := svc.PreferenceFeed(ctx, reader.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	got := map[uuid.UUID]bool{}
	for _, item := range items {
		got[item.ID] = true
	}
	assert.True(t, got[inCategory.ID])
	assert.True(t, got[byTag.ID])
}

func TestArticleService_PreferenceFeed_NoPreferences(t *testing.T) {
	t.Parallel()

	svc, rp := newTestArticleService(t)
	reader := seedUser(t, rp, "lina@example.com")

	items, err := svc.PreferenceFeed(context.Background(), reader.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestArticleService_Search_NoIndex(t *testing.T) {
	t.Parallel()

	svc, _ := newTestArticleService(t)

	res, err := svc.Search(context.Background(), "anything", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Items)
}
