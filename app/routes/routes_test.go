package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postfeed/app/repositories"
	"postfeed/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedPost struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Tags       []string `json:"tags"`
	Upvotes    int      `json:"upvotes"`
	Downvotes  int      `json:"downvotes"`
	Bookmarked bool     `json:"bookmarked"`
	Score      int      `json:"score"`
	Excerpt    string   `json:"excerpt"`
}

type feedBody struct {
	Posts []feedPost `json:"posts"`
	Sort  string     `json:"sort"`
	Total int        `json:"total"`
}

func setupTestRouter(t *testing.T, config services.FeedConfig) (http.Handler, *services.PostStore) {
	t.Helper()
	store := services.NewPostStore(repositories.NewMemoryPostRepository(), config, nil)
	return SetupRoutes(store, nil), store
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeFeed(t *testing.T, w *httptest.ResponseRecorder) feedBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body feedBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestFeedAPI(t *testing.T) {
	router, _ := setupTestRouter(t, services.DefaultFeedConfig())

	t.Run("create posts", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/posts", `{"title":"Alpha","content":"first","tags":" a, b ,, c "}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var post feedPost
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, 1, post.ID)
		assert.Equal(t, "Current User", post.Author)
		assert.Equal(t, []string{"a", "b", "c"}, post.Tags)

		w = do(t, router, http.MethodPost, "/api/posts", `{"title":"Beta","content":"second","author":"Bob"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("latest by default", func(t *testing.T) {
		body := decodeFeed(t, do(t, router, http.MethodGet, "/api/posts", ""))
		require.Len(t, body.Posts, 2)
		assert.Equal(t, "Beta", body.Posts[0].Title)
		assert.Equal(t, "latest", body.Sort)
		assert.Equal(t, 2, body.Total)
	})

	t.Run("vote and sort by most voted", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodPost, "/api/posts/1/upvote", "").Code)
		assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodPost, "/api/posts/1/upvote", "").Code)
		assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodPost, "/api/posts/2/downvote", "").Code)

		body := decodeFeed(t, do(t, router, http.MethodGet, "/api/posts?sort=mostVoted", ""))
		require.Len(t, body.Posts, 2)
		assert.Equal(t, "Alpha", body.Posts[0].Title)
		assert.Equal(t, 2, body.Posts[0].Score)
		assert.Equal(t, -1, body.Posts[1].Score)
	})

	t.Run("search", func(t *testing.T) {
		body := decodeFeed(t, do(t, router, http.MethodGet, "/api/posts?search=ALP", ""))
		require.Len(t, body.Posts, 1)
		assert.Equal(t, "Alpha", body.Posts[0].Title)
		assert.Equal(t, 2, body.Total)
	})

	t.Run("unknown sort passes through", func(t *testing.T) {
		body := decodeFeed(t, do(t, router, http.MethodGet, "/api/posts?sort=byPopularityXYZ", ""))
		require.Len(t, body.Posts, 2)
		assert.Equal(t, 1, body.Posts[0].ID)
		assert.Equal(t, 2, body.Posts[1].ID)
	})

	t.Run("bookmarks", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodPost, "/api/posts/2/bookmark", "").Code)

		body := decodeFeed(t, do(t, router, http.MethodGet, "/api/bookmarks", ""))
		require.Len(t, body.Posts, 1)
		assert.Equal(t, "Beta", body.Posts[0].Title)
		assert.True(t, body.Posts[0].Bookmarked)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := do(t, router, http.MethodGet, "/api/posts", "").Body.String()
		assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodPost, "/api/posts/9999/upvote", "").Code)
		assert.Equal(t, before, do(t, router, http.MethodGet, "/api/posts", "").Body.String())
	})

	t.Run("show", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/posts/1", "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(t, router, http.MethodGet, "/api/posts/9999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/posts", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("id out of range", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/api/posts/99999999999999999999999/upvote", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFeedAPIValidation(t *testing.T) {
	config := services.DefaultFeedConfig()
	config.Validate = true
	router, store := setupTestRouter(t, config)

	w := do(t, router, http.MethodPost, "/api/posts", `{"content":"no title"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	posts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestFeedAPIExcerpt(t *testing.T) {
	router, _ := setupTestRouter(t, services.DefaultFeedConfig())
	long := strings.Repeat("x", 150)
	do(t, router, http.MethodPost, "/api/posts", `{"title":"Long","content":"`+long+`"}`)

	body := decodeFeed(t, do(t, router, http.MethodGet, "/api/posts", ""))
	require.Len(t, body.Posts, 1)
	assert.Equal(t, strings.Repeat("x", 100)+"...", body.Posts[0].Excerpt)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t, services.DefaultFeedConfig())
	do(t, router, http.MethodPost, "/api/posts", `{"title":"Counted"}`)
	do(t, router, http.MethodGet, "/api/posts", "")

	w := do(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "postfeed_operations_total")
	assert.Contains(t, w.Body.String(), "postfeed_projection_results")
}
