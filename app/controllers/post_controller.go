package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"postfeed/app/models"
	"postfeed/app/observability"
	"postfeed/app/repositories"
	"postfeed/app/services"

	"github.com/gorilla/mux"
)

// PostController exposes a PostStore and the projector over JSON.
type PostController struct {
	store  *services.PostStore
	logger *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(store *services.PostStore, logger *slog.Logger) *PostController {
	if logger == nil {
		logger = observability.Discard()
	}
	return &PostController{store: store, logger: logger}
}

// postView is a post as the feed renders it.
type postView struct {
	models.Post
	Score   int    `json:"score"`
	Excerpt string `json:"excerpt"`
}

type feedResponse struct {
	Posts  []postView `json:"posts"`
	Search string     `json:"search"`
	Sort   string     `json:"sort"`
	Total  int        `json:"total"`
}

// Index lists the projected feed: ?search= filters, ?sort= orders.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	pc.feed(w, r, false)
}

// Bookmarks lists the projected feed restricted to bookmarked posts.
func (pc *PostController) Bookmarks(w http.ResponseWriter, r *http.Request) {
	pc.feed(w, r, true)
}

func (pc *PostController) feed(w http.ResponseWriter, r *http.Request, bookmarkedOnly bool) {
	posts, err := pc.store.List()
	if err != nil {
		pc.sendError(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	total := len(posts)
	if bookmarkedOnly {
		posts = services.Bookmarked(posts)
	}

	search := r.URL.Query().Get("search")
	sort := services.SortLatest
	if s := r.URL.Query().Get("sort"); s != "" {
		sort = services.ParseSortMode(s)
	}

	projected := services.Project(posts, search, sort)
	observability.ProjectionResults.WithLabelValues(sort.Label()).Observe(float64(len(projected)))

	views := make([]postView, 0, len(projected))
	for i := range projected {
		views = append(views, newPostView(&projected[i]))
	}
	pc.sendJSON(w, http.StatusOK, feedResponse{
		Posts:  views,
		Search: search,
		Sort:   string(sort),
		Total:  total,
	})
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}

	post, err := pc.store.Get(id)
	if errors.Is(err, repositories.ErrNotFound) {
		pc.sendError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.sendError(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	pc.sendJSON(w, http.StatusOK, newPostView(post))
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		pc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.store.Create(in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidPost) {
			status = http.StatusUnprocessableEntity
		}
		pc.sendError(w, "Failed to create post: "+err.Error(), status)
		return
	}
	pc.sendJSON(w, http.StatusCreated, newPostView(post))
}

// Upvote adds an upvote. Unknown ids still answer 204.
func (pc *PostController) Upvote(w http.ResponseWriter, r *http.Request) {
	pc.react(w, r, pc.store.Upvote)
}

// Downvote adds a downvote. Unknown ids still answer 204.
func (pc *PostController) Downvote(w http.ResponseWriter, r *http.Request) {
	pc.react(w, r, pc.store.Downvote)
}

// Bookmark toggles the bookmark flag. Unknown ids still answer 204.
func (pc *PostController) Bookmark(w http.ResponseWriter, r *http.Request) {
	pc.react(w, r, pc.store.ToggleBookmark)
}

func (pc *PostController) react(w http.ResponseWriter, r *http.Request, op func(id int) error) {
	id, ok := pc.postID(w, r)
	if !ok {
		return
	}
	if err := op(id); err != nil {
		pc.sendError(w, "Failed to update post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (pc *PostController) postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pc.sendError(w, "Invalid post ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func newPostView(p *models.Post) postView {
	return postView{Post: *p, Score: p.Score(), Excerpt: p.Excerpt()}
}

// Helper methods for consistent response handling

func (pc *PostController) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		pc.logger.Error("failed to encode response", "error", err)
	}
}

func (pc *PostController) sendError(w http.ResponseWriter, message string, status int) {
	pc.sendJSON(w, status, map[string]string{"error": message})
}
