package services

import (
	"errors"
	"fmt"
	"log/slog"

	"postfeed/app/models"
	"postfeed/app/observability"
	"postfeed/app/repositories"
)

// DefaultAuthor is used for locally created posts that name no author.
const DefaultAuthor = "Current User"

// ErrInvalidPost wraps validation failures from Create.
var ErrInvalidPost = errors.New("invalid post")

// FeedConfig switches the optional parts of the engine.
type FeedConfig struct {
	// EnableDownvotes turns on the downvote counter. When off, Downvote is a
	// no-op and every post's downvotes stay 0.
	EnableDownvotes bool
	// EnableBookmarks turns on the bookmark flag.
	EnableBookmarks bool
	// Validate rejects malformed input on Create instead of accepting it.
	Validate bool
	// CurrentUser is the author given to posts created without one.
	CurrentUser string
}

// DefaultFeedConfig enables every feature and keeps creation permissive.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		EnableDownvotes: true,
		EnableBookmarks: true,
		CurrentUser:     DefaultAuthor,
	}
}

// PostStore owns the canonical post collection of one feed session and is
// the only way to create or react to posts.
type PostStore struct {
	repo   repositories.PostRepository
	config FeedConfig
	logger *slog.Logger
}

// NewPostStore creates a PostStore on top of repo.
func NewPostStore(repo repositories.PostRepository, config FeedConfig, logger *slog.Logger) *PostStore {
	if config.CurrentUser == "" {
		config.CurrentUser = DefaultAuthor
	}
	if logger == nil {
		logger = observability.Discard()
	}
	return &PostStore{
		repo:   repo,
		config: config,
		logger: logger,
	}
}

// Create builds a post from in, stores it and returns a copy. Title and
// content are accepted as given unless validation is switched on.
func (s *PostStore) Create(in models.PostInput) (*models.Post, error) {
	if s.config.Validate {
		if err := in.Validate(); err != nil {
			observability.FeedOperations.WithLabelValues("create", observability.OutcomeRejected).Inc()
			return nil, fmt.Errorf("%w: %w", ErrInvalidPost, err)
		}
	}

	author := in.Author
	if author == "" {
		author = s.config.CurrentUser
	}
	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		Author:  author,
		Tags:    models.ParseTags(in.Tags),
	}
	post.BeforeCreate()

	if err := s.repo.Create(post); err != nil {
		observability.FeedOperations.WithLabelValues("create", observability.OutcomeFailed).Inc()
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	observability.FeedOperations.WithLabelValues("create", observability.OutcomeApplied).Inc()
	s.logger.Info("post created", "post_id", post.ID, "author", post.Author, "tags", len(post.Tags))
	return post.Clone(), nil
}

// Upvote adds one upvote to the post. An unknown id is ignored.
func (s *PostStore) Upvote(id int) error {
	return s.mutate("upvote", id, func(p *models.Post) { p.Upvotes++ })
}

// Downvote adds one downvote to the post. An unknown id is ignored, as is
// every call while downvotes are disabled.
func (s *PostStore) Downvote(id int) error {
	if !s.config.EnableDownvotes {
		return s.disabled("downvote", id)
	}
	return s.mutate("downvote", id, func(p *models.Post) { p.Downvotes++ })
}

// ToggleBookmark flips the post's bookmark flag. An unknown id is ignored,
// as is every call while bookmarks are disabled.
func (s *PostStore) ToggleBookmark(id int) error {
	if !s.config.EnableBookmarks {
		return s.disabled("bookmark", id)
	}
	return s.mutate("bookmark", id, func(p *models.Post) { p.Bookmarked = !p.Bookmarked })
}

// List returns a snapshot of every post in insertion order.
func (s *PostStore) List() ([]models.Post, error) {
	stored, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	posts := make([]models.Post, 0, len(stored))
	for _, p := range stored {
		posts = append(posts, *p)
	}
	return posts, nil
}

// Get returns a copy of one post, or repositories.ErrNotFound.
func (s *PostStore) Get(id int) (*models.Post, error) {
	return s.repo.GetByID(id)
}

func (s *PostStore) mutate(op string, id int, fn func(p *models.Post)) error {
	err := s.repo.Mutate(id, fn)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		observability.FeedOperations.WithLabelValues(op, observability.OutcomeNoop).Inc()
		s.logger.Debug("ignoring reaction on unknown post", "op", op, "post_id", id)
		return nil
	case err != nil:
		observability.FeedOperations.WithLabelValues(op, observability.OutcomeFailed).Inc()
		return fmt.Errorf("failed to %s post %d: %w", op, id, err)
	}
	observability.FeedOperations.WithLabelValues(op, observability.OutcomeApplied).Inc()
	return nil
}

func (s *PostStore) disabled(op string, id int) error {
	observability.FeedOperations.WithLabelValues(op, observability.OutcomeNoop).Inc()
	s.logger.Debug("ignoring reaction, feature disabled", "op", op, "post_id", id)
	return nil
}
