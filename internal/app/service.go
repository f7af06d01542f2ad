// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	eventqueue "github.com/AI-Engineer2025/Masterblog-API/internal/adapters/mq/queue"
	repository "github.com/AI-Engineer2025/Masterblog-API/internal/adapters/repository"
	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/model"
	post "github.com/AI-Engineer2025/Masterblog-API/internal/domain/post"
	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/query"
	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/seed"
	"github.com/AI-Engineer2025/Masterblog-API/pkg/logger"
	"github.com/AI-Engineer2025/Masterblog-API/pkg/metrics"
)

// Service implements the API dependencies for the blog post system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	changeFeed eventqueue.Queue

	// Configuration
	queueSize  int
	seedPosts  []post.Post
	seedSource string

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the maximum size of the change feed queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithSeedPosts sets the posts the store starts out with. Passing an
// empty slice starts with an empty collection; leaving the option out
// selects the built-in starter posts.
func WithSeedPosts(posts []post.Post) Option {
	return func(s *Service) {
		if posts != nil {
			s.seedPosts = posts
		}
	}
}

// WithSeedSource labels where the seed posts came from, e.g. a seed
// file path. Reported under seed_source in GetStats.
func WithSeedSource(source string) Option {
	return func(s *Service) {
		if source != "" {
			s.seedSource = source
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:  1024, // Default change feed capacity
		seedSource: "builtin",
		logger:     nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting masterblog service...")

	seedPosts := s.seedPosts
	if seedPosts == nil {
		seedPosts = seed.Defaults()
	}

	// Initialize components
	s.store = repository.NewMemStore(
		repository.WithSeed(seedPosts),
	)
	s.changeFeed = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
		eventqueue.WithBufferSize(s.queueSize),
	)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "masterblog service started",
		logger.Int("posts", len(seedPosts)),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping masterblog service...")

	// Close the change feed so subscribers drain and exit
	if q, ok := s.changeFeed.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "masterblog service stopped")
}

// ListPosts returns the posts matching the query, filtered first and
// then ordered.
func (s *Service) ListPosts(ctx context.Context, q query.Query) []post.Post {
	return query.Apply(s.store.List(ctx), q)
}

// GetPost returns the post with the given id.
// Returns repository.ErrNotFound if the id is unknown.
func (s *Service) GetPost(ctx context.Context, id int64) (post.Post, error) {
	return s.store.Get(ctx, id)
}

// CreatePost stores a new post built from fields and publishes the
// creation on the change feed.
func (s *Service) CreatePost(ctx context.Context, fields map[string]any) post.Post {
	p := s.store.Insert(ctx, fields)
	metrics.RecordPostCreated()
	s.logger.Info(ctx, "post created", logger.Int64("id", p.ID()))
	s.publish(ctx, model.ChangeCreated, p)
	return p
}

// UpdatePost merges fields into the stored post and publishes the
// update on the change feed.
// Returns repository.ErrNotFound if the id is unknown.
func (s *Service) UpdatePost(ctx context.Context, id int64, fields map[string]any) (post.Post, error) {
	p, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	metrics.RecordPostUpdated()
	s.logger.Info(ctx, "post updated", logger.Int64("id", id))
	s.publish(ctx, model.ChangeUpdated, p)
	return p, nil
}

// DeletePost removes the post with the given id and publishes its last
// state on the change feed.
// Returns repository.ErrNotFound if the id is unknown.
func (s *Service) DeletePost(ctx context.Context, id int64) error {
	p, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	metrics.RecordPostDeleted()
	s.logger.Info(ctx, "post deleted", logger.Int64("id", id))
	s.publish(ctx, model.ChangeDeleted, p)
	return nil
}

// Posts returns a snapshot of the collection for new feed subscribers.
func (s *Service) Posts(ctx context.Context) []post.Post {
	return s.store.List(ctx)
}

// Changes returns the stream of post mutations.
func (s *Service) Changes(ctx context.Context) <-chan model.Change {
	return s.changeFeed.Dequeue(ctx)
}

// Uptime reports how long the service has been running.
func (s *Service) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return 0
	}
	return time.Since(s.startedAt)
}

// PostCount returns the number of stored posts.
func (s *Service) PostCount(ctx context.Context) int {
	return s.store.Count(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":        s.started,
		"queue_capacity": s.queueSize,
		"seed_source":    s.seedSource,
	}

	if s.started {
		queueLen := s.changeFeed.Len(ctx)
		totalPosts := s.store.Count(ctx)

		stats["queue_length"] = queueLen
		stats["posts"] = totalPosts
		stats["uptime_seconds"] = time.Since(s.startedAt).Seconds()

		// Update metrics
		metrics.UpdateQueueSize(queueLen)
		metrics.UpdatePostsTotal(totalPosts)
	}

	return stats
}

// publish puts a change on the feed. The feed is best effort: a full
// or closed queue drops the event rather than failing the mutation.
func (s *Service) publish(ctx context.Context, kind model.ChangeKind, p post.Post) {
	change := model.Change{
		Kind: kind,
		ID:   p.ID(),
		Post: p,
		TS:   time.Now().UTC(),
	}
	if !s.changeFeed.Enqueue(ctx, change) {
		s.logger.Warn(ctx, "change feed full, event dropped",
			logger.String("kind", string(kind)),
			logger.Int64("id", change.ID),
		)
	}
}
