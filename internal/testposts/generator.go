package testposts

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/AI-Engineer2025/Masterblog-API/pkg/logger"
)

// Word lists for generated posts.
var (
	adjectives = []string{"Practical", "Modern", "Quick", "Deep", "Gentle", "Advanced", "Minimal", "Robust"}
	topics     = []string{"Go", "Flask", "Python", "REST", "WebSockets", "Concurrency", "Caching", "Logging"}
	formats    = []string{"Guide", "Tutorial", "Notes", "Recipes", "Pitfalls", "Patterns"}
)

// randomIndex returns a random index in [0, n) using crypto/rand.
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}

	return int(v.Int64())
}

// generatePosts creates the configured number of post payloads, each
// carrying the run tag so later search checks can isolate this run.
func generatePosts(ctx context.Context, config *Config, stats *Stats) ([]PostInput, error) {
	logger.Get().Info(ctx, "generating posts",
		logger.Int("numPosts", config.NumPosts),
		logger.String("runTag", config.RunTag))

	posts := make([]PostInput, config.NumPosts)

	// Use worker pool for faster generation
	type postResult struct {
		index int
		post  PostInput
		err   error
	}

	resultChan := make(chan postResult, config.NumPosts)

	// Start workers, each covering a contiguous slice of indices
	workerCount := minInt(config.Workers, config.NumPosts)
	postsPerWorker := config.NumPosts / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * postsPerWorker
		end := start + postsPerWorker
		if worker == workerCount-1 {
			end = config.NumPosts
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- postResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- postResult{index: i, post: generateSinglePost(i, config.RunTag)}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumPosts; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during post generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate post %d: %w", result.index, result.err)
			}
			posts[result.index] = result.post
		}
	}

	stats.PostsGenerated = len(posts)
	logger.Get().Info(ctx, "generated posts successfully", logger.Int("count", len(posts)))

	return posts, nil
}

// generateSinglePost builds one post payload. The run tag lands in the
// content so a search for it returns every post of this run.
func generateSinglePost(index int, runTag string) PostInput {
	title := fmt.Sprintf("%s %s %s #%d",
		adjectives[randomIndex(len(adjectives))],
		topics[randomIndex(len(topics))],
		formats[randomIndex(len(formats))],
		index,
	)
	content := fmt.Sprintf("Generated content for post %d of test run %s.", index, runTag)

	return PostInput{
		Title:   title,
		Content: content,
		Author:  "loadtest",
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
