package testposts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/AI-Engineer2025/Masterblog-API/pkg/logger"
)

// Run executes the complete post test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	if config.RunTag == "" {
		config.RunTag = uuid.NewString()
	}

	logger.Get().Info(ctx, "starting masterblog post test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("posts", config.NumPosts),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("runTag", config.RunTag),
		logger.Any("cleanup", config.Cleanup),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate post payloads
	posts, err := generatePosts(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("post generation failed: %w", err)
	}

	// Step 3: Create posts concurrently
	created, err := submitPosts(ctx, config, client, posts, stats)
	if err != nil {
		return fmt.Errorf("post submission failed: %w", err)
	}

	// Step 4: Verify the listing
	if err := verifyCollection(config, client, created); err != nil {
		return fmt.Errorf("collection verification failed: %w", err)
	}

	// Step 5: Verify search and sorting
	if err := verifySearch(config, client, created); err != nil {
		return fmt.Errorf("search verification failed: %w", err)
	}
	if err := verifySorting(config, client); err != nil {
		return fmt.Errorf("sorting verification failed: %w", err)
	}

	// Step 6: Update the created posts and re-check the merge
	if err := updatePosts(ctx, config, client, created, stats); err != nil {
		return fmt.Errorf("update verification failed: %w", err)
	}

	// Step 7: Save created posts to file
	if err := savePostsToFile(ctx, config, created); err != nil {
		logger.Get().Warn(ctx, "failed to save posts to file", logger.Error(err))
	}

	// Step 8: Optionally delete everything this run created
	if config.Cleanup {
		if err := cleanupPosts(ctx, config, client, created, stats); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "post test completed successfully")

	return nil
}

// checkServiceHealth verifies the service is reachable before the test.
func checkServiceHealth(ctx context.Context, config *Config, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health", logger.String("baseURL", config.BaseURL))

	resp, err := client.Get(config.BaseURL + "/healthz")
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service unhealthy: HTTP %d: %s", resp.StatusCode, string(body))
	}

	log.Println("✅ Service is healthy")

	return nil
}

// savePostsToFile writes the created posts to a JSON file.
func savePostsToFile(ctx context.Context, config *Config, posts []Post) error {
	if config.OutputFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		config.OutputFile = fmt.Sprintf("created_posts_%s.json", timestamp)
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Stream the array element by element so large runs stay cheap
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	for i, post := range posts {
		data, err := json.MarshalIndent(post, "  ", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal post %d: %w", post.ID, err)
		}

		if _, err := file.WriteString("  " + string(data)); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		if i < len(posts)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
		}

		if _, err := file.WriteString("\n"); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Get().Info(ctx, "saved created posts",
		logger.String("file", config.OutputFile),
		logger.Int("count", len(posts)))

	return nil
}

// displayFinalStats logs the final test statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, postsPerSecond float64

	if stats.PostsSubmitted > 0 {
		successRate = float64(stats.PostsCreated) / float64(stats.PostsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		postsPerSecond = float64(stats.PostsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("postsGenerated", stats.PostsGenerated),
		logger.Int("postsSubmitted", stats.PostsSubmitted),
		logger.Int("postsCreated", stats.PostsCreated),
		logger.Int("postsFailed", stats.PostsFailed),
		logger.Int("postsUpdated", stats.PostsUpdated),
		logger.Int("postsDeleted", stats.PostsDeleted),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("postsPerSecond", postsPerSecond))
}
