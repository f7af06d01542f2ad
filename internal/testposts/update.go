package testposts

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// updatePosts rewrites the content of every created post and checks the
// merge semantics: the title stays, only the content changes.
func updatePosts(ctx context.Context, config *Config, client *HTTPClient, created []Post, stats *Stats) error {
	log.Printf("📝 Updating %d posts with %d workers...", len(created), config.Workers)

	var (
		updated int64
		failed  int64
	)

	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					if err := updateSinglePost(client, config, &created[index]); err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to update post %d: %v", created[index].ID, err)
						}
					} else {
						atomic.AddInt64(&updated, 1)
					}
				}
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range created {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.PostsUpdated = int(atomic.LoadInt64(&updated))

	if failedCount := atomic.LoadInt64(&failed); failedCount > 0 {
		return fmt.Errorf("%d of %d updates failed", failedCount, len(created))
	}

	log.Printf("✅ Updated %d posts", stats.PostsUpdated)

	return nil
}

// updateSinglePost sends new content for one post and verifies the
// returned merge. The run tag stays in the content so search checks
// keep working afterwards.
func updateSinglePost(client *HTTPClient, config *Config, p *Post) error {
	newContent := fmt.Sprintf("Updated content for post %d of test run %s.", p.ID, config.RunTag)

	u := fmt.Sprintf("%s/api/posts/%d", config.BaseURL, p.ID)
	resp, err := client.Put(u, map[string]interface{}{"content": newContent})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var got Post
	if err := unmarshalJSON(body, &got); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if got.Content != newContent {
		return fmt.Errorf("content not updated: %q", got.Content)
	}
	if got.Title != p.Title {
		return fmt.Errorf("title changed by a content-only update: %q -> %q", p.Title, got.Title)
	}
	if got.ID != p.ID {
		return fmt.Errorf("id changed by an update: %d -> %d", p.ID, got.ID)
	}

	*p = got

	return nil
}
