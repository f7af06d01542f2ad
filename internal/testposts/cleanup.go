package testposts

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// cleanupPosts deletes every post this run created and verifies each one
// is gone afterwards. The seed posts of the service are left alone.
func cleanupPosts(ctx context.Context, config *Config, client *HTTPClient, created []Post, stats *Stats) error {
	log.Printf("🧹 Deleting %d posts...", len(created))

	var (
		deleted int64
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
					if err := deleteSinglePost(client, config, created[index].ID); err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to delete post %d: %v", created[index].ID, err)
						}
					} else {
						atomic.AddInt64(&deleted, 1)
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

	stats.PostsDeleted = int(atomic.LoadInt64(&deleted))

	if failedCount := atomic.LoadInt64(&failed); failedCount > 0 {
		return fmt.Errorf("%d of %d deletions failed", failedCount, len(created))
	}

	log.Printf("✅ Deleted %d posts", stats.PostsDeleted)

	return nil
}

// deleteSinglePost removes one post, checks the confirmation message and
// makes sure a follow-up lookup reports the id as unknown.
func deleteSinglePost(client *HTTPClient, config *Config, id int64) error {
	u := fmt.Sprintf("%s/api/posts/%d", config.BaseURL, id)

	resp, err := client.Delete(u)
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

	var msg MessageResponse
	if err := unmarshalJSON(body, &msg); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	want := fmt.Sprintf("Post with id %d has been deleted successfully.", id)
	if msg.Message != want {
		return fmt.Errorf("unexpected delete confirmation: %q", msg.Message)
	}

	// The id must be gone now
	check, err := client.Get(u)
	if err != nil {
		return fmt.Errorf("lookup after delete failed: %w", err)
	}

	checkBody, err := readResponseBody(check)
	if err != nil {
		return fmt.Errorf("failed to read lookup response: %w", err)
	}

	if check.StatusCode != StatusNotFound {
		return fmt.Errorf("deleted post still reachable: HTTP %d: %s", check.StatusCode, string(checkBody))
	}

	return nil
}
