package testposts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with the specified timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET request failed: %w", err)
	}

	return resp, nil
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("POST request failed: %w", err)
	}

	return resp, nil
}

// Put performs a PUT request with JSON body.
func (c *HTTPClient) Put(url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create PUT request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PUT request failed: %w", err)
	}

	return resp, nil
}

// Delete performs a DELETE request.
func (c *HTTPClient) Delete(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create DELETE request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DELETE request failed: %w", err)
	}

	return resp, nil
}

// marshalJSON marshals data to JSON.
func marshalJSON(data interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("JSON marshaling failed: %w", err)
	}

	return jsonData, nil
}

// unmarshalJSON unmarshals JSON data.
func unmarshalJSON(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("JSON unmarshaling failed: %w", err)
	}

	return nil
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// fetchPosts retrieves a post listing and parses the array.
func fetchPosts(client *HTTPClient, url string) ([]Post, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var posts []Post
	if err := unmarshalJSON(body, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return posts, nil
}

// submitPosts creates all posts concurrently and returns them as stored
// by the service, ids included.
func submitPosts(ctx context.Context, config *Config, client *HTTPClient, posts []PostInput, stats *Stats) ([]Post, error) {
	log.Printf("📤 Submitting %d posts with %d workers...", len(posts), config.Workers)

	url := config.BaseURL + "/api/posts"

	// Each worker writes to its own indices, so no mutex is needed
	created := make([]Post, len(posts))

	var (
		submitted  int64
		successful int64
		failed     int64
	)

	// Progress reporting
	reportInterval := 1 * time.Second
	var lastReport atomic.Int64

	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					post, err := submitSinglePost(client, url, posts[index])

					atomic.AddInt64(&submitted, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to create post %d: %v", index, err)
						}
					} else {
						created[index] = post
						atomic.AddInt64(&successful, 1)
					}

					// Report progress at most once per interval
					now := time.Now().UnixNano()
					last := lastReport.Load()
					if now-last >= int64(reportInterval) && lastReport.CompareAndSwap(last, now) {
						log.Printf("📤 Submitted: %d/%d (created: %d, failed: %d)",
							atomic.LoadInt64(&submitted), len(posts),
							atomic.LoadInt64(&successful), atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	// Feed indices to workers
	go func() {
		defer close(indexChan)
		for i := range posts {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	// Filter out failed creations
	validPosts := make([]Post, 0, len(created))
	for _, p := range created {
		if p.ID != 0 {
			validPosts = append(validPosts, p)
		}
	}

	stats.PostsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.PostsCreated = len(validPosts)
	stats.PostsFailed = int(atomic.LoadInt64(&failed))

	log.Printf("✅ Post submission completed: created %d, failed %d", stats.PostsCreated, stats.PostsFailed)

	return validPosts, nil
}

// submitSinglePost creates one post and parses the stored result.
func submitSinglePost(client *HTTPClient, url string, input PostInput) (Post, error) {
	resp, err := client.Post(url, input)
	if err != nil {
		return Post{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Post{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusCreated {
		return Post{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var post Post
	if err := unmarshalJSON(body, &post); err != nil {
		return Post{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if post.ID == 0 {
		return Post{}, fmt.Errorf("response carries no id: %s", string(body))
	}

	return post, nil
}
