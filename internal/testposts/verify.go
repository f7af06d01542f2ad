package testposts

import (
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
)

// verifyCollection checks the full listing against what was created.
func verifyCollection(config *Config, client *HTTPClient, created []Post) error {
	log.Println("🔍 Verifying the stored collection...")

	listed, err := fetchPosts(client, config.BaseURL+"/api/posts")
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	if len(listed) < len(created) {
		return fmt.Errorf("listing holds %d posts, expected at least %d", len(listed), len(created))
	}

	// Ids must be unique across the collection
	seen := make(map[int64]bool, len(listed))
	for _, p := range listed {
		if seen[p.ID] {
			return fmt.Errorf("duplicate id %d in listing", p.ID)
		}
		seen[p.ID] = true
	}

	// Every created post must be present
	for _, p := range created {
		if !seen[p.ID] {
			return fmt.Errorf("created post %d missing from listing", p.ID)
		}
	}

	log.Printf("✅ Collection verified: %d posts, all ids unique", len(listed))

	return nil
}

// verifySearch checks that searching for the run tag returns exactly the
// posts created by this run. The tag sits in every generated content, so
// posts from other runs or the seed never match.
func verifySearch(config *Config, client *HTTPClient, created []Post) error {
	log.Printf("🔎 Verifying search for run tag %s...", config.RunTag)

	u := config.BaseURL + "/api/posts?search=" + url.QueryEscape(config.RunTag)
	found, err := fetchPosts(client, u)
	if err != nil {
		return fmt.Errorf("search request failed: %w", err)
	}

	if len(found) != len(created) {
		return fmt.Errorf("search returned %d posts, expected %d", len(found), len(created))
	}

	for _, p := range found {
		if !strings.Contains(strings.ToLower(p.Content), strings.ToLower(config.RunTag)) {
			return fmt.Errorf("post %d matched the search without carrying the tag", p.ID)
		}
	}

	log.Printf("✅ Search verified: %d posts found", len(found))

	return nil
}

// verifySorting checks both sort directions on the title field and that
// an unknown direction is rejected.
func verifySorting(config *Config, client *HTTPClient) error {
	log.Println("🔀 Verifying sorted listings...")

	asc, err := fetchPosts(client, config.BaseURL+"/api/posts?sort=title&direction=asc")
	if err != nil {
		return fmt.Errorf("ascending listing failed: %w", err)
	}
	if !sort.SliceIsSorted(asc, func(i, j int) bool {
		return strings.ToLower(asc[i].Title) < strings.ToLower(asc[j].Title)
	}) {
		return fmt.Errorf("ascending listing is not sorted by title")
	}

	desc, err := fetchPosts(client, config.BaseURL+"/api/posts?sort=title&direction=desc")
	if err != nil {
		return fmt.Errorf("descending listing failed: %w", err)
	}
	if !sort.SliceIsSorted(desc, func(i, j int) bool {
		return strings.ToLower(desc[i].Title) > strings.ToLower(desc[j].Title)
	}) {
		return fmt.Errorf("descending listing is not sorted by title")
	}

	// An unknown direction must be rejected with a client error
	resp, err := client.Get(config.BaseURL + "/api/posts?sort=title&direction=sideways")
	if err != nil {
		return fmt.Errorf("invalid direction request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusBadRequest {
		return fmt.Errorf("invalid direction got HTTP %d: %s", resp.StatusCode, string(body))
	}

	var apiErr ErrorResponse
	if err := unmarshalJSON(body, &apiErr); err != nil {
		return fmt.Errorf("failed to parse error response: %w", err)
	}
	if apiErr.Error == "" {
		return fmt.Errorf("error body carries no error text: %s", string(body))
	}

	log.Println("✅ Sorting verified: asc, desc and rejection of unknown directions")

	return nil
}
