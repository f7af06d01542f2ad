package testposts

import "time"

// Config holds configuration for the post test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumPosts   int           // Number of posts to create
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for created posts
	LogFile    string        // Log file for test output
	RunTag     string        // Marker embedded in every generated post
	Cleanup    bool          // Delete created posts after the run
	Verbose    bool          // Enable verbose logging
}

// PostInput is the payload submitted to the create endpoint
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Post represents a post as stored by the service
type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
}

// MessageResponse is the confirmation returned by the delete endpoint
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body returned by the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Stats holds test statistics
type Stats struct {
	PostsGenerated int
	PostsSubmitted int
	PostsCreated   int
	PostsFailed    int
	PostsUpdated   int
	PostsDeleted   int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
