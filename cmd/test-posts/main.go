package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/AI-Engineer2025/Masterblog-API/internal/testposts"
)

// Default configuration constants.
const (
	// defaultNumPosts is the default number of posts to create
	defaultNumPosts = 1000
	// defaultWorkerMultiplier scales worker count with CPU cores
	defaultWorkerMultiplier = 2
	// defaultTimeout is the default HTTP request timeout
	defaultTimeout = 30 * time.Second
	// defaultTestTimeout bounds the whole run
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:5002", "Base URL of the service")
		numPosts   = flag.Int("posts", defaultNumPosts, "Number of posts to create")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for created posts (default: created_posts_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		cleanup    = flag.Bool("cleanup", true, "Delete created posts after the run")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testposts.ShowHelp()
		return
	}

	// Setup logging
	if err := testposts.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout for the whole run
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testposts.Config{
		BaseURL:    *baseURL,
		NumPosts:   *numPosts,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Cleanup:    *cleanup,
		Verbose:    *verbose,
	}

	// Run the test
	if err := testposts.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
