package testposts

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/AI-Engineer2025/Masterblog-API/pkg/logger"
)

// SetupLogging configures logging to write to both console and file.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Create log file with timestamp if not specified
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = fmt.Sprintf("test_log_%s.log", timestamp)
	}

	// Open log file
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}

	// Create multi-writer to write to both console and file
	multiWriter := io.MultiWriter(os.Stdout, file)

	// Set log output to multi-writer
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	log.Printf("📝 Logging to file: %s", logFile)

	return nil
}

// ShowHelp displays usage information.
func ShowHelp() {
	fmt.Print(`Masterblog Post Test Tool
=========================

A concurrent tool for exercising the Masterblog API end to end: it
creates posts, checks listing, search and sorting, rewrites content
through updates and optionally deletes everything it created.

Usage:
  go run cmd/test-posts/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:5002")
  -posts int
        Number of posts to create (default 1000)
  -workers int
        Number of concurrent workers (default: CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for created posts (default: created_posts_TIMESTAMP.json)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -cleanup
        Delete created posts after the run (default true)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run with default settings
  go run cmd/test-posts/main.go

  # Heavier run against another instance
  go run cmd/test-posts/main.go -posts 10000 -workers 16 -url http://localhost:8080

  # Keep the created posts around for inspection
  go run cmd/test-posts/main.go -cleanup=false

The tool expects a running Masterblog API instance. Start one with:
  go run cmd/main.go
`)
}
