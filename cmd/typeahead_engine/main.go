package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead-engine/api"
	"github.com/gcbaptista/go-typeahead-engine/internal/engine"
)

const maxRequestBodySize = 32 << 20 // 32 MiB

func main() {
	// Define command-line flags
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "8080", "Port to run the server on")
		dataDir = flag.String("data-dir", "./typeahead_data", "Directory to store collection data")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Typeahead Engine - Fuzzy typeahead matching and ranking over string collections\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                            # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /tmp/typeahead  # Use custom data directory\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Typeahead Engine v1.0.0\n")
		return
	}

	// Initialize the typeahead engine
	log.Printf("Using data directory: %s", *dataDir)
	typeaheadEngine := engine.NewEngine(*dataDir)
	defer typeaheadEngine.Close()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodySize))
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestIDMiddleware())

	// Setup API routes
	api.SetupRoutes(router, typeaheadEngine)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
