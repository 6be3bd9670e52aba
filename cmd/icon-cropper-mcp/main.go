package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/icon-cropper-mcp/internal/config"
	"github.com/ironsheep/icon-cropper-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("icon-cropper-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("icon-cropper-mcp - MCP server for cropping icons out of screenshots")
			fmt.Println()
			fmt.Println("Usage: icon-cropper-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  ICON_CROPPER_CONFIG=path     Config file (default: config.yaml)")
			fmt.Println("  ICON_CROPPER_LOG_LEVEL=debug Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	configPath := os.Getenv("ICON_CROPPER_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if os.Getenv("ICON_CROPPER_LOG_LEVEL") == "debug" {
		log.Printf("Icon Cropper MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Workspace root: %s, %d page types configured", cfg.WorkspacesRoot, len(cfg.Pages))
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
