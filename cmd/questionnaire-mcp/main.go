// questionnaire-mcp serves the questionnaire engine over MCP (stdio transport).
//
// Usage:
//
//	questionnaire-mcp            # serve on stdin/stdout
//	questionnaire-mcp --version
package main

import (
	"fmt"
	"os"
	"questionnaire_backend/internal/mcptools"

	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("questionnaire-mcp v%s\n", mcptools.Version)
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", os.Args[1])
			os.Exit(1)
		}
	}

	// stdout carries the protocol, errors go to stderr
	if err := server.ServeStdio(mcptools.NewServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
