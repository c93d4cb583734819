package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// liftlog-mcp serves the MCP tools over stdio for desktop clients, reading
// data from a remote LiftLog server through its REST API.
func main() {
	serverURL := flag.String("server", os.Getenv("LIFTLOG_URL"), "LiftLog server URL (default $LIFTLOG_URL)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlog-mcp", Version)
		return
	}

	// stdout carries the protocol; log to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-mcp -server <URL>\n")
		os.Exit(1)
	}

	s := mcp.New(mcp.NewHTTPClient(*serverURL), Version, log)
	log.Info("serving MCP over stdio", "server", *serverURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("stdio server failed", "error", err)
		os.Exit(1)
	}
}
