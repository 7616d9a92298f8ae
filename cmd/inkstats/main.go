package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abrezinsky/inkstats/internal/app"
	"github.com/abrezinsky/inkstats/internal/logger"
	"github.com/abrezinsky/inkstats/pkg/statink"
)

var (
	version = "dev"
)

func main() {
	port := flag.Int("port", 8081, "HTTP server port")
	dbPath := flag.String("db", "inkstats.db", "SQLite database path")
	frontendOrigin := flag.String("frontend-origin", "", "Frontend origin for CORS and share links (empty allows any origin)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	httpLog := flag.Bool("httplog", false, "Log every HTTP request")
	syncReference := flag.Bool("sync", false, "Refresh the weapon table from stat.ink before serving")
	statinkURL := flag.String("statink", statink.DefaultBaseURL, "stat.ink API base URL")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `inkstats - competitive ranking statistics server

Usage:
  inkstats [options]

Options:
  -port int             HTTP server port (default 8081)
  -db string            SQLite database path (default "inkstats.db")
  -frontend-origin str  Frontend origin for CORS and share links
  -loglevel str         Log level: debug, info, warn, error (default "info")
  -httplog              Log every HTTP request
  -sync                 Refresh the weapon table from stat.ink before serving
  -statink str          stat.ink API base URL
  -version              Show version and exit
  -help                 Show this help message

Examples:
  inkstats                                  # Run on port 8081 with inkstats.db
  inkstats -sync                            # Refresh weapon data, then serve
  inkstats -port 80 -db /data/stats.db      # Production example
  inkstats -frontend-origin https://stats.example.com

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("inkstats %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))
	if *httpLog {
		appLog.EnableHTTPLogging()
	}

	statinkClient := statink.NewHTTPClient(*statinkURL, appLog)

	a, err := app.New(appLog, *dbPath, *frontendOrigin, statinkClient, *syncReference)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", *port)
	if err := a.Run(addr); err != nil {
		log.Fatal(err)
	}
}
