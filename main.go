package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/devancy/tfidf-search-server/search"
)

// config holds the application configuration values derived from flags.
type config struct {
	inputPath  string
	maxResults int
	policy     search.Policy
}

func main() {
	setupLogging()
	cfg := parseFlags()

	log.Println("Running TF-IDF Search Server")

	src, closeSrc, err := openInput(cfg.inputPath)
	if err != nil {
		log.Fatalf("Initialization error: %v", err)
	}
	defer closeSrc()

	server, err := loadServer(src)
	if err != nil {
		log.Fatalf("Initialization error: %v", err)
	}

	if err := runInteractiveSearch(server, cfg); err != nil {
		log.Fatalf("Runtime error: %v", err)
	}
}

// setupLogging configures the log output format.
func setupLogging() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.SetPrefix("[Search Server] ")
}

// parseFlags parses command-line flags and returns a config struct.
func parseFlags() (cfg config) {
	var parallel bool
	flag.StringVar(&cfg.inputPath, "f", "", "document batch file (defaults to stdin)")
	flag.BoolVar(&parallel, "c", false, "run searches under the parallel policy")
	flag.IntVar(&cfg.maxResults, "n", search.MaxResultDocumentCount, "maximum number of results to display")
	flag.Parse()
	if parallel {
		cfg.policy = search.Parallel
	} else {
		cfg.policy = search.Sequential
	}
	return cfg
}

// openInput returns the batch reader for cfg's -f flag, or stdin if empty.
func openInput(path string) (io.Reader, func() error, error) {
	if path == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open document batch: %w", err)
	}
	return f, f.Close, nil
}

// loadServer reads the demonstration batch format from src:
//
//	<stop words, space-separated>
//	<decimal document count N>
//	<status> <ratings, comma-separated or "-"> <document text>   (N lines)
//
// and returns a *search.Server populated in line order (document ids are
// assigned 0..N-1 by line position).
func loadServer(src io.Reader) (*search.Server, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("missing stop-words line")
	}
	stopWords := scanner.Text()

	server, err := search.New(stopWords)
	if err != nil {
		return nil, fmt.Errorf("invalid stop words: %w", err)
	}

	if !scanner.Scan() {
		return nil, fmt.Errorf("missing document count line")
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("invalid document count: %w", err)
	}

	start := time.Now()
	for i := 0; i < count; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("expected %d document lines, got %d", count, i)
		}
		status, ratings, text, err := parseDocumentLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if err := server.AddDocument(i, text, status, ratings); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}
	log.Printf("Indexed %d documents in %v", count, time.Since(start))

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading document batch: %w", err)
	}
	return server, nil
}

// parseDocumentLine splits a "<status> <ratings> <text>" line into its
// fields. ratings is "-" for an empty ratings vector, else comma-separated
// integers.
func parseDocumentLine(line string) (search.Status, []int, string, error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) != 3 {
		return 0, nil, "", fmt.Errorf("malformed document line %q", line)
	}
	status, err := parseStatus(fields[0])
	if err != nil {
		return 0, nil, "", err
	}
	ratings, err := parseRatings(fields[1])
	if err != nil {
		return 0, nil, "", err
	}
	return status, ratings, fields[2], nil
}

func parseStatus(token string) (search.Status, error) {
	switch token {
	case "ACTUAL":
		return search.Actual, nil
	case "IRRELEVANT":
		return search.Irrelevant, nil
	case "BANNED":
		return search.Banned, nil
	case "REMOVED":
		return search.Removed, nil
	default:
		return 0, fmt.Errorf("unknown status %q", token)
	}
}

func parseRatings(token string) ([]int, error) {
	if token == "-" {
		return nil, nil
	}
	parts := strings.Split(token, ",")
	ratings := make([]int, len(parts))
	for i, p := range parts {
		r, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid rating %q: %w", p, err)
		}
		ratings[i] = r
	}
	return ratings, nil
}

// runInteractiveSearch handles the main user interaction loop for searching.
func runInteractiveSearch(server *search.Server, cfg config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".search_history.tmp",
		InterruptPrompt: "^C\n",
		EOFPrompt:       "exit\n",
		HistoryLimit:    100,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue // allow clearing the line with Ctrl+C
		}
		if err == io.EOF || strings.TrimSpace(line) == "exit" {
			return nil
		}
		queryString := strings.TrimSpace(line)
		if queryString == "" {
			continue
		}

		results, err := performSearch(server, cfg.policy, queryString)
		if err != nil {
			return err
		}
		displayResults(results, cfg.maxResults)
	}
}

// performSearch runs the query under cfg's policy and logs its duration.
func performSearch(server *search.Server, policy search.Policy, query string) ([]search.Document, error) {
	start := time.Now()
	results, err := server.FindTopDocumentsPolicy(policy, query, search.ActualOnly)
	log.Printf("Search for %q completed in %v, found %d results.", query, time.Since(start), len(results))
	return results, err
}

// displayResults prints each result in the spec's single-line format,
// capped at maxResults.
func displayResults(results []search.Document, maxResults int) {
	if len(results) == 0 {
		fmt.Println("No matches found.")
		return
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	for _, doc := range results {
		fmt.Printf("{ document_id = %d, relevance = %g, rating = %d }\n", doc.ID, doc.Relevance, doc.Rating)
	}
}
