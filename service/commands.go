package service

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"postfeed/app/config"
	"postfeed/app/models"
	"postfeed/app/observability"
	"postfeed/app/services"
)

// HandleCommand runs a feed subcommand and returns an exit code.
func HandleCommand(args []string, stdout io.Writer) int {
	if len(args) < 1 {
		printHelp(stdout)
		return 1
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "serve":
		return serve(stdout)
	case "feed":
		return printFeed(args[1:], stdout)
	case "help":
		printHelp(stdout)
		return 0
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", cmd)
		printHelp(stdout)
		return 1
	}
}

// printHelp prints help for the subcommands.
func printHelp(w io.Writer) {
	helpText := `Usage: postfeed <command> [options]

Commands:
  help                                   Display this help message.
  version                                Show version information.
  serve                                  Run the feed JSON API (configured via FEED_* env vars).
  feed [--search s] [--sort mode] [--bookmarks]
                                         Print the seeded feed as the shell would show it.
`
	fmt.Fprintln(w, helpText)
}

func loadRuntime(stdout io.Writer) (config.Config, *slog.Logger, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return config.Config{}, nil, false
	}
	logger, err := observability.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return config.Config{}, nil, false
	}
	return cfg, logger, true
}

// serve runs the API until SIGINT or SIGTERM.
func serve(stdout io.Writer) int {
	cfg, logger, ok := loadRuntime(stdout)
	if !ok {
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RunAppServer(ctx, cfg, logger); err != nil {
		logger.Error("feed service stopped", "error", err)
		return 1
	}
	return 0
}

// printFeed builds a session, projects it and writes it as a table.
func printFeed(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("feed", flag.ContinueOnError)
	fs.SetOutput(stdout)
	search := fs.String("search", "", "case-insensitive text to look for in title or content")
	sortBy := fs.String("sort", string(services.SortLatest), "latest, mostVoted, or anything else for store order")
	bookmarks := fs.Bool("bookmarks", false, "only show bookmarked posts")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, logger, ok := loadRuntime(stdout)
	if !ok {
		return 1
	}
	app, err := NewApp(cfg, logger)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	posts, err := app.Store.List()
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	if *bookmarks {
		posts = services.Bookmarked(posts)
	}
	writeFeed(stdout, services.Project(posts, *search, services.ParseSortMode(*sortBy)))
	return 0
}

func writeFeed(w io.Writer, posts []models.Post) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tTAGS\tUP\tDOWN\tSAVED")
	for _, p := range posts {
		saved := ""
		if p.Bookmarked {
			saved = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.Title, p.Author, strings.Join(p.Tags, ","), p.Upvotes, p.Downvotes, saved)
	}
	tw.Flush()
}
