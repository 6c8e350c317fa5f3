// Command weather-cli is a terminal front end for the weather lookup. It reads
// one city name per line from stdin and prints the report or the notice.
// Type quit or send EOF to exit.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/city-weather/internal/adapter/openweather"
	"github.com/couchcryptid/city-weather/internal/config"
	"github.com/couchcryptid/city-weather/internal/observability"
	"github.com/couchcryptid/city-weather/internal/pipeline"
)

const prompt = "city> "

type searcher interface {
	Search(ctx context.Context, city string) (pipeline.Outcome, error)
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	client := openweather.NewClient(cfg.OWMAPIKey, cfg.OWMBaseURL, cfg.OWMTimeout, cfg.Unit, metrics, logger)
	p := pipeline.New(client, nil, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, p); err != nil {
		logger.Error("weather-cli failed", "error", err)
		os.Exit(1)
	}
}

// run executes the prompt loop until quit, EOF, or ctx is cancelled.
// Each line is sent as typed; only the quit command is matched after trimming.
func run(ctx context.Context, in io.Reader, out io.Writer, s searcher) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "quit") {
			return nil
		}

		res, err := s.Search(ctx, line)
		switch {
		case err == nil:
			for _, l := range res.State.Presentation.Lines {
				fmt.Fprintln(out, l)
			}
			fmt.Fprintf(out, "Background: %s\n", res.State.Presentation.Background)
		case res.Notice != nil:
			fmt.Fprintln(out, res.Notice.String())
		case errors.Is(err, context.Canceled):
			return nil
		default:
			fmt.Fprintln(out, err)
		}

		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, prompt)
	}
	return scanner.Err()
}
