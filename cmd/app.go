// Package cmd implements the cfo subcommands.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/assets"
	"github.com/etnz/cryptofolio/config"
	"github.com/etnz/cryptofolio/jsonapi"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
	"github.com/redis/go-redis/v9"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&updateCmd{}, "portfolio")
	c.Register(&reportCmd{}, "portfolio")
	c.Register(&historyCmd{}, "portfolio")
	c.Register(&checkCmd{}, "zakat")
	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataFile = flag.String("data", "", "Path to the history csv file, overrides CFO_DATA_FILE")
var envFile = flag.String("env", "", "Path to the .env file, default is .env in the current directory")

// LoadConfig loads the configuration from the -env file, and applies the -data flag.
func LoadConfig() (*config.Config, error) {
	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if *dataFile != "" {
		cfg.Data.File = *dataFile
	}
	return cfg, nil
}

// app holds everything an evaluation cycle needs.
type app struct {
	cfg     *config.Config
	tracker *cryptofolio.Tracker
	close   []func()
}

// newApp builds the tracker. When live is false, no source is connected
// and the tracker can only inspect the history.
func newApp(ctx context.Context, live bool) (*app, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg: cfg,
		tracker: &cryptofolio.Tracker{
			Store: cryptofolio.NewStore(cfg.Data.File),
			Gold:  cryptofolio.StaticGold(cfg.Gold.PriceGram),
		},
	}
	if !live {
		return a, nil
	}

	client, err := a.httpClient(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	cat, err := assets.New(ctx, cfg, client)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.close = append(a.close, cat.Close)
	a.tracker.Aggregator = &cryptofolio.Aggregator{Sources: cat.Sources, UseFallback: cfg.Data.UseMock}
	a.tracker.Gold = cat.Gold
	return a, nil
}

// httpClient returns a client caching responses in redis when REDIS_URL is set.
func (a *app) httpClient(ctx context.Context) (*http.Client, error) {
	if a.cfg.Cache.RedisURL == "" {
		return jsonapi.NewClient(), nil
	}
	rdb, err := jsonapi.ConnectRedis(ctx, a.cfg.Cache.RedisURL)
	if err != nil {
		return nil, err
	}
	a.close = append(a.close, func() {
		if err := rdb.Close(); err != nil && err != redis.ErrClosed {
			log.Printf("closing redis: %v", err)
		}
	})
	return jsonapi.NewCachingClient(rdb, a.cfg.Cache.TTL), nil
}

func (a *app) Close() {
	for _, f := range a.close {
		f()
	}
}

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// output writes md to stdout, as an html page when asHTML is set, styled for the terminal otherwise.
func output(title, md string, asHTML bool) error {
	if !asHTML {
		_, err := fmt.Fprint(stdout, renderMarkdown(md))
		return err
	}
	page, err := renderer.HTML(title, md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(stdout, page)
	return err
}

// renderMarkdown styles md for the terminal, md is returned as is if it cannot.
func renderMarkdown(md string) string {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		return md
	}
	return out
}
