package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/rubpy/crawly/clog"
	livedoor "github.com/rubpy/livedoor-atompub"
	"github.com/rubpy/livedoor-atompub/atompub"
	"github.com/rubpy/livedoor-atompub/post"
)

//////////////////////////////////////////////////

const logHeader = "[example] "

var (
	flagLoginID  = pflag.String("login", os.Getenv("LIVEDOOR_LOGIN_ID"), "livedoor login ID (env LIVEDOOR_LOGIN_ID)")
	flagAPIKey   = pflag.String("api-key", os.Getenv("LIVEDOOR_API_KEY"), "AtomPub API key (env LIVEDOOR_API_KEY)")
	flagBlogID   = pflag.String("blog-id", "", "blog ID; defaults to the login ID")
	flagAuth     = pflag.String("auth", "wsse", "authentication scheme: basic or wsse")
	flagFile     = pflag.StringP("file", "f", "post.md", "post file with YAML front matter")
	flagDebug    = pflag.Bool("debug", false, "log requests")
	flagTimeout  = pflag.Duration("timeout", livedoor.DefaultSettings.RequestTimeout, "per-request timeout")
	flagNoRecord = pflag.Bool("no-record", false, "do not write the edit URL back into the post file")
)

//////////////////////////////////////////////////

func main() {
	pflag.Parse()

	level := slog.LevelInfo
	if *flagDebug {
		level = slog.LevelDebug
	}

	logFile := os.Stdout
	logger := slog.New(
		tint.NewHandler(logFile, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error(logHeader+"failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	if *flagLoginID == "" || *flagAPIKey == "" {
		return errors.New("login ID and API key are required")
	}

	authType, err := atompub.ParseAuthType(*flagAuth)
	if err != nil {
		return err
	}

	blogID := *flagBlogID
	if blogID == "" {
		blogID = *flagLoginID
	}

	settings := livedoor.DefaultSettings
	settings.RequestTimeout = *flagTimeout

	client, err := livedoor.NewClient(
		livedoor.WithLogger(logger),
		livedoor.WithCredentials(atompub.Credentials{
			Type:    authType,
			LoginID: *flagLoginID,
			APIKey:  *flagAPIKey,
		}),
		livedoor.WithBlogID(blogID),
		livedoor.WithSettings(settings),
	)
	if err != nil {
		return fmt.Errorf("livedoor.NewClient: %w", err)
	}

	p, err := post.ReadFile(*flagFile)
	if err != nil {
		return fmt.Errorf("post.ReadFile: %w", err)
	}

	params, err := p.Params()
	if err != nil {
		return fmt.Errorf("post.Params: %w", err)
	}

	var entry *livedoor.BlogEntry
	if p.EditURL != "" {
		entry, err = client.Edit(ctx, p.EditURL, params)
	} else {
		entry, err = client.Create(ctx, params)
	}
	if err != nil {
		return err
	}

	entry, err = client.Retrieve(ctx, entry.EditURL)
	if err != nil {
		return err
	}

	printEntry(entry)

	// ------------------------------

	remove, err := confirmDelete(ctx)
	if err != nil {
		return err
	}

	if remove {
		lp := clog.Params{
			Message: logHeader + "deleted",
			Level:   slog.LevelInfo,

			Values: clog.ParamGroup{
				"editURL": entry.EditURL,
			},
		}

		lp.Err = client.Delete(ctx, entry.EditURL)
		client.Log(ctx, lp)

		if lp.Err == nil && p.EditURL != "" {
			p.EditURL = ""
			return record(p)
		}

		return lp.Err
	}

	client.Log(ctx, clog.Params{
		Message: logHeader + "kept",
		Level:   slog.LevelInfo,

		Values: clog.ParamGroup{
			"editURL": entry.EditURL,
			"url":     entry.URL,
		},
	})

	if p.EditURL != entry.EditURL {
		p.EditURL = entry.EditURL
		return record(p)
	}

	return nil
}

func record(p *post.Post) error {
	if *flagNoRecord {
		return nil
	}

	b, err := p.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(*flagFile, b, 0o644)
}

// confirmDelete waits for Enter (delete) or Q (keep). Raw mode swallows
// SIGINT, so Ctrl+C and Esc are treated as keep.
func confirmDelete(ctx context.Context) (bool, error) {
	keys, err := keyboard.GetKeys(4)
	if err != nil {
		return false, fmt.Errorf("keyboard.GetKeys: %w", err)
	}
	defer keyboard.Close()

	fmt.Println("========================================")
	fmt.Println(" Controls:")
	fmt.Println("   Enter --- delete the entry")
	fmt.Println("   Q     --- keep the entry and quit")
	fmt.Println("========================================")

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()

		case e, ok := <-keys:
			if !ok {
				return false, nil
			}
			if e.Err != nil {
				return false, e.Err
			}

			switch {
			case e.Key == keyboard.KeyEnter:
				return true, nil

			case e.Rune == 'q' || e.Rune == 'Q',
				e.Key == keyboard.KeyEsc,
				e.Key == keyboard.KeyCtrlC:
				return false, nil
			}
		}
	}
}

func printEntry(entry *livedoor.BlogEntry) {
	fmt.Println("========================================")
	fmt.Println(" Title:     ", entry.Title)
	fmt.Println(" Status:    ", entry.Status.String())
	fmt.Println(" Categories:", entry.Categories)
	fmt.Println(" Edit URL:  ", entry.EditURL)
	fmt.Println(" URL:       ", entry.URL)
	fmt.Println(" Summary:   ", entry.Summary(80))
	fmt.Println("========================================")
	fmt.Println()
}
