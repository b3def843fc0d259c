// Copyright 2025 ConceptForge
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	exemplar "github.com/conceptforge/exemplar"
	"github.com/conceptforge/exemplar/ai"
	"github.com/conceptforge/exemplar/config"
	"github.com/conceptforge/exemplar/retrieval"
	"github.com/conceptforge/exemplar/storage"
	badgerstore "github.com/conceptforge/exemplar/storage/badger"
)

func main() {
	sharedFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to TOML configuration file",
		},
		&cli.StringFlag{
			Name:  "corpus",
			Usage: "Path to the corpus JSON file (overrides config)",
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Embedding cache path: JSON file, or directory for the badger backend",
		},
		&cli.StringFlag{
			Name:  "cache-backend",
			Usage: "Embedding cache backend (file, badger)",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
	}

	app := &cli.App{
		Name:  "exemplar",
		Usage: "Creative-corpus retrieval engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Retrieve reference examples for a creative brief",
				Action:    queryCommand,
				ArgsUsage: "<brief text>",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of examples to return",
						Value:   2,
					},
				}, sharedFlags...),
			},
			{
				Name:   "warm",
				Usage:  "Precompute embeddings for every corpus entry",
				Action: warmCommand,
				Flags:  sharedFlags,
			},
			{
				Name:   "stats",
				Usage:  "Print corpus, index, cache, and session statistics",
				Action: statsCommand,
				Flags:  sharedFlags,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig merges the optional config file with command-line
// overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := c.String("corpus"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := c.String("cache"); v != "" {
		cfg.Cache.Path = v
	}
	if v := c.String("cache-backend"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := c.String("embedding-host"); v != "" {
		cfg.Embedder.Host = v
	}
	if v := c.String("embedding-model"); v != "" {
		cfg.Embedder.Model = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine wires an engine from the merged configuration.
func buildEngine(cfg *config.Config) (*exemplar.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.Embedder.Host),
		ai.WithEmbeddingModel(cfg.Embedder.Model),
		ai.WithTimeout(cfg.Timeout()),
	)

	opts := []exemplar.EngineOption{exemplar.WithAIConfig(aiConfig)}

	switch cfg.Cache.Backend {
	case config.BackendBadger:
		backend, err := badgerstore.OpenBackend(cfg.Cache.Path, false)
		if err != nil {
			return nil, fmt.Errorf("opening badger cache: %w", err)
		}
		vectors, err := badgerstore.NewVectorStore(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		opts = append(opts, exemplar.WithVectorStore(vectors))
	default:
		if cfg.Cache.Path != "" {
			opts = append(opts, exemplar.WithVectorStore(storage.NewFileStore(cfg.Cache.Path)))
		}
	}

	var retrieverOpts []retrieval.Option
	if cfg.Retrieval.PoolSize > 0 {
		retrieverOpts = append(retrieverOpts, retrieval.WithPoolSize(cfg.Retrieval.PoolSize))
	}
	if cfg.Retrieval.RotationServes > 0 || cfg.Retrieval.RotationStride > 0 {
		retrieverOpts = append(retrieverOpts, retrieval.WithRotation(cfg.Retrieval.RotationServes, cfg.Retrieval.RotationStride))
	}
	if cfg.SessionTTL() > 0 {
		retrieverOpts = append(retrieverOpts, retrieval.WithTTL(cfg.SessionTTL()))
	}
	if len(retrieverOpts) > 0 {
		opts = append(opts, exemplar.WithRetrieverOptions(retrieverOpts...))
	}

	return exemplar.NewEngine(cfg.Corpus.Path, opts...)
}

func queryCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	results := engine.Retrieve(context.Background(), query, c.Int("count"))
	if len(results) == 0 {
		fmt.Println("no examples found")
		return nil
	}

	for i, result := range results {
		entry := result.Entry
		fmt.Printf("%d. %s / %s (%d)  score=%.3f\n", i+1, entry.Campaign, entry.Brand, entry.Year, result.Score)
		fmt.Printf("   %q\n", entry.Headline)
		fmt.Printf("   devices: %s\n", strings.Join(entry.RhetoricalDevices, ", "))
		if entry.Rationale != "" {
			fmt.Printf("   why it worked: %s\n", entry.Rationale)
		}
	}
	return nil
}

func warmCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	start := time.Now()
	computed, err := engine.Warm(context.Background())
	if err != nil {
		return fmt.Errorf("warm-up failed: %w", err)
	}

	fmt.Printf("computed %d embeddings in %s\n", computed, time.Since(start).Round(time.Millisecond))
	return nil
}

func statsCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats := engine.Stats()
	fmt.Printf("corpus entries:    %d\n", stats.Corpus.Entries)
	fmt.Printf("rejected records:  %d\n", stats.RejectedRecords)
	fmt.Printf("categories:        %d\n", stats.Corpus.Categories)
	fmt.Printf("devices:           %d\n", stats.Corpus.Devices)
	fmt.Printf("tags:              %d\n", stats.Corpus.Tags)
	fmt.Printf("indexed words:     %d\n", stats.Corpus.Words)
	fmt.Printf("embedded vectors:  %d\n", stats.EmbeddedVectors)
	fmt.Printf("live sessions:     %d\n", stats.LiveSessions)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
