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


// Package config loads TOML runtime configuration for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Backend names accepted in [cache].
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Config is the full runtime configuration.
type Config struct {
	Corpus    CorpusConfig    `toml:"corpus"`
	Cache     CacheConfig     `toml:"cache"`
	Embedder  EmbedderConfig  `toml:"embedder"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// CorpusConfig locates the corpus file.
type CorpusConfig struct {
	Path string `toml:"path"`
}

// CacheConfig controls embedding persistence.
type CacheConfig struct {
	// Path is a JSON file for the file backend, a directory for badger.
	Path    string `toml:"path"`
	Backend string `toml:"backend"`
}

// EmbedderConfig points at the embedding service.
type EmbedderConfig struct {
	Host           string `toml:"host"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// RetrievalConfig tunes ranking and session behavior. Zero values mean
// "use the engine defaults".
type RetrievalConfig struct {
	PoolSize       int `toml:"pool_size"`
	RotationServes int `toml:"rotation_serves"`
	RotationStride int `toml:"rotation_stride"`
	SessionTTL     int `toml:"session_ttl_hours"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: BackendFile,
		},
		Embedder: EmbedderConfig{
			Host:           "http://localhost:11434/v1",
			Model:          "embeddinggemma",
			TimeoutSeconds: 10,
		},
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Timeout returns the embedder timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Embedder.TimeoutSeconds) * time.Second
}

// SessionTTL returns the configured session TTL, or zero when unset.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Retrieval.SessionTTL) * time.Hour
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Corpus.Path == "" {
		return errors.New("config: corpus.path is required")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendBadger:
	default:
		return fmt.Errorf("config: unknown cache.backend %q", c.Cache.Backend)
	}
	if c.Embedder.TimeoutSeconds < 0 {
		return errors.New("config: embedder.timeout_seconds cannot be negative")
	}
	return nil
}
