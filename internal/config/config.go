// Package config holds the settings every nbactions command runs with. A
// Config is built once at start-up and passed to each entry point.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/clintrovert/nbactions/pkg/types"
)

const (
	// DefaultOwner is the owner of this project's repository
	DefaultOwner = "wandb"
	// DefaultRepo is the name of this project's repository
	DefaultRepo = "nb_helpers"
	// DefaultHandoffFile is the file the split pipeline hands off through
	DefaultHandoffFile = "modified_colabs.json"
)

// ErrNoToken is returned when no GitHub token was configured
var ErrNoToken = errors.New("no GitHub token: pass --token or set GITHUB_TOKEN")

// Config is the process-wide configuration
type Config struct {
	// Token authenticates API calls; GITHUB_TOKEN is the ambient fallback.
	Token string `env:"GITHUB_TOKEN"`
	// Owner of the repository comments and issues are written to.
	Owner string `env:"NBACTIONS_OWNER" envDefault:"wandb"`
	// Repo is the name of the repository comments and issues are written to.
	Repo string `env:"NBACTIONS_REPO" envDefault:"nb_helpers"`
	// EventPath points at the JSON payload of the triggering event.
	EventPath string `env:"GITHUB_EVENT_PATH"`
	// APIURL overrides the REST endpoint, e.g. for GitHub Enterprise.
	APIURL string `env:"GITHUB_API_URL"`
	// HandoffFile is written by pr-links --handoff and read from artifacts.
	HandoffFile string `env:"NBACTIONS_HANDOFF_FILE" envDefault:"modified_colabs.json"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"NBACTIONS_LOG_LEVEL" envDefault:"info"`
	// ListenAddr is the webhook server address.
	ListenAddr string `env:"NBACTIONS_LISTEN_ADDR" envDefault:":8080"`
	// WebhookSecret validates webhook signatures when set.
	WebhookSecret string `env:"NBACTIONS_WEBHOOK_SECRET"`
}

// Load reads the optional dotenv files and then the process environment.
// Variables already set in the environment win over dotenv values.
func Load(dotenvFiles ...string) (*Config, error) {
	for _, name := range dotenvFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Repository returns the configured target repository
func (c *Config) Repository() types.RepositoryInfo {
	return types.RepositoryInfo{Owner: c.Owner, Name: c.Repo}
}

// Validate checks the settings every API-calling command needs
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return ErrNoToken
	}
	if c.Owner == "" || c.Repo == "" {
		return fmt.Errorf("owner and repo are required (got %q/%q)", c.Owner, c.Repo)
	}
	return nil
}
