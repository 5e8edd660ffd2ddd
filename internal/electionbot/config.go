package electionbot

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/electionbot/core/config"
	"github.com/m3rciful/electionbot/internal/election"
)

const (
	// DefaultCandidatePhoto is the image sent after the candidate list.
	DefaultCandidatePhoto = "cacawa.png"
	defaultFetchTimeout   = 10
)

// ElectionConfig points the bot at its upstream documents.
type ElectionConfig struct {
	QuickCountURL       string `yaml:"quickcount_url" envconfig:"QUICKCOUNT_URL"`
	CandidatesURL       string `yaml:"candidates_url" envconfig:"CANDIDATES_URL"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds" envconfig:"FETCH_TIMEOUT_SECONDS"`
	CandidatePhoto      string `yaml:"candidate_photo" envconfig:"CANDIDATE_PHOTO"`
}

// Config is the full bot configuration: the shared core plus the election section.
type Config struct {
	coreconfig.Config `yaml:",inline"`
	Election          ElectionConfig `yaml:"election"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Normalize validates the core section and then the election section.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}
	return c.Election.Normalize()
}

// Normalize fills defaults and checks that both URLs are absolute http(s) URLs.
func (e *ElectionConfig) Normalize() error {
	e.QuickCountURL = strings.TrimSpace(e.QuickCountURL)
	if e.QuickCountURL == "" {
		e.QuickCountURL = election.DefaultQuickCountURL
	}
	e.CandidatesURL = strings.TrimSpace(e.CandidatesURL)
	if e.CandidatesURL == "" {
		e.CandidatesURL = election.DefaultCandidatesURL
	}
	if e.FetchTimeoutSeconds < 0 {
		return errors.New("election.fetch_timeout_seconds must be >= 0")
	}
	if e.FetchTimeoutSeconds == 0 {
		e.FetchTimeoutSeconds = defaultFetchTimeout
	}
	if strings.TrimSpace(e.CandidatePhoto) == "" {
		e.CandidatePhoto = DefaultCandidatePhoto
	}

	if err := checkURL("election.quickcount_url", e.QuickCountURL); err != nil {
		return err
	}
	return checkURL("election.candidates_url", e.CandidatesURL)
}

// FetchTimeout is FetchTimeoutSeconds as a duration.
func (e ElectionConfig) FetchTimeout() time.Duration {
	return time.Duration(e.FetchTimeoutSeconds) * time.Second
}

// ClientOptions maps the section onto the fetcher options.
func (e ElectionConfig) ClientOptions() election.ClientOptions {
	return election.ClientOptions{
		QuickCountURL: e.QuickCountURL,
		CandidatesURL: e.CandidatesURL,
		Timeout:       e.FetchTimeout(),
	}
}

func checkURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: want an absolute http(s) URL", field, raw)
	}
	return nil
}

// LoadConfig reads the bot configuration from path and the environment.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.LoadInto(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadElectionConfig reads only the election section, without requiring a bot
// token. path may be empty.
func LoadElectionConfig(path string) (ElectionConfig, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return ElectionConfig{}, err
	}
	if err := cfg.Election.Normalize(); err != nil {
		return ElectionConfig{}, err
	}
	return cfg.Election, nil
}
