package config

import "fmt"

// RunConfig describes the environment-sourced settings the CLI needs to
// start a run: repository location, determinism inputs, and content-pack
// overrides, per spec.md §6 "External Interfaces".
type RunConfig struct {
	RepoPath    string `env:"GITDUNGEON_REPO_PATH"`
	Seed        int64  `env:"GITDUNGEON_SEED"`
	Mutator     string `env:"GITDUNGEON_MUTATOR" envDefault:"standard"`
	ContentDir  string `env:"GITDUNGEON_CONTENT_DIR"`
	SavePath    string `env:"GITDUNGEON_SAVE_PATH"`
	DailySeed   string `env:"GITDUNGEON_DAILY_DATE"`
	LogFormat   string `env:"GITDUNGEON_LOG_FORMAT" envDefault:"text"`
}

// Validate reports the first missing required field, if any.
func (c RunConfig) Validate() error {
	if c.RepoPath == "" {
		return fmt.Errorf("config: GITDUNGEON_REPO_PATH is required")
	}
	return nil
}
