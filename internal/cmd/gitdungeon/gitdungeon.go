// Package gitdungeon parses the gitdungeon command's flags and drives one
// run of the deterministic gameplay core to completion, matching the
// teacher's internal/cmd/<name>/<name>.go split between flag parsing and
// execution (e.g. internal/cmd/scenario/scenario.go).
package gitdungeon

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/louisbranch/gitdungeon/internal/chapter"
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/engine"
	"github.com/louisbranch/gitdungeon/internal/gameerr"
	"github.com/louisbranch/gitdungeon/internal/gevent"
	"github.com/louisbranch/gitdungeon/internal/platform/config"
	"github.com/louisbranch/gitdungeon/internal/platform/gitlog"
	"github.com/louisbranch/gitdungeon/internal/platform/logging"
)

// Exit codes per spec.md §6 "CLI surface".
const (
	ExitOK              = 0
	ExitInvalidArgs     = 2
	ExitContentPackLoad = 3
	ExitRepoRead        = 4
)

// Config holds the gitdungeon command's configuration, loaded from the
// environment via config.RunConfig and then overridden by flags.
type Config struct {
	config.RunConfig
	Lang     string
	AutoPlay bool
	Metrics  bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg.RunConfig); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.RepoPath, "repo", cfg.RepoPath, "path to the Git repository to play")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "root random seed")
	fs.StringVar(&cfg.Mutator, "mutator", cfg.Mutator, "mutator preset (standard, hard)")
	fs.StringVar(&cfg.ContentDir, "content-dir", cfg.ContentDir, "content pack directory to load in addition to the built-in base pack")
	fs.StringVar(&cfg.SavePath, "save", cfg.SavePath, "path to write the save document to on exit")
	fs.StringVar(&cfg.DailySeed, "daily", cfg.DailySeed, "derive the seed from a calendar date (YYYY-MM-DD) instead of -seed")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log output format (text, json)")
	fs.StringVar(&cfg.Lang, "lang", "en", "UI language tag (display only, never affects state)")
	fs.BoolVar(&cfg.AutoPlay, "auto-play", false, "advisory: let an auto-play policy supply actions when no input is given")
	fs.BoolVar(&cfg.Metrics, "metrics", false, "advisory: print a metrics summary alongside the event log")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads content, reads the repository, starts a run, drives it to
// completion with the actions nextAction picks, and writes the save
// document. It returns
// an error tagged with the exit code the caller should use (§6).
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return exitErr{code: ExitInvalidArgs, err: err}
	}

	logger := logging.New(errOut, slog.LevelInfo, logging.Format(cfg.LogFormat))

	reg, err := loadRegistry(cfg.ContentDir)
	if err != nil {
		return exitErr{code: ExitContentPackLoad, err: err}
	}

	commits, err := gitlog.Read(ctx, cfg.RepoPath)
	if err != nil {
		return exitErr{code: ExitRepoRead, err: err}
	}

	seed := cfg.Seed
	if cfg.DailySeed != "" {
		seed = seedFromDate(cfg.DailySeed)
	}

	mutator := chapter.StandardMutator
	if cfg.Mutator == chapter.HardMutator.Name {
		mutator = chapter.HardMutator
	}

	runID := engine.NewRunID()
	state, events, err := engine.NewRun(reg, commits, seed, mutator, runID)
	if err != nil {
		return exitErr{code: ExitRepoRead, err: err}
	}
	logEvents(logger, events)

	var log []engine.ActionRecord
	consecutiveErrors := 0
	for !state.IsGameOver {
		action := nextAction(state, consecutiveErrors)
		_, stepEvents := engine.Apply(reg, state, action)
		logEvents(logger, stepEvents)
		log = append(log, engine.FromAction(action))

		if len(stepEvents) == 1 && stepEvents[0].Type == gevent.TypeError {
			consecutiveErrors++
			if consecutiveErrors >= maxConsecutivePolicyErrors {
				return exitErr{code: ExitRepoRead, err: gameerr.New(gameerr.CodeInvariantViolation,
					"built-in auto-play policy made no progress for %d consecutive actions", consecutiveErrors)}
			}
			continue
		}
		consecutiveErrors = 0
	}

	if cfg.Metrics {
		fmt.Fprintf(out, "chapters_completed=%d enemies_defeated=%d gold=%d victory=%t\n",
			len(state.ChaptersCompleted), len(state.EnemiesDefeated), state.Player.Gold, state.IsVictory)
	}

	if cfg.SavePath != "" {
		doc := engine.Save(state, reg.PackIDs, log)
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return exitErr{code: ExitInvalidArgs, err: err}
		}
		if err := os.WriteFile(cfg.SavePath, data, 0o644); err != nil {
			return exitErr{code: ExitInvalidArgs, err: err}
		}
	}

	return nil
}

// nextAction is the CLI's built-in fallback policy for unattended play:
// in battle it plays the first card in hand, and ends the turn instead
// when the hand is empty or the previous action was rejected (e.g. the
// card was not affordable); it takes the first event choice, skips every
// shop, takes the first card of a reward offer (or skips an offer with
// no cards), and otherwise advances the route. The real auto-play policy
// §1 names as an external collaborator can replace this by supplying
// actions itself; a headless run still needs something that terminates.
func nextAction(state *engine.GameState, failuresSoFar int) engine.Action {
	switch state.EncounterKind {
	case engine.EncounterBattle:
		if failuresSoFar == 0 && state.Battle != nil && len(state.Battle.Deck.Hand) > 0 {
			return engine.Action{Kind: engine.ActionPlayCard, HandIndex: 0}
		}
		return engine.Action{Kind: engine.ActionEndTurn}
	case engine.EncounterEvent:
		return engine.Action{Kind: engine.ActionEventChoice, ChoiceIndex: 0}
	case engine.EncounterShop:
		return engine.Action{Kind: engine.ActionShopSkip}
	case engine.EncounterReward:
		if state.Reward != nil && len(state.Reward.CardOffers) > 0 {
			return engine.Action{Kind: engine.ActionRewardPick, RewardOption: "card", RewardCardIndex: 0}
		}
		return engine.Action{Kind: engine.ActionRewardPick, RewardOption: "skip"}
	default:
		return engine.Action{Kind: engine.ActionAdvanceNode}
	}
}

// maxConsecutivePolicyErrors bounds the fallback auto-play loop so a
// content/engine bug that makes every action illegal fails the run
// instead of hanging the process forever.
const maxConsecutivePolicyErrors = 20

// loadRegistry builds the content registry from the built-in base pack
// plus an optional directory of YAML overlays (§4.2 "content pack").
func loadRegistry(contentDir string) (*content.Registry, error) {
	if contentDir == "" {
		return content.Build(content.DefaultBase())
	}
	overlay, err := content.LoadPackDir(contentDir)
	if err != nil {
		return nil, err
	}
	return content.Build(content.DefaultBase(), overlay)
}

// seedFromDate derives a deterministic seed from a calendar date string
// (§6 "A daily-challenge mode derives the seed from a given calendar
// date"), reusing the xxhash primitive internal/rng already depends on.
func seedFromDate(date string) int64 {
	return int64(xxhash.Sum64String(date))
}

// logEvents writes one structured log line per emitted event; the
// gameplay core itself never logs (§5), so this is strictly CLI-side.
func logEvents(logger *slog.Logger, events []gevent.Event) {
	for _, e := range events {
		logger.Info(string(e.Type), "seq", e.Seq, "actor", string(e.Actor), "payload", e.Payload)
	}
}

// exitErr pairs an error with the process exit code it should produce.
type exitErr struct {
	code int
	err  error
}

func (e exitErr) Error() string { return e.err.Error() }
func (e exitErr) Unwrap() error { return e.err }

// ExitCode extracts the exit code a Run error should produce, falling
// back to a generic invalid-argument code for unrecognized errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	if gameerr.GetCode(err) != "" {
		return ExitInvalidArgs
	}
	return ExitInvalidArgs
}
