package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cuadra-dev/cuadra/internal/config"
	"github.com/cuadra-dev/cuadra/internal/gitops"
	"github.com/cuadra-dev/cuadra/internal/ledger"
	"github.com/cuadra-dev/cuadra/internal/logx"
	"github.com/cuadra-dev/cuadra/internal/model"
	"github.com/cuadra-dev/cuadra/internal/recon"
	"github.com/cuadra-dev/cuadra/internal/rules"
)

// env bundles everything a command needs from a ledger directory:
// config, the collection store, the rule set, and the logger.
type env struct {
	dir     string
	cfg     *config.Config
	store   *ledger.Store
	ruleSet []model.Rule
	log     zerolog.Logger
}

// openEnv loads config, collections, and rules from the ledger dir.
func openEnv(dir string, verbose bool) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading config (did you run cuadra init?): %w", err)
	}

	store, err := ledger.Open(absDir)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	ruleSet, err := rules.Load(absDir)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	return &env{
		dir:     absDir,
		cfg:     cfg,
		store:   store,
		ruleSet: ruleSet,
		log:     logx.New(verbose),
	}, nil
}

// commit saves the store and commits the ledger when auto-commit is on.
func (e *env) commit(message string) error {
	if err := e.store.Save(); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	if !e.cfg.Git.AutoCommit {
		return nil
	}
	hash, err := gitops.CommitIfChanged(e.dir, message, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("committing ledger: %w", err)
	}
	if hash != "" {
		e.log.Debug().Str("commit", hash).Str("message", message).Msg("ledger committed")
	}
	return nil
}

// matchOptions builds recon options from config defaults with optional
// per-invocation overrides (empty tolerance / zero window keep the
// configured values).
func (e *env) matchOptions(tolerance string, windowDays int, storeID string) (recon.Options, error) {
	opts := recon.DefaultOptions()

	if e.cfg.Matching.AmountTolerance != "" {
		tol, err := decimal.NewFromString(e.cfg.Matching.AmountTolerance)
		if err != nil {
			return recon.Options{}, fmt.Errorf("config amount_tolerance: %w", err)
		}
		opts.Tolerance = tol
	}
	if e.cfg.Matching.WindowDays > 0 {
		opts.WindowDays = e.cfg.Matching.WindowDays
	}

	if tolerance != "" {
		tol, err := decimal.NewFromString(tolerance)
		if err != nil {
			return recon.Options{}, fmt.Errorf("parsing --tolerance: %w", err)
		}
		opts.Tolerance = tol
	}
	if windowDays > 0 {
		opts.WindowDays = windowDays
	}
	opts.StoreID = storeID
	return opts, nil
}
