package pipeline

import (
	"log/slog"

	"github.com/google/uuid"

	"censuslink/internal/blocking"
	"censuslink/internal/config"
	"censuslink/internal/linker"
	"censuslink/internal/relations"
	"censuslink/internal/scoring"
	"censuslink/internal/verified"
)

// ProgressFunc receives phase completion updates, percent in [0,100].
type ProgressFunc func(phase string, percent int)

// Runner executes linkage operations with shared configuration.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	runID    string
	progress ProgressFunc
}

// NewRunner builds a runner. A nil progress function disables reporting.
func NewRunner(cfg *config.Config, logger *slog.Logger, progress ProgressFunc) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		runID:    uuid.NewString(),
		progress: progress,
	}
}

// RunID identifies this runner's invocations in logs and reports.
func (r *Runner) RunID() string {
	return r.runID
}

func (r *Runner) report(phase string, percent int) {
	if r.progress != nil {
		r.progress(phase, percent)
	}
}

func (r *Runner) blockingPolicy() blocking.Policy {
	if r.cfg.Matching.BlockingPolicy == "permissive" {
		return blocking.PolicyPermissive
	}
	return blocking.PolicyStrict
}

func (r *Runner) cutoffs() linker.Cutoffs {
	return linker.Cutoffs{
		Floor:    r.cfg.Matching.ScoreFloor,
		Tier1Min: r.cfg.Matching.Tier1Min,
		Tier2Min: r.cfg.Matching.Tier2Min,
	}
}

func (r *Runner) params() scoring.Params {
	p := scoring.Default()
	p.RegressionYears = r.cfg.Matching.RegressionYears
	p.DedupYearGap = r.cfg.Matching.DedupYearGap
	p.DefaultBirthPlace = r.cfg.Matching.DefaultBirthPlace
	return p
}

func (r *Runner) boostOptions(mode scoring.Mode, params scoring.Params, freq *scoring.Frequencies) linker.BoostOptions {
	opts := linker.DefaultBoostOptions()
	opts.Mode = mode
	opts.Params = params
	opts.Freq = freq
	opts.Cutoffs = r.cutoffs()
	opts.Floor = r.cfg.Boosting.Floor
	opts.HeadBonus = r.cfg.Boosting.HeadBonus
	opts.HeadNameCutoff = r.cfg.Boosting.HeadNameCutoff
	opts.SpouseBonus = r.cfg.Boosting.SpouseBonus
	opts.ChildBonus = r.cfg.Boosting.ChildBonus
	opts.ParentBonus = r.cfg.Boosting.ParentBonus
	opts.CoResidenceBonus = r.cfg.Boosting.CoResidenceBonus
	opts.BatchSize = r.cfg.Matching.BatchSize
	return opts
}

func (r *Runner) relationOptions() relations.Options {
	opts := relations.DefaultOptions()
	opts.MinMemberScore = r.cfg.Relations.MinMemberScore
	return opts
}

func (r *Runner) propagationPolicy() verified.Policy {
	return verified.Policy{
		SymmetricSiblings: r.cfg.Relations.SymmetricSiblings,
		SymmetricCousins:  r.cfg.Relations.SymmetricCousins,
	}
}
