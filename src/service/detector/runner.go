package detector

import (
	"context"
	"errors"
	"sync"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/util"
)

// Runner executes all registered detectors over a parsed file set
type Runner struct {
	cfg       *config.Config
	detectors []Detector
}

// NewRunner creates a runner with the full detector registry. This is the one
// place detectors are wired up.
func NewRunner(cfg *config.Config, engine *similarity.Engine) *Runner {
	base := NewBaseDetector(engine, cfg)
	return &Runner{
		cfg: cfg,
		detectors: []Detector{
			NewExactMatchDetector(base, cfg.Detectors.ExactMatch),
			NewFunctionalDuplicationDetector(base, cfg.Detectors.Functional),
			NewPatternDuplicationDetector(base, cfg.Detectors.Pattern),
			NewConfigurationDuplicationDetector(base, cfg.Detectors.Configuration),
			NewValidationDuplicationDetector(base, cfg.Detectors.Validation),
			NewErrorHandlingDuplicationDetector(base, cfg.Detectors.ErrorHandling),
			NewCacheImplementationDetector(base, cfg.Detectors.Cache),
			NewSingletonPatternDetector(base, cfg.Detectors.Singleton),
			NewServiceLayerDetector(base, cfg.Detectors.ServiceLayer),
		},
	}
}

// Detectors returns the registered detectors
func (r *Runner) Detectors() []Detector {
	return r.detectors
}

// active filters the registry to detectors that are enabled and whose
// duplication type is selected in the analysis config.
func (r *Runner) active() []Detector {
	var active []Detector
	for _, d := range r.detectors {
		if !d.IsEnabled() {
			util.Debug("Detector %s disabled, skipping", d.Kind())
			continue
		}
		if !r.cfg.Analysis.TypeEnabled(string(d.Kind().Type())) {
			util.Debug("Detector %s type %s not selected, skipping", d.Kind(), d.Kind().Type())
			continue
		}
		active = append(active, d)
	}
	return active
}

// Run executes the active detectors in parallel and merges their findings.
// A detector failure is recoverable: it is logged and its findings skipped,
// unless fail-fast is set or the context was canceled, which abort the run.
func (r *Runner) Run(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	active := r.active()
	util.Info("Running %d detectors on %d files", len(active), len(files))

	maxParallel := r.cfg.Concurrency.MaxParallelDetectors
	if maxParallel < 1 {
		maxParallel = 1
	}
	semaphore := make(chan struct{}, maxParallel)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		merged []model.DuplicationInstance
		runErr error
	)

	for _, d := range active {
		wg.Add(1)
		go func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			instances, err := d.Detect(ctx, files)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					if runErr == nil {
						runErr = err
					}
					return
				}
				util.Warn("Detector %s failed: %v", d.Kind(), err)
				if r.cfg.Detectors.FailFast && runErr == nil {
					runErr = err
				}
				return
			}
			util.Info("Detector %s found %d duplications", d.Kind(), len(instances))
			merged = append(merged, instances...)
		}()
	}

	wg.Wait()
	if runErr != nil {
		return nil, runErr
	}

	SortInstances(merged)
	return merged, nil
}
