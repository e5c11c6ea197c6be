package hetscan_api

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/karyolab/hetscan/logger"
)

// Pipeline ties the stages together over one configuration, one tally store
// and one run ID
type Pipeline struct {
	Config *Config
	Store  *TallyStore
	RunID  string
}

func NewPipeline(config *Config) (*Pipeline, error) {
	if err := os.MkdirAll(config.OutputRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create the output directory: %w", err)
	}
	store, err := OpenTallyStore(config.TallyDBPath())
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		Config: config,
		Store:  store,
		RunID:  uuid.NewString(),
	}, nil
}

func (p *Pipeline) Close() error {
	return p.Store.Close()
}

// Verify matches metadata SampleIDs to input files and writes the
// verification table and file index
func (p *Pipeline) Verify() error {
	cohorts, err := DiscoverCohorts(p.Config.InputRoot)
	if err != nil {
		return err
	}
	files, err := VerifyCohorts(cohorts, p.Config.FileCheckPath(), p.Config.GzIndexPath())
	if err != nil {
		return err
	}

	normal := 0
	for _, file := range files {
		if file.Note == NoteNormal {
			normal++
		} else {
			logger.Warn("sample file problem",
				zap.String("cohort", file.Cohort),
				zap.String("sample", file.SampleID),
				zap.String("note", file.Note),
			)
		}
	}
	logger.Info("verified input files",
		zap.String("run", p.RunID),
		zap.Int("cohorts", len(cohorts)),
		zap.Int("normal", normal),
		zap.Int("problems", len(files)-normal),
	)
	return nil
}

// Filter runs the filter engine over every sample file across a bounded
// worker pool. Files are independent so no ordering is guaranteed between
// them. A failing file is reported but does not stop the others.
func (p *Pipeline) Filter() error {
	cohorts, err := DiscoverCohorts(p.Config.InputRoot)
	if err != nil {
		return err
	}

	group := new(errgroup.Group)
	group.SetLimit(p.Config.Workers)

	// The coordinator lock serializes result recording, tally appends and
	// failure collection. Workers only read shared state.
	var mu sync.Mutex
	failures := []error{}

	for _, cohort := range cohorts {
		cohort := cohort
		for _, row := range cohort.Rows {
			row := row
			group.Go(func() error {
				if p.Config.Resume {
					done, err := p.Store.Has(cohort.Name, row.SampleID)
					if err == nil && done {
						logger.Info("already filtered, skipping",
							zap.String("cohort", cohort.Name),
							zap.String("sample", row.SampleID),
						)
						return nil
					}
				}

				result, err := p.filterSample(cohort, row)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					logger.Error("failed to filter sample",
						zap.String("cohort", cohort.Name),
						zap.String("sample", row.SampleID),
						zap.Error(err),
					)
					failures = append(failures, err)
					return nil
				}
				if err := p.Store.Record(p.RunID, *result); err != nil {
					failures = append(failures, err)
					return nil
				}
				if err := AppendRunningTally(p.Config.RunningTallyPath(), *result); err != nil {
					failures = append(failures, err)
					return nil
				}
				logger.Info("filtered sample",
					zap.String("cohort", result.Cohort),
					zap.String("sample", result.SampleID),
					zap.Int("n_records", result.NRecords),
					zap.Int("het_count", result.HetCount),
					zap.Int("malformed", result.MalformedCount),
					zap.String("skipped_ratio", fmt.Sprintf("%d/%d", result.MalformedCount, result.NRecords+result.MalformedCount)),
				)
				return nil
			})
		}
	}
	// Workers collect failures instead of returning them so one bad file
	// cannot cancel the rest, but any future error return must still surface
	if err := group.Wait(); err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d sample file(s) failed: %w", len(failures), errors.Join(failures...))
	}
	return nil
}

// filterSample locates and filters the file of one sample
func (p *Pipeline) filterSample(cohort Cohort, row MetadataRow) (*FilterResult, error) {
	path, note := FindSampleGZ(cohort.Dir, row.SampleID)
	if note != NoteNormal {
		return nil, fmt.Errorf("sample %s in cohort %s: %s", row.SampleID, cohort.Name, note)
	}

	outPath := p.Config.FilteredPath(cohort.Name, row.SampleID)
	result, err := FilterFile(path, outPath, p.Config.Thresholds())
	if err != nil {
		return nil, fmt.Errorf("sample %s in cohort %s: %w", row.SampleID, cohort.Name, err)
	}
	result.SampleID = row.SampleID
	result.Cohort = cohort.Name
	return result, nil
}

// Merge joins the recorded filter results with the metadata of every
// cohort. Per-cohort tables are written for clean cohorts, the combined
// table only when every cohort merged.
func (p *Pipeline) Merge() error {
	cohorts, err := DiscoverCohorts(p.Config.InputRoot)
	if err != nil {
		return err
	}

	all := []MergedRow{}
	failures := []error{}
	for _, cohort := range cohorts {
		results, err := p.Store.CohortResults(cohort.Name)
		if err != nil {
			return err
		}
		rows, err := MergeCohort(cohort, results)
		if err != nil {
			logger.Error("cohort merge aborted", zap.String("cohort", cohort.Name), zap.Error(err))
			failures = append(failures, err)
			continue
		}
		if err := WriteMergedTable(p.Config.CohortTablePath(cohort.Name), rows); err != nil {
			return err
		}
		logger.Info("merged cohort", zap.String("cohort", cohort.Name), zap.Int("samples", len(rows)))
		all = append(all, rows...)
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	return WriteMergedTable(p.Config.CombinedTablePath(), all)
}

// Export converts every per-cohort merged table to a parquet file
func (p *Pipeline) Export() error {
	cohorts, err := DiscoverCohorts(p.Config.InputRoot)
	if err != nil {
		return err
	}
	for _, cohort := range cohorts {
		tablePath := p.Config.CohortTablePath(cohort.Name)
		parquetPath := p.Config.ParquetPath(cohort.Name)
		if err := ExportCohortParquet(tablePath, parquetPath); err != nil {
			return fmt.Errorf("cohort %s: %w", cohort.Name, err)
		}
		logger.Info("exported cohort", zap.String("cohort", cohort.Name), zap.String("parquet", parquetPath))
	}
	return nil
}

// Report writes the combined cohort summary report
func (p *Pipeline) Report() error {
	if err := WriteReport(p.Config.CombinedTablePath(), p.Config.ReportPath()); err != nil {
		return err
	}
	logger.Info("wrote report", zap.String("path", p.Config.ReportPath()))
	return nil
}

// Run sequences all stages and halts on the first failure
func (p *Pipeline) Run() error {
	stages := []struct {
		name string
		run  func() error
	}{
		{"verify", p.Verify},
		{"filter", p.Filter},
		{"merge", p.Merge},
		{"export", p.Export},
		{"report", p.Report},
	}
	for _, stage := range stages {
		if err := stage.run(); err != nil {
			return fmt.Errorf("stage %s: %w", stage.name, err)
		}
	}
	return nil
}
