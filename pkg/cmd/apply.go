package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"pathctl/pkg/config"
	"pathctl/pkg/errors"
	"pathctl/pkg/manifest"
	"pathctl/pkg/metrics"
	"pathctl/pkg/pathutil"
	"pathctl/pkg/report"
	"pathctl/pkg/types"
)

// proxyDecorator is used for dynamic progress bar text
type proxyDecorator struct{ text string }

func (p *proxyDecorator) Decor(ctx decor.Statistics) string { return p.text }
func (p *proxyDecorator) Sync() (chan int, bool)            { return nil, false }
func (p *proxyDecorator) GetConf() decor.WC                 { return decor.WC{} }
func (p *proxyDecorator) SetConf(wc decor.WC)               {}
func (p *proxyDecorator) SetText(s string)                  { p.text = s }

// newApplyCmd applies batch manifests
func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <manifest>...",
		Short: "Apply batch manifests and generate reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, pu, err := setup()
			if err != nil {
				return err
			}

			if err := pu.CreateDirectory(cfg.OutputDir); err != nil {
				return errors.Wrap(err, errors.ErrorTypeFile, "failed to create output directory")
			}

			log.Info().
				Strs("manifests", args).
				Int("maxParallel", cfg.MaxParallel).
				Strs("outputs", cfg.OutputFormats).
				Str("outputDir", cfg.OutputDir).
				Msg("starting apply")

			return runApply(cfg, pu, args)
		},
	}
}

// runApply fans manifests out across the worker pool
func runApply(cfg *config.Config, pu *pathutil.PathUtil, manifests []string) error {
	p := mpb.New(mpb.WithWidth(80))

	sem := make(chan struct{}, cfg.MaxParallel)
	var wg sync.WaitGroup
	results := make(chan types.ManifestResult, len(manifests))

	for _, name := range manifests {
		wg.Add(1)
		sem <- struct{}{}

		mainBar := p.New(
			0,
			mpb.BarStyle().Rbound("|"),
			mpb.PrependDecorators(
				decor.Name(fmt.Sprintf("%-18s", filepath.Base(name)), decor.WC{W: 20, C: decor.DidentRight}),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("%d/%d", decor.WC{W: 8}),
				decor.Name(" | "),
				decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 4}),
			),
		)

		phaseProxy := &proxyDecorator{text: "starting"}

		phaseBar := p.New(
			1,
			mpb.NopStyle(),
			mpb.PrependDecorators(decor.Name(strings.Repeat(" ", 20))),
			mpb.AppendDecorators(phaseProxy),
		)

		go func(mf string, b *mpb.Bar, phase *proxyDecorator, phaseBar *mpb.Bar) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					b.Abort(false)
					b.SetTotal(b.Current(), true)
					phaseBar.SetCurrent(1)
					phaseBar.SetTotal(1, true)
					log.Error().Interface("panic", r).Stack().Str("manifest", mf).Msg("manifest goroutine panic")
					results <- types.ManifestResult{Manifest: mf, Err: fmt.Errorf("panic: %v", r)}
				}
			}()

			setPhase := func(text string) {
				phase.SetText(text)
				log.Info().Str("manifest", mf).Str("phase", text).Msg("phase change")
			}

			res, err := applyManifest(cfg, pu, mf, b, setPhase)
			if err != nil {
				b.Abort(false)
				b.SetTotal(b.Current(), true)
				setPhase("failed")
				phaseBar.SetCurrent(1)
				phaseBar.SetTotal(1, true)
				log.Error().Str("manifest", mf).Err(err).Msg("manifest apply failed")
				results <- types.ManifestResult{Manifest: mf, Err: err}
				return
			}

			setPhase("done")
			phaseBar.SetCurrent(1)
			phaseBar.SetTotal(1, true)
			log.Info().Str("manifest", mf).Int("ops", len(res)).Msg("manifest applied")
			results <- types.ManifestResult{Manifest: mf, Results: res}
		}(name, mainBar, phaseProxy, phaseBar)
	}

	// Wait for workers, close and drain results
	wg.Wait()
	close(results)

	var failed []string
	var agg []types.AggOp
	var manifestFiles []report.ManifestFiles

	for r := range results {
		if r.Err != nil {
			failed = append(failed, r.Manifest)
			continue
		}
		anyFailed := false
		for _, res := range r.Results {
			status := "ok"
			if !res.OK {
				status = "failed"
				anyFailed = true
			}
			agg = append(agg, types.AggOp{
				Manifest: r.Manifest,
				Verb:     res.Verb,
				Path:     res.Path,
				Status:   status,
				Detail:   res.Detail,
			})
		}
		if anyFailed {
			failed = append(failed, r.Manifest)
		}
		base := filepath.Base(r.Manifest)
		manifestFiles = append(manifestFiles, report.ManifestFiles{
			Manifest: r.Manifest,
			HTML:     base + ".html",
			CSV:      base + ".csv",
		})
	}

	reporter := report.NewReporter(pu)
	if err := reporter.WriteAggregatedHTML(cfg.OutputDir, agg, manifestFiles); err != nil {
		log.Error().Err(err).Msg("write aggregated HTML failed")
	}

	// Export Prometheus metrics if enabled
	if cfg.MetricsEnabled {
		if err := exportPrometheusMetrics(pu, cfg.MetricsFile, agg, failed); err != nil {
			log.Error().Err(err).Msg("failed to export Prometheus metrics")
			// Don't fail the entire run for metrics errors
		} else {
			log.Info().Str("file", cfg.MetricsFile).Msg("Prometheus metrics written")
		}
	}

	if len(failed) > 0 {
		log.Error().Strs("failedManifests", failed).Msg("some manifests failed")
		return fmt.Errorf("some manifests failed: %v", failed)
	}

	log.Info().Msg("all manifests applied successfully")
	fmt.Printf("All manifests applied successfully\n")
	return nil
}

// applyManifest parses one manifest, applies its ops in order and writes the
// per-manifest reports
func applyManifest(
	cfg *config.Config,
	pu *pathutil.PathUtil,
	name string,
	bar *mpb.Bar,
	setPhase func(string),
) ([]types.OpResult, error) {
	l := log.With().Str("manifest", name).Logger()

	setPhase("parsing")
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read manifest")
	}
	ops, err := manifest.Parse(string(data))
	if err != nil {
		return nil, err
	}
	bar.SetTotal(int64(len(ops)), false)
	l.Info().Int("ops", len(ops)).Msg("manifest parsed")

	setPhase("applying")
	results := applyOps(pu, ops, &l, func() { bar.Increment() })

	setPhase("reporting")
	reporter := report.NewReporter(pu)
	base := filepath.Join(cfg.OutputDir, filepath.Base(name))
	for _, f := range cfg.OutputFormats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "html":
			htmlFile := base + ".html"
			if err := reporter.GenerateHTML(results, htmlFile); err != nil {
				l.Error().Err(err).Str("file", htmlFile).Msg("write HTML failed")
				return nil, err
			}
			l.Info().Str("file", htmlFile).Msg("HTML generated")
		case "csv":
			csvFile := base + ".csv"
			if err := reporter.GenerateCSV(results, csvFile); err != nil {
				l.Error().Err(err).Str("file", csvFile).Msg("write CSV failed")
				return nil, err
			}
			l.Info().Str("file", csvFile).Msg("CSV generated")
		case "json":
			jsonFile := base + ".json"
			if err := reporter.GenerateJSON(results, jsonFile); err != nil {
				l.Error().Err(err).Str("file", jsonFile).Msg("write JSON failed")
				return nil, err
			}
			l.Info().Str("file", jsonFile).Msg("JSON generated")
		default:
			l.Warn().Str("format", f).Msg("unknown output format")
		}
	}

	bar.SetTotal(int64(len(ops)), true)
	return results, nil
}

// applyOps runs ops strictly in order; a failed op is recorded and the rest
// still run, so the report shows the full picture
func applyOps(pu *pathutil.PathUtil, ops []types.Op, l *zerolog.Logger, onOp func()) []types.OpResult {
	results := make([]types.OpResult, 0, len(ops))
	for _, op := range ops {
		res := types.OpResult{Verb: op.Verb, Path: op.Path, OK: true}
		switch op.Verb {
		case types.VerbMkdir:
			if err := pu.CreateDirectory(op.Path); err != nil {
				res.OK = false
				res.Detail = err.Error()
			}
		case types.VerbTouch:
			ok, err := pu.CreateFile(op.Path, []byte(op.Data))
			if err != nil {
				res.OK = false
				res.Detail = err.Error()
			} else if !ok {
				res.OK = false
				res.Detail = "file creation reported failure"
			}
		case types.VerbRm:
			if err := pu.Delete(op.Path); err != nil {
				res.OK = false
				res.Detail = err.Error()
			}
		}
		if res.OK {
			l.Debug().Str("verb", op.Verb).Str("path", op.Path).Msg("op applied")
		} else {
			l.Error().Str("verb", op.Verb).Str("path", op.Path).Str("detail", res.Detail).Msg("op failed")
		}
		results = append(results, res)
		onOp()
	}
	return results
}

// exportPrometheusMetrics exports metrics in Prometheus format
func exportPrometheusMetrics(pu *pathutil.PathUtil, metricsFile string, agg []types.AggOp, failed []string) error {
	exporter := metrics.NewPrometheusExporter()
	metricsData := exporter.ExportMetrics(agg, failed)

	ok, err := pu.CreateFile(metricsFile, []byte(metricsData))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create metrics directory")
	}
	if !ok {
		return errors.FileErrorf("failed to write metrics file %s", metricsFile)
	}
	return nil
}
