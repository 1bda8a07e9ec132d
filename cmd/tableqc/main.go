// Command tableqc validates and cleans tabular data files (CSV and Excel).
// It discovers input files, validates each against structural checks and
// caller expectations, optionally runs the cleaning pipeline, and writes
// cleaned data, quality reports and summary statistics to the output
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"tableqc/internal/cleaner"
	"tableqc/internal/config"
	"tableqc/internal/exporter"
	"tableqc/internal/files"
	"tableqc/internal/infrastructure"
	"tableqc/internal/loader"
	"tableqc/internal/reporter"
	"tableqc/internal/validator"
	"tableqc/pkg/contracts/domain"
)

func main() {
	if err := run(); err != nil {
		printError("Error: " + err.Error())
		os.Exit(1)
	}
}

// tally accumulates per-file outcomes across workers.
type tally struct {
	mu      sync.Mutex
	passed  int
	failed  int
	errored int
}

func (t *tally) add(valid bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if valid {
		t.passed++
	} else {
		t.failed++
	}
}

func (t *tally) addError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errored++
}

func run() error {
	var (
		in              = flag.String("in", "", "input file or directory (default: config paths.input_dir)")
		out             = flag.String("out", "", "output directory (default: config paths.output_dir)")
		configFile      = flag.String("config", "", "optional YAML config file")
		requiredColumns = flag.String("required-columns", "", "comma-separated column names that must be present")
		validateOnly    = flag.Bool("validate-only", false, "validate without cleaning or writing cleaned data")
		dropDuplicates  = flag.Bool("drop-duplicates", true, "remove exact duplicate rows, keeping the first")
		fillMissing     = flag.String("fill-missing", "", "missing-value strategy: none, drop, mean, median, mode, forward_fill, backward_fill")
		encoding        = flag.String("encoding", "", "CSV input encoding: utf-8, latin-1, windows-1252")
		sheet           = flag.String("sheet", "", "Excel sheet name (default: first sheet)")
		bom             = flag.Bool("bom", false, "prefix cleaned CSV files with a UTF-8 BOM for Excel")
		verbose         = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags override config; track which were set explicitly so defaults
	// do not clobber configured values.
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *in == "" {
		*in = cfg.Paths.InputDir
	}
	if *out == "" {
		*out = cfg.Paths.OutputDir
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	if err := files.EnsureOutputDir(*out); err != nil {
		return err
	}

	cfg.Logging.FilePath = cfg.LogPath()
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "starting tableqc",
		slog.String("input", *in),
		slog.String("output", *out),
		slog.Bool("validate_only", *validateOnly))

	vopts, err := validationOptions(cfg, *requiredColumns, explicit["required-columns"])
	if err != nil {
		return err
	}
	copts, err := cleaningOptions(cfg, *dropDuplicates, explicit["drop-duplicates"], *fillMissing, explicit["fill-missing"])
	if err != nil {
		return err
	}

	discovered, err := files.Discover(*in)
	if err != nil {
		return err
	}
	if len(discovered) == 0 {
		return fmt.Errorf("no tabular files found in %s", *in)
	}

	fmt.Println(styleBanner.Render("tableqc - tabular data validation and cleaning"))
	printInfo(fmt.Sprintf("Processing %d file(s) from %s", len(discovered), *in))

	history := validator.NewHistory()
	deps := &pipeline{
		loader:    loader.New(logger),
		validator: validator.New(logger, history),
		cleaner:   cleaner.New(logger),
		exporter:  exporter.NewCSVWriter(logger),
		reporter:  reporter.New(logger),
		logger:    logger,

		outputDir:    *out,
		validateOnly: *validateOnly,
		loadOpts:     loader.Options{Encoding: *encoding, Sheet: *sheet},
		writeOpts:    exporter.WriteOptions{BOMPrefix: *bom},
		validateOpts: vopts,
		cleanOpts:    copts,
	}

	var counts tally
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for _, fi := range discovered {
		fi := fi
		g.Go(func() error {
			valid, err := deps.processFile(gctx, fi)
			if err != nil {
				counts.addError()
				printError(fmt.Sprintf("  %s: %v", fi.Name, err))
				logger.ErrorContext(gctx, "file processing failed",
					slog.String("file", fi.Name),
					slog.String("error", err.Error()))
				// Keep processing the remaining files.
				return nil
			}
			counts.add(valid)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	summaryPath := filepath.Join(*out, "validation_summary.txt")
	summary := reporter.ValidationSummary(history.Records())
	if err := os.WriteFile(summaryPath, []byte(summary+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write validation summary: %w", err)
	}

	fmt.Println()
	printInfo("Processing summary")
	printSuccess(fmt.Sprintf("  Passed:  %d", counts.passed))
	if counts.failed > 0 {
		printWarn(fmt.Sprintf("  Failed:  %d", counts.failed))
	}
	if counts.errored > 0 {
		printError(fmt.Sprintf("  Errors:  %d", counts.errored))
	}
	printInfo(fmt.Sprintf("  Summary: %s", summaryPath))

	logger.InfoContext(ctx, "run complete",
		slog.Int("passed", counts.passed),
		slog.Int("failed", counts.failed),
		slog.Int("errors", counts.errored))

	if counts.errored > 0 {
		return fmt.Errorf("%d file(s) could not be processed", counts.errored)
	}
	return nil
}

// pipeline bundles the engine components and per-run settings shared by all
// file workers.
type pipeline struct {
	loader    *loader.Loader
	validator *validator.Validator
	cleaner   *cleaner.Cleaner
	exporter  *exporter.CSVWriter
	reporter  *reporter.Reporter
	logger    *slog.Logger

	outputDir    string
	validateOnly bool
	loadOpts     loader.Options
	writeOpts    exporter.WriteOptions
	validateOpts validator.Options
	cleanOpts    cleaner.Options
}

// processFile runs the load -> validate -> clean -> export flow for one
// file. It returns the validation verdict; a non-nil error means the file
// could not be processed at all.
func (p *pipeline) processFile(ctx context.Context, fi files.FileInfo) (bool, error) {
	table, err := p.loader.Load(ctx, fi.Path, p.loadOpts)
	if err != nil {
		return false, err
	}

	result := p.validator.Validate(ctx, table, p.validateOpts)
	stem := strings.TrimSuffix(fi.Name, filepath.Ext(fi.Name))

	if result.Valid {
		printSuccess(fmt.Sprintf("  %s: PASSED (score %d/100)", fi.Name, result.Score))
	} else {
		printWarn(fmt.Sprintf("  %s: FAILED (score %d/100, %d errors)", fi.Name, result.Score, len(result.Errors())))
	}

	if p.validateOnly {
		reportPath := filepath.Join(p.outputDir, "validation_"+stem+".txt")
		return result.Valid, p.reporter.GenerateReport(table, nil, result, nil, reportPath, fi.Name)
	}

	cleaned, cleaning := p.cleaner.Clean(ctx, table, p.cleanOpts)

	cleanedPath := filepath.Join(p.outputDir, exporter.CleanedFileName(fi.Name))
	if err := p.exporter.WriteTable(cleanedPath, cleaned, p.writeOpts); err != nil {
		return result.Valid, err
	}

	reportPath := filepath.Join(p.outputDir, "report_"+stem+".txt")
	if err := p.reporter.GenerateReport(table, cleaned, result, &cleaning, reportPath, fi.Name); err != nil {
		return result.Valid, err
	}

	statsPath := filepath.Join(p.outputDir, "stats_"+stem+".txt")
	if err := p.reporter.WriteSummaryStatistics(cleaned, statsPath); err != nil {
		return result.Valid, err
	}

	return result.Valid, nil
}

// validationOptions resolves validator options from config and flags. The
// flag wins when set, even if empty.
func validationOptions(cfg *config.Config, requiredFlag string, flagSet bool) (validator.Options, error) {
	opts := validator.Options{}

	required := cfg.Validation.RequiredColumns
	if flagSet {
		required = nil
		for _, name := range strings.Split(requiredFlag, ",") {
			if name = strings.TrimSpace(name); name != "" {
				required = append(required, name)
			}
		}
	}
	opts.RequiredColumns = required

	if len(cfg.Validation.ExpectedKinds) > 0 {
		opts.ExpectedKinds = make(map[string]domain.Kind, len(cfg.Validation.ExpectedKinds))
		for name, kindName := range cfg.Validation.ExpectedKinds {
			kind, err := domain.ParseKind(kindName)
			if err != nil {
				return opts, fmt.Errorf("invalid expected kind for column %q: %w", name, err)
			}
			opts.ExpectedKinds[name] = kind
		}
	}

	return opts, nil
}

// cleaningOptions resolves cleaner options from config and flags.
func cleaningOptions(cfg *config.Config, dropDuplicates, dropSet bool, fillMissing string, fillSet bool) (cleaner.Options, error) {
	opts := cleaner.Options{
		DropDuplicates:         cfg.Cleaning.DropDuplicates,
		TrimWhitespace:         cfg.Cleaning.TrimWhitespace,
		StandardizeColumnNames: cfg.Cleaning.StandardizeColumnNames,
	}
	if dropSet {
		opts.DropDuplicates = dropDuplicates
	}

	strategyName := cfg.Cleaning.MissingStrategy
	if fillSet {
		strategyName = fillMissing
	}
	strategy, err := cleaner.ParseStrategy(strategyName)
	if err != nil {
		return opts, err
	}
	opts.MissingStrategy = strategy

	return opts, nil
}
