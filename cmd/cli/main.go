package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"surveystat/adapters/excel"
	"surveystat/adapters/postgres"
	"surveystat/adapters/stats/designs"
	"surveystat/adapters/stats/tests"
	"surveystat/app"
	"surveystat/domain/core"
	"surveystat/domain/estimation"
	"surveystat/domain/survey"
	"surveystat/internal"
	"surveystat/internal/config"
	"surveystat/internal/profiling"
	"surveystat/internal/testkit"
	"surveystat/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; explicit environment wins.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "surveystat",
		Short: "Survey estimation engine: weights, estimates, variance, and significance tests",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newTestsCmd(),
		newProfileCmd(),
		newSeedCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type analyzeOptions struct {
	surveyID     string
	method       string
	confidence   string
	designEffect float64
	variables    []string
	frameArg     string
	testsArg     string
	withProfile  bool
	store        bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [data-file]",
		Short: "Run the full estimation pipeline over a response export",
		Long: `Run weighting, population estimation, and the variance summary over an
exported response file (.xlsx, .csv, or .json), with optional significance
tests and a response profile. The result is printed as indented JSON.

The population frame and the test batch are JSON, inline or @file:

Example: surveystat analyze responses.xlsx --method stratified \
  --frame '{"stratification_variable":"region","population_proportions":{"north":0.6,"south":0.4}}' \
  --tests '[{"name":"group_effect","type":"t_test","variables":["group","score"]}]' \
  --variables score,satisfaction --profile --store`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runAnalyze(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.surveyID, "survey-id", "", "Survey identifier recorded with the run")
	cmd.Flags().StringVar(&opts.method, "method", "", "Sampling method: simple_random|stratified|cluster|systematic")
	cmd.Flags().StringVar(&opts.confidence, "confidence", "", "Confidence level: 90%|95%|99%")
	cmd.Flags().Float64Var(&opts.designEffect, "design-effect", 0, "Design effect multiplier for the variance summary")
	cmd.Flags().StringSliceVar(&opts.variables, "variables", nil, "Variables to estimate (default: every observed field)")
	cmd.Flags().StringVar(&opts.frameArg, "frame", "", "Population frame as JSON, inline or @file")
	cmd.Flags().StringVar(&opts.testsArg, "tests", "", "Test specifications as a JSON array, inline or @file")
	cmd.Flags().BoolVar(&opts.withProfile, "profile", false, "Include a response profile in the result")
	cmd.Flags().BoolVar(&opts.store, "store", false, "Archive the run (requires DATABASE_URL)")

	return cmd
}

func newTestsCmd() *cobra.Command {
	var (
		testsArg string
		method   string
		frameArg string
	)

	cmd := &cobra.Command{
		Use:   "tests [data-file]",
		Short: "Run a significance test batch over a response export",
		Long: `Run only the significance test batch: weights are computed for the chosen
sampling method, then every specification in the batch runs independently.

Example: surveystat tests responses.csv \
  --tests '[{"name":"regional_pref","type":"chi_square","variables":["region","satisfaction"]}]'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runTests(path, testsArg, method, frameArg)
		},
	}

	cmd.Flags().StringVar(&testsArg, "tests", "", "Test specifications as a JSON array, inline or @file")
	cmd.Flags().StringVar(&method, "method", "", "Sampling method used for weighting")
	cmd.Flags().StringVar(&frameArg, "frame", "", "Population frame as JSON, inline or @file")

	return cmd
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [data-file]",
		Short: "Profile a response export without running estimation",
		Long: `Summarize a response export: completion metrics, per-field distributions,
and the data quality report.

Example: surveystat profile responses.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runProfile(path)
		},
	}

	return cmd
}

func newSeedCmd() *cobra.Command {
	var (
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "seed [output-file]",
		Short: "Write a synthetic response export for local experiments",
		Long: `Generate a deterministic batch of synthetic survey responses and write it
to the given path. The format follows the file extension (.xlsx or .csv).

Example: surveystat seed responses.xlsx --count 500 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(args[0], count, seed)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Number of responses to generate (default 200)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic generation")

	return cmd
}

func newRunsCmd() *cobra.Command {
	var (
		surveyID string
		method   string
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived analysis runs",
		Long: `List archived analysis runs, newest first. Requires DATABASE_URL.

Example: surveystat runs --survey-id sat-2026 --method stratified --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(cmd.Context(), surveyID, method, limit, offset)
		},
	}

	cmd.Flags().StringVar(&surveyID, "survey-id", "", "Only runs for this survey")
	cmd.Flags().StringVar(&method, "method", "", "Only runs weighted with this sampling method")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum runs to list (default from ARCHIVE_LIST_LIMIT)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Runs to skip, for paging")

	return cmd
}

func runAnalyze(ctx context.Context, path string, opts analyzeOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	responses, err := loadResponses(path, cfg, logger)
	if err != nil {
		return err
	}

	req := app.AnalysisRequest{
		SurveyID:        core.SurveyID(opts.surveyID),
		Responses:       responses,
		Method:          survey.SamplingMethod(firstNonEmpty(opts.method, cfg.Analysis.DefaultMethod)),
		ConfidenceLevel: survey.ConfidenceLevel(firstNonEmpty(opts.confidence, cfg.Analysis.DefaultConfidenceLevel)),
		Variables:       core.VariableKeys(opts.variables),
		DesignEffect:    opts.designEffect,
		WithProfile:     opts.withProfile,
		Store:           opts.store,
	}
	if req.DesignEffect <= 0 {
		req.DesignEffect = cfg.Analysis.DefaultDesignEffect
	}
	if opts.frameArg != "" {
		if err := loadJSONArg(opts.frameArg, &req.Frame); err != nil {
			return fmt.Errorf("invalid --frame: %w", err)
		}
	}
	if opts.testsArg != "" {
		if err := loadJSONArg(opts.testsArg, &req.Tests); err != nil {
			return fmt.Errorf("invalid --tests: %w", err)
		}
	}

	var archive ports.ArchivePort
	if opts.store {
		var cleanup func()
		archive, cleanup, err = openArchive(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		if archive == nil {
			logger.Warn("--store requested but DATABASE_URL is not set; run will not be archived")
			req.Store = false
		}
	}

	service := app.NewAnalysisService(archive, logger)
	result, err := service.Run(ctx, req)
	if err != nil {
		return err
	}

	return printJSON(result)
}

func runTests(path, testsArg, method, frameArg string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if testsArg == "" {
		return fmt.Errorf("--tests is required")
	}
	var specs []estimation.TestSpec
	if err := loadJSONArg(testsArg, &specs); err != nil {
		return fmt.Errorf("invalid --tests: %w", err)
	}

	var frame survey.PopulationFrame
	if frameArg != "" {
		if err := loadJSONArg(frameArg, &frame); err != nil {
			return fmt.Errorf("invalid --frame: %w", err)
		}
	}

	responses, err := loadResponses(path, cfg, logger)
	if err != nil {
		return err
	}

	weights, err := designs.NewCalculator().ComputeWeights(
		responses,
		frame,
		survey.SamplingMethod(firstNonEmpty(method, cfg.Analysis.DefaultMethod)),
	)
	if err != nil {
		return err
	}

	outcomes := tests.NewRunner().RunAll(responses, weights.Weights, specs)
	return printJSON(outcomes)
}

func runProfile(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	responses, err := loadResponses(path, cfg, logger)
	if err != nil {
		return err
	}

	profile := profiling.Profile(responses, nil)
	quality := profiling.ScoreQuality(responses, nil)
	profile.Quality = &quality

	return printJSON(profile)
}

func runSeed(path string, count int, seed int64) error {
	genConfig := testkit.DefaultGeneratorConfig()
	if count > 0 {
		genConfig.ResponseCount = count
	}
	genConfig.Seed = seed

	records := testkit.NewSurveyGenerator(genConfig).GenerateResponses()
	if err := excel.NewResponseWriter().WriteResponses(path, records); err != nil {
		return err
	}

	fmt.Printf("Wrote %d synthetic responses to %s\n", len(records), path)
	return nil
}

func runRuns(ctx context.Context, surveyID, method string, limit, offset int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	archive, cleanup, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	if archive == nil {
		return fmt.Errorf("runs requires DATABASE_URL to be set")
	}

	filters := ports.RunFilters{Limit: limit, Offset: offset}
	if filters.Limit <= 0 {
		filters.Limit = cfg.Archive.ListLimit
	}
	if surveyID != "" {
		id := core.SurveyID(surveyID)
		filters.SurveyID = &id
	}
	if method != "" {
		m := survey.ParseSamplingMethod(method)
		filters.Method = &m
	}

	summaries, err := archive.ListRuns(ctx, filters)
	if err != nil {
		return err
	}

	return printJSON(summaries)
}

func newLogger(cfg *config.Config) *internal.Logger {
	return internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))
}

// loadResponses reads a response export, falling back to SURVEY_FILE when no
// path is given on the command line.
func loadResponses(path string, cfg *config.Config, logger *internal.Logger) ([]survey.ResponseRecord, error) {
	if path == "" {
		path = cfg.Data.InputFile
	}
	if path == "" {
		return nil, fmt.Errorf("no data file given (pass a path or set SURVEY_FILE)")
	}
	return excel.NewResponseReader(logger).LoadResponses(path)
}

// openArchive connects to the run archive when DATABASE_URL is set. A nil
// archive with a nil error means persistence is disabled.
func openArchive(cfg *config.Config) (ports.ArchivePort, func(), error) {
	if !cfg.Database.Enabled {
		return nil, func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to archive database: %w", err)
	}
	return postgres.NewArchiveRepository(db), func() { db.Close() }, nil
}

// loadJSONArg decodes a JSON flag value. Arguments starting with @ name a
// file; anything else parses inline.
func loadJSONArg(arg string, v interface{}) error {
	data := []byte(arg)
	if strings.HasPrefix(arg, "@") {
		var err error
		data, err = os.ReadFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return fmt.Errorf("failed to read JSON argument file: %w", err)
		}
	}
	return json.Unmarshal(data, v)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
