package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/perturb/internal/config"
	"github.com/san-kum/perturb/internal/energy"
	"github.com/san-kum/perturb/internal/export"
	"github.com/san-kum/perturb/internal/metrics"
	"github.com/san-kum/perturb/internal/storage"
	"github.com/san-kum/perturb/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	samples    int
	lower      float64
	upper      float64
	workers    int
	epsRel     float64
	limit      int
	outFile    string
	noSave     bool

	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "perturb",
		Short: "perturbative energy-correction sweeps for helium-like atoms",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zcfg := zap.NewProductionConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".perturb", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "evaluate a sweep and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSweepFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "evaluate a sweep with a live progress view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSweepFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [epsrel...]",
		Short: "compare quadrature tolerances on the same sweep",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareTolerances,
	}
	addSweepFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.csv)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run data as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVARIANT\tLOWER\tUPPER\tSAMPLES\tEV\tANALYTICAL")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\t%t\t%t\n",
					name, p.Variant, p.Sweep.Lower, p.Sweep.Upper, p.Sweep.Samples,
					p.Output.ElectronVolts, p.Output.Analytical)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "print a preset as a YAML config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, listCmd, plotCmd, exportCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of sweep samples")
	cmd.Flags().Float64Var(&lower, "lower", config.DefaultLower, "sweep lower bound (m)")
	cmd.Flags().Float64Var(&upper, "upper", config.DefaultUpper, "sweep upper bound (m)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().Float64Var(&epsRel, "epsrel", 0, "quadrature relative tolerance")
	cmd.Flags().IntVar(&limit, "limit", 0, "quadrature subinterval limit")
}

// loadConfig resolves preset, config file, environment and flags, in that
// order of increasing precedence.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := config.DefaultPreset
	if len(args) > 0 {
		name = args[0]
	}

	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Preset = name
		}
	} else {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if applied := config.ApplyEnv(cfg); len(applied) > 0 {
		logger.Debug("environment overrides", zap.Strings("keys", applied))
	}

	flags := cmd.Flags()
	if flags.Changed("samples") {
		cfg.Sweep.Samples = samples
	}
	if flags.Changed("lower") {
		cfg.Sweep.Lower = lower
	}
	if flags.Changed("upper") {
		cfg.Sweep.Upper = upper
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("epsrel") {
		cfg.Quad.EpsRel = epsRel
	}
	if flags.Changed("limit") {
		cfg.Quad.Limit = limit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEvaluator(cfg *config.Config, l *zap.Logger) (*energy.Evaluator, error) {
	ev, err := energy.New(cfg.Evaluator(), l)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Defaults(ev.Analytical(), ev.HasAnalytical()) {
		ev.AddMetric(m)
	}
	return ev, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ev, err := newEvaluator(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("evaluating %s sweep (%d samples)...\n", cfg.Preset, cfg.Sweep.Samples)
	res, err := ev.Run(ctx)
	if err != nil {
		return err
	}
	return report(cfg, ev, res)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	// log lines would tear the alternate screen
	ev, err := newEvaluator(cfg, zap.NewNop())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := viz.RunLive(ctx, ev, cfg.Preset)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("sweep cancelled")
			return nil
		}
		return err
	}
	return report(cfg, ev, res)
}

func report(cfg *config.Config, ev *energy.Evaluator, res *energy.Result) error {
	meta := storage.NewRunMetadata(cfg.Preset, ev.Config(), res)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, res.Series)
		if err != nil {
			return err
		}
		meta.ID = runID
		logger.Info("run stored", zap.String("id", runID), zap.String("dir", dataDir))
	}

	fmt.Println(viz.Summary(&meta))
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}
	return nil
}

func compareTolerances(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	header := []string{"EPSREL", "PEAK", "TRAPEZOID", "FAILED", "TIME"}
	rows := make([][]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		tol, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid tolerance %q: %w", arg, err)
		}
		run := *cfg
		run.Quad.EpsRel = tol
		if err := run.Validate(); err != nil {
			return err
		}
		ev, err := newEvaluator(&run, logger)
		if err != nil {
			return err
		}
		res, err := ev.Run(ctx)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			arg,
			viz.FormatValue(res.Metrics["peak"], res.Unit),
			fmt.Sprintf("%.6e", res.Metrics["trapezoid"]),
			strconv.Itoa(res.Series.InvalidCount()),
			res.Elapsed.Round(time.Microsecond).String(),
		})
	}

	fmt.Println(viz.Table(header, rows))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tVARIANT\tTIME\tSAMPLES\tINVALID\tPEAK")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Sweep.Samples,
			run.Invalid,
			peakOf(run),
		)
	}
	return w.Flush()
}

func peakOf(run storage.RunMetadata) string {
	v, ok := run.Metrics["peak"]
	if !ok {
		return "-"
	}
	return viz.FormatValue(v, run.Unit)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	opts := viz.DefaultPlotOptions()
	opts.Caption = meta.Preset
	opts.Unit = meta.Unit
	opts.Reference = meta.Analytical
	opts.HasReference = meta.HasAnalytical
	graph, err := viz.PlotSeries(series, opts)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(meta))
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return export.ExportJSONStdout(meta, series)
	}
	if err := export.ExportJSON(outFile, meta, series); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = runID + ".csv"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := storage.WriteSeriesCSV(f, series); err != nil {
		return err
	}
	fmt.Printf("exported %d samples to %s\n", series.Len(), path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	opts := export.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("%s (%s)", meta.Preset, meta.Unit)
	opts.Reference = meta.Analytical
	opts.HasReference = meta.HasAnalytical
	svg := export.SeriesToSVG(series, opts)
	if svg == "" {
		return fmt.Errorf("not enough valid samples to draw")
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	name := config.DefaultPreset
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
