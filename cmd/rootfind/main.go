package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/rootfind/internal/accuracy"
	"github.com/san-kum/rootfind/internal/automation"
	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/experiment"
	"github.com/san-kum/rootfind/internal/export"
	"github.com/san-kum/rootfind/internal/expr"
	"github.com/san-kum/rootfind/internal/optim"
	"github.com/san-kum/rootfind/internal/roots"
	"github.com/san-kum/rootfind/internal/storage"
	"github.com/san-kum/rootfind/internal/telemetry"
	"github.com/san-kum/rootfind/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger

	method     string
	lower      float64
	upper      float64
	guess      float64
	derivative string
	tolerance  float64
	maxIter    int
	step       float64
	history    bool
	exact      float64
	timeout    time.Duration
	configFile string
	preset     string
	save       bool

	digits  int
	outFile string
	svgKind string
	repeat  int

	cells      int
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	tuneRanges []string
	objective  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rootfind",
		Short:         "numerical root finding lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rootfind", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	solveCmd := &cobra.Command{
		Use:   "solve [expr]",
		Short: "find a root of f(x)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solve,
	}
	problemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "store the run")
	solveCmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the solve after this long")

	compareCmd := &cobra.Command{
		Use:   "compare [expr] [method...]",
		Short: "solve the same problem with several methods",
		Long: "Solves the problem with each listed method, or with all of them when none\n" +
			"are listed. With --preset or --config every argument is a method.",
		RunE: compare,
	}
	problemFlags(compareCmd)
	compareCmd.Flags().BoolVar(&save, "save", false, "store the runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's iterates to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run's plot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().StringVar(&svgKind, "kind", "convergence", "plot kind (convergence, function)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in problems",
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live [expr]",
		Short: "replay a solve step by step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	problemFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run every preset with every method",
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&repeat, "repeat", 10, "solves per preset and method")

	errorCmd := &cobra.Command{
		Use:   "error [exact] [approx]",
		Short: "absolute and relative error of an approximation",
		Args:  cobra.ExactArgs(2),
		RunE:  approxError,
	}
	errorCmd.Flags().IntVar(&digits, "digits", accuracy.DefaultDigits, "decimal places to round to")

	scanCmd := &cobra.Command{
		Use:   "scan [expr]",
		Short: "find every sign change in [a, b] and bisect each",
		Args:  cobra.MaximumNArgs(1),
		RunE:  scan,
	}
	problemFlags(scanCmd)
	scanCmd.Flags().IntVarP(&cells, "cells", "n", 100, "number of scan cells")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "solve every problem of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  batch,
	}
	batchCmd.Flags().BoolVar(&save, "save", false, "store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [expr]",
		Short: "solve across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweep,
	}
	problemFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "x0", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -1, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune [expr]",
		Short: "grid search the parameters that minimize an objective",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tune,
	}
	problemFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&tuneRanges, "param", nil, "parameter range name=lo:hi:n (repeatable)")
	tuneCmd.Flags().StringVar(&objective, "objective", "evaluations", "iterations, evaluations, elapsed or a metric name")

	rootCmd.AddCommand(solveCmd, compareCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		presetsCmd, liveCmd, benchCmd, errorCmd, scanCmd, batchCmd, sweepCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func problemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&method, "method", "m", config.DefaultMethod, "bisection, newton or secant (aliases accepted)")
	cmd.Flags().Float64Var(&lower, "a", 0, "lower bound")
	cmd.Flags().Float64Var(&upper, "b", 0, "upper bound")
	cmd.Flags().Float64Var(&guess, "x0", 0, "initial guess (newton)")
	cmd.Flags().StringVar(&derivative, "df", "", "derivative expression (newton)")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "iteration limit")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "finite difference step (newton)")
	cmd.Flags().BoolVar(&history, "history", false, "print every iterate")
	cmd.Flags().Float64Var(&exact, "exact", 0, "known root, for error reporting")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in problem")
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// loadProblem builds the problem from, in increasing precedence: defaults, a
// preset, a config file, explicitly set flags and the expression argument.
func loadProblem(cmd *cobra.Command, fn string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("a") {
		cfg.A = config.Float(lower)
	}
	if flags.Changed("b") {
		cfg.B = config.Float(upper)
	}
	if flags.Changed("x0") {
		cfg.X0 = config.Float(guess)
	}
	if flags.Changed("df") {
		cfg.Derivative = derivative
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if flags.Changed("step") {
		cfg.Step = step
	}
	if flags.Changed("history") {
		cfg.History = history
	}
	if flags.Changed("exact") {
		cfg.Exact = config.Float(exact)
	}
	if fn != "" {
		cfg.Function = fn
	}

	if cfg.Function == "" {
		return nil, errors.New("no function given (pass an expression, --preset or --config)")
	}
	return cfg, nil
}

func report(run *experiment.Run) viz.Report {
	residual, ok := run.Metrics["residual"]
	if !ok {
		residual = math.NaN()
	}
	method := run.Config.Method
	if run.Method != 0 {
		method = run.Method.String()
	}
	return viz.Report{
		Method:      method,
		Function:    run.Config.Function,
		Root:        run.Result.Root,
		Residual:    residual,
		Iterations:  run.Result.Iterations,
		MaxIter:     run.Config.MaxIter,
		Evaluations: run.Evaluations,
		Elapsed:     run.Elapsed,
		Err:         run.Err,
		Values:      run.Values,
	}
}

func solve(cmd *cobra.Command, args []string) error {
	cfg, err := loadProblem(cmd, argExpr(args))
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, experiment.WithLogger(logger))
	if err := exp.Setup(registry.DefaultMetrics()); err != nil {
		return err
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	run, err := exp.Run(ctx)
	if run == nil {
		return err
	}

	fmt.Println(viz.Summary(report(run)))

	if cfg.History {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nK\tX\tF(X)")
		for _, p := range run.Points() {
			fmt.Fprintf(w, "%d\t%.15g\t%.6e\n", p.K, p.X, p.FX)
		}
		w.Flush()
	}

	for _, name := range registry.ListMetrics() {
		if v, ok := run.Metrics[name]; ok && !math.IsNaN(v) {
			fmt.Printf("  %s: %.6g\n", name, v)
		}
	}
	for _, name := range []string{"abs_error", "rel_error"} {
		if v, ok := run.Metrics[name]; ok {
			fmt.Printf("  %s: %.3e\n", name, v)
		}
	}

	if save {
		id, serr := saveRun(run)
		if serr != nil {
			return serr
		}
		fmt.Printf("run id: %s\n", id)
	}

	return err
}

func saveRun(run *experiment.Run) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(run.Metadata(), run.Points())
}

func compare(cmd *cobra.Command, args []string) error {
	var fn string
	methods := args
	if preset == "" && configFile == "" {
		if len(args) == 0 {
			return errors.New("compare needs an expression (or --preset / --config)")
		}
		fn, methods = args[0], args[1:]
	}

	cfg, err := loadProblem(cmd, fn)
	if err != nil {
		return err
	}

	runs, err := experiment.Compare(context.Background(), cfg, methods, experiment.NewRegistry(), experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	fmt.Printf("f(x) = %s\n", cfg.Function)
	fmt.Println(viz.Separator(40))
	reports := make([]viz.Report, len(runs))
	for i, run := range runs {
		reports[i] = report(run)
	}
	fmt.Print(viz.CompareTable(reports))

	if save {
		for _, run := range runs {
			id, err := saveRun(run)
			if err != nil {
				return err
			}
			fmt.Printf("saved %s\n", id)
		}
	}
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
	fmt.Fprintln(w, "ID\tMETHOD\tFUNCTION\tTIME\tITER\tROOT")

	for _, run := range runs {
		root := "-"
		if run.Converged {
			root = strconv.FormatFloat(run.Root, 'g', 12, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Method,
			run.Function,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Iterations,
			root,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Point, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	points, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, points, nil
}

func split(points []storage.Point) (xs, fxs []float64) {
	xs = make([]float64, len(points))
	fxs = make([]float64, len(points))
	for i, p := range points {
		xs[i], fxs[i] = p.X, p.FX
	}
	return xs, fxs
}

// window is the horizontal range to draw a run's function over.
func window(meta *storage.RunMetadata, xs []float64) (float64, float64) {
	if meta.A != nil && meta.B != nil {
		return viz.Span(append([]float64{*meta.A, *meta.B}, xs...), 0, 0)
	}
	return viz.Span(xs, -1, 1)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s\n", meta.Method)
	fmt.Printf("f(x) = %s\n\n", meta.Function)

	xs, fxs := split(points)
	if len(xs) > 1 {
		fmt.Println(viz.ConvergencePlot(fxs, 70, 10))
		fmt.Println()
		fmt.Println(viz.IteratePlot(xs, 70, 10))
		fmt.Println()
	}

	e, err := expr.Compile(meta.Function)
	if err != nil {
		return err
	}
	lo, hi := window(meta, xs)
	fmt.Print(viz.FunctionPlot(e.Func(nil), lo, hi, xs, 70, 16))
	fmt.Printf("x in [%.4g, %.4g]\n", lo, hi)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return storage.ExportJSONFile(outFile, *meta, points)
	}
	return storage.ExportJSON(os.Stdout, *meta, points)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	points, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"k", "x", "fx"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.K),
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.FX, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	xs, fxs := split(points)

	var svg string
	switch svgKind {
	case "convergence":
		svg = export.ConvergenceSVG(fxs, 640, 360)
	case "function":
		e, err := expr.Compile(meta.Function)
		if err != nil {
			return err
		}
		lo, hi := window(meta, xs)
		canvas := viz.NewCanvas(80, 24)
		viz.DrawFunction(canvas, e.Func(nil), lo, hi, xs, len(xs))
		svg = export.CanvasToSVG(canvas, 4)
	default:
		return fmt.Errorf("unknown plot kind: %s", svgKind)
	}
	if svg == "" {
		return fmt.Errorf("not enough data to plot")
	}

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMETHOD\tFUNCTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Method, p.Function)
	}
	return w.Flush()
}

func pickPreset() (string, error) {
	items := make([]viz.PickerItem, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		items = append(items, viz.PickerItem{Name: name, Info: p.Method + "  " + p.Function})
	}

	final, err := tea.NewProgram(viz.NewPicker("choose a problem", items)).Run()
	if err != nil {
		return "", err
	}
	item, ok := final.(viz.Picker).Selected()
	if !ok {
		return "", nil
	}
	return item.Name, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	fn := argExpr(args)
	if fn == "" && preset == "" && configFile == "" {
		name, err := pickPreset()
		if err != nil || name == "" {
			return err
		}
		preset = name
	}

	cfg, err := loadProblem(cmd, fn)
	if err != nil {
		return err
	}
	cfg.History = true

	exp := experiment.New(cfg, experiment.WithLogger(logger))
	if err := exp.Setup(nil); err != nil {
		return err
	}
	run, err := exp.Run(context.Background())
	if run == nil {
		return err
	}

	f, err := expr.Compile(cfg.Function)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s  f(x) = %s", report(run).Method, cfg.Function)
	m := viz.NewModel(f.Func(nil), title, run.History, run.Err)

	_, err = tea.NewProgram(m).Run()
	return err
}

func bench(cmd *cobra.Command, args []string) error {
	rec := telemetry.NewRecorder()
	registry := experiment.NewRegistry()

	fmt.Printf("benchmarking %d presets x %d methods, %d solves each\n\n",
		len(config.Presets), len(roots.Methods()), repeat)

	start := time.Now()
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		for i := 0; i < repeat; i++ {
			if _, err := experiment.Compare(context.Background(), cfg, nil, registry,
				experiment.WithRecorder(rec), experiment.WithLogger(logger)); err != nil {
				return fmt.Errorf("preset %s: %w", name, err)
			}
		}
	}
	elapsed := time.Since(start)

	rows, err := rec.Summary()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSOLVES\tCONVERGED\tMEAN ITER\tEVALS/SOLVE\tFAILURES")
	for _, row := range rows {
		converged := row.Outcomes[telemetry.OutcomeConverged]
		var failures []string
		for outcome, n := range row.Outcomes {
			if outcome != telemetry.OutcomeConverged && n > 0 {
				failures = append(failures, fmt.Sprintf("%s=%.0f", outcome, n))
			}
		}
		evals := 0.0
		if row.Solves > 0 {
			evals = row.Evaluations / row.Solves
		}
		sort.Strings(failures)
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.2f\t%.1f\t%s\n",
			row.Method, row.Solves, converged, row.MeanIter, evals, strings.Join(failures, " "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntotal time: %v\n", elapsed)
	return nil
}

func approxError(cmd *cobra.Command, args []string) error {
	ex, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("exact value: %w", err)
	}
	ap, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("approximation: %w", err)
	}

	d := accuracy.ClampDigits(digits)
	fmt.Printf("absolute error: %.*f\n", d, accuracy.Absolute(ex, ap, d))
	rel, err := accuracy.Relative(ex, ap, d)
	if errors.Is(err, accuracy.ErrZeroReference) {
		fmt.Println("relative error: undefined (exact value is zero)")
	} else {
		fmt.Printf("relative error: %.*f\n", d, rel)
	}
	fmt.Printf("machine epsilon: %g\n", accuracy.MachineEpsilon())
	return nil
}

func argExpr(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func scan(cmd *cobra.Command, args []string) error {
	cfg, err := loadProblem(cmd, argExpr(args))
	if err != nil {
		return err
	}
	if cfg.A == nil || cfg.B == nil {
		return fmt.Errorf("scan needs --a and --b: %w", roots.ErrMissingParameter)
	}
	e, err := expr.Compile(cfg.Function)
	if err != nil {
		return err
	}
	f := e.Func(nil)

	found, err := optim.FindAll(f, *cfg.A, *cfg.B, cells, cfg.Options())
	fmt.Printf("f(x) = %s on [%g, %g], %d cells\n\n", cfg.Function, *cfg.A, *cfg.B, cells)
	if len(found) == 0 {
		fmt.Println("no sign changes found")
	}
	for i, r := range found {
		fmt.Printf("  root %d: %.15g  f = %.3e\n", i+1, r, f(r))
	}
	return err
}

func batch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), sc, experiment.NewRegistry(), experiment.WithLogger(logger))
	reports := make([]viz.Report, len(results))
	for i, r := range results {
		reports[i] = report(r.Run)
		reports[i].Method = r.Name + " (" + reports[i].Method + ")"
	}
	fmt.Print(viz.CompareTable(reports))
	if err != nil {
		return err
	}

	if save {
		for _, r := range results {
			id, err := saveRun(r.Run)
			if err != nil {
				return err
			}
			fmt.Printf("saved %s as %s\n", r.Name, id)
		}
	}
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadProblem(cmd, argExpr(args))
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), cfg, automation.ParameterSweep{
		Param: sweepParam,
		Min:   sweepFrom,
		Max:   sweepTo,
		Steps: sweepSteps,
	}, experiment.NewRegistry(), experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	fmt.Printf("f(x) = %s, method %s, sweeping %s\n\n", cfg.Function, cfg.Method, sweepParam)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tROOT\tITER\tEVALS\tSTATUS\n", strings.ToUpper(sweepParam))
	iters := make([]float64, 0, len(results))
	for _, r := range results {
		status, root := "ok", strconv.FormatFloat(r.Run.Result.Root, 'g', 12, 64)
		if r.Run.Err != nil {
			status, root = telemetry.Outcome(r.Run.Err), "-"
		}
		iters = append(iters, float64(r.Run.Result.Iterations))
		fmt.Fprintf(w, "%g\t%s\t%d\t%d\t%s\n", r.Value, root, r.Run.Result.Iterations, r.Run.Evaluations, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\niterations %s\n", viz.Sparkline(iters, len(iters)))
	return nil
}

func tune(cmd *cobra.Command, args []string) error {
	if len(tuneRanges) == 0 {
		return errors.New("tune needs at least one --param name=lo:hi:n")
	}
	cfg, err := loadProblem(cmd, argExpr(args))
	if err != nil {
		return err
	}

	names := make([]string, 0, len(tuneRanges))
	ranges := make([][]float64, 0, len(tuneRanges))
	for _, r := range tuneRanges {
		name, values, err := optim.ParseRange(r)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	gs := optim.NewGridSearch(names, ranges, experiment.WithLogger(logger))
	best, err := gs.Search(context.Background(), cfg, objective, experiment.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %g\n", objective, best.Value)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best.Params[name])
	}
	fmt.Println()
	fmt.Println(viz.Summary(report(best.Run)))
	return nil
}
