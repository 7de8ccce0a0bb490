package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/tmflow/internal/analysis"
	"github.com/san-kum/tmflow/internal/automation"
	"github.com/san-kum/tmflow/internal/config"
	"github.com/san-kum/tmflow/internal/experiment"
	"github.com/san-kum/tmflow/internal/models"
	"github.com/san-kum/tmflow/internal/storage"
	"github.com/san-kum/tmflow/internal/tui"
	"github.com/san-kum/tmflow/internal/validated"
)

// loadProblem builds the problem from a preset or config file, then applies
// the model argument and every flag given on the command line.
func loadProblem(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		cfg = p
	}

	// config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 && loaded.Model != args[0] {
			return nil, fmt.Errorf("config is for model %s, not %s", loaded.Model, args[0])
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("tmax") {
		cfg.TMax = tmax
	}
	if flags.Changed("order-q") {
		cfg.OrderQ = orderQ
	}
	if flags.Changed("order-t") {
		cfg.OrderT = orderT
	}
	if flags.Changed("abstol") {
		cfg.AbsTol = absTol
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("q0") {
		cfg.Q0 = q0
	}
	if flags.Changed("dq0") {
		cfg.DQ0 = dq0
	}
	if flags.Changed("no-parse-eqs") {
		cfg.ParseEqs = !noParseEqs
	}
	if flags.Changed("one-sided") {
		cfg.SymNorm = !oneSided
	}
	for name, raw := range params {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", name, err)
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		cfg.Params[name] = v
	}
	return cfg, nil
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg, err := loadProblem(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(logLevel)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.NewRegistry(), logger)
	if err := exp.Setup(); err != nil {
		return err
	}

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, cfg.Model, cfg.T0, cfg.TMax, frameRate)
		exp.AddObserver(renderer)
	}

	start := time.Now()
	out, err := exp.Run()
	if renderer != nil {
		renderer.Stop()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := saveOutcome(st, exp.JetName(), cfg, out)
	if err != nil {
		return err
	}
	printSummary(runID, cfg, out, elapsed)

	if checkAfter {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		rep, err := exp.Check(ctx, out.Result)
		if err != nil {
			return err
		}
		printReport(rep)
	}
	return nil
}

func saveOutcome(st *storage.Store, jetName string, cfg *config.Config, out *experiment.Outcome) (string, error) {
	res := out.Result
	meta := storage.RunMetadata{
		Model:             cfg.Model,
		Problem:           cfg,
		Jet:               jetName,
		Steps:             res.Steps,
		Status:            res.Status.String(),
		RemainderFailures: res.RemainderFailures,
		TEnd:              res.Times[len(res.Times)-1],
		Metrics:           out.Metrics,
	}
	if out.Err != nil {
		meta.Error = out.Err.Error()
	}
	return st.Save(meta, res)
}

func printSummary(runID string, cfg *config.Config, out *experiment.Outcome, elapsed time.Duration) {
	res := out.Result
	fmt.Println()
	fmt.Printf("   %s %s\n", titleStyle.Render("tmflow"), labelStyle.Render(cfg.Model))
	fmt.Printf("   %s %s\n", labelStyle.Render("run id  "), runID)
	fmt.Printf("   %s %v\n", labelStyle.Render("elapsed "), elapsed.Round(time.Millisecond))
	fmt.Printf("   %s %d\n", labelStyle.Render("steps   "), res.Steps)
	fmt.Printf("   %s %.6g\n", labelStyle.Render("t end   "), res.Times[len(res.Times)-1])

	status := okStyle.Render(res.Status.String())
	switch {
	case out.Err != nil:
		status = warnStyle.Render(out.Err.Error())
	case res.Status != validated.StatusDone:
		status = warnStyle.Render(res.Status.String())
	}
	fmt.Printf("   %s %s\n", labelStyle.Render("status  "), status)
	if res.RemainderFailures > 0 {
		fmt.Printf("   %s %s\n", labelStyle.Render("warning "),
			warnStyle.Render(fmt.Sprintf("%d remainders did not converge", res.RemainderFailures)))
	}

	fmt.Printf("\n   %s\n", labelStyle.Render("final box"))
	for i, iv := range res.Final() {
		fmt.Printf("     x%d  %v  %s\n", i, iv, labelStyle.Render(fmt.Sprintf("width %.3g", iv.Width())))
	}

	fmt.Printf("\n   %s\n", labelStyle.Render("metrics"))
	names := make([]string, 0, len(out.Metrics))
	for name := range out.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("     %-16s %.6g\n", name, out.Metrics[name])
	}
	fmt.Println()
}

func sweepProblem(cmd *cobra.Command, args []string) error {
	cfg, err := loadProblem(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(logLevel)
	registry := experiment.NewRegistry()

	exp := experiment.New(cfg, registry, logger)
	if err := exp.Setup(); err != nil {
		return err
	}

	run := func(m models.Model) (*validated.Result, error) {
		opts := append(cfg.Options(),
			validated.WithLogger(logger),
			validated.WithRegistry(registry.Jets()),
		)
		return validated.Integrate(m, cfg.Q0, cfg.InitialBox(),
			cfg.T0, cfg.TMax, cfg.OrderQ, cfg.OrderT, cfg.AbsTol, opts...)
	}

	points, err := analysis.Sweep(exp.Model(), sweepParam, sweepFrom, sweepTo, sweepSteps, run)
	if err != nil {
		return err
	}

	fmt.Printf("sweep of %s over %s\n\n", cfg.Model, sweepParam)
	fmt.Printf("%-12s  %-12s  %-12s  %s\n", sweepParam, "t_end", "width", "status")
	fmt.Println(strings.Repeat("-", 56))
	for _, p := range points {
		if p.Err != nil {
			fmt.Printf("%-12.6g  error: %v\n", p.Param, p.Err)
			continue
		}
		fmt.Printf("%-12.6g  %-12.6g  %-12.3e  %s\n", p.Param, p.Tend, p.Final.Width(), p.Status)
	}
	return nil
}

func watchProblem(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := newLogger(logLevel)
	registry := experiment.NewRegistry()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rerun := func(cfg *config.Config) {
		exp := experiment.New(cfg, registry, logger)
		if err := exp.Setup(); err != nil {
			logger.Error("invalid problem", slog.String("path", path), slog.Any("error", err))
			return
		}
		start := time.Now()
		out, err := exp.Run()
		if err != nil {
			logger.Error("run failed", slog.String("model", cfg.Model), slog.Any("error", err))
			return
		}
		runID, err := saveOutcome(st, exp.JetName(), cfg, out)
		if err != nil {
			logger.Error("save failed", slog.Any("error", err))
			return
		}
		printSummary(runID, cfg, out, time.Since(start))
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	rerun(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("watching %s (ctrl-c to stop)\n", path)
	return experiment.Watch(ctx, path, debounce, func(cfg *config.Config, err error) {
		if err != nil {
			logger.Error("reload failed", slog.String("path", path), slog.Any("error", err))
			return
		}
		rerun(cfg)
	})
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger := newLogger(logLevel)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := experiment.NewRegistry()
	outcomes, runErr := automation.RunScenario(ctx, scenario, registry, logger)

	fmt.Printf("scenario %s: %d of %d steps\n\n", scenario.Name, len(outcomes), len(scenario.Steps))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tSTEPS\tT_END\tWIDTH\tSTATUS")
	for _, o := range outcomes {
		runID, err := saveOutcome(st, o.Jet, o.Config, o.Outcome)
		if err != nil {
			return err
		}
		res := o.Outcome.Result
		status := res.Status.String()
		if o.Outcome.Err != nil {
			status = "error"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4g\t%.3e\t%s\n",
			o.Name, runID, res.Steps, res.Times[len(res.Times)-1], res.Final().Width(), status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func formatParams(p map[string]float64) string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, p[name])
	}
	return strings.Join(parts, " ")
}
