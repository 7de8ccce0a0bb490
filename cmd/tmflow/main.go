package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/tmflow/internal/config"
	"github.com/san-kum/tmflow/internal/experiment"
)

var (
	dataDir  string
	logLevel string

	configFile string
	preset     string
	tmax       float64
	orderQ     int
	orderT     int
	absTol     float64
	maxSteps   int
	q0         []float64
	dq0        []float64
	params     map[string]string
	noParseEqs bool
	oneSided   bool
	live       bool
	frameRate  int
	checkAfter bool

	xAxis int
	yAxis int

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	debounce time.Duration

	svgBand bool
	svgComp int
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tmflow",
		Short:        "validated taylor-model integration of odes",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tmflow", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a problem and store the enclosure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProblem,
	}
	problemFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "show progress while integrating")
	runCmd.Flags().IntVar(&frameRate, "fps", 20, "frame rate of the live view")
	runCmd.Flags().BoolVar(&checkAfter, "check", false, "spot check the enclosure with sampled reference solutions")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "integrate a problem over a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepProblem,
	}
	problemFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "sweep", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	_ = sweepCmd.MarkFlagRequired("sweep")

	watchCmd := &cobra.Command{
		Use:   "watch [problem.yaml]",
		Short: "rerun a problem file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE:  watchProblem,
	}
	watchCmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet time before a rerun")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every problem of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the enclosure of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the enclosure bounds of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase plane projection of the step boxes",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "width growth of an enclosure",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	checkCmd := &cobra.Command{
		Use:   "check [run_id]",
		Short: "spot check a stored enclosure with sampled reference solutions",
		Args:  cobra.ExactArgs(1),
		RunE:  checkRun,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [run_id]",
		Short: "browse the steps of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the step boxes or one component's bounds as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	exportSVGCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	exportSVGCmd.Flags().BoolVar(&svgBand, "band", false, "draw the bounds of one component over time")
	exportSVGCmd.Flags().IntVar(&svgComp, "component", 0, "state index for --band")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models and their parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			for _, name := range registry.ListModels() {
				m, err := registry.GetModel(name, nil)
				if err != nil {
					return err
				}
				fmt.Printf("%-12s dim %d  %s\n", name, m.Dim(), formatParams(m.GetParams()))
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, watchCmd, batchCmd, listCmd, showCmd, plotCmd, phaseCmd,
		analyzeCmd, checkCmd, inspectCmd, exportJSONCmd, exportSVGCmd, presetsCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// problemFlags adds the flags that override a loaded problem.
func problemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "problem file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset problem")
	cmd.Flags().Float64Var(&tmax, "tmax", config.DefaultTMax, "final time")
	cmd.Flags().IntVar(&orderQ, "order-q", config.DefaultOrderQ, "order in the initial-condition variables")
	cmd.Flags().IntVar(&orderT, "order-t", config.DefaultOrderT, "order in time")
	cmd.Flags().Float64Var(&absTol, "abstol", config.DefaultAbsTol, "absolute tolerance of the step size")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step budget")
	cmd.Flags().Float64SliceVar(&q0, "q0", nil, "initial state")
	cmd.Flags().Float64SliceVar(&dq0, "dq0", nil, "radii of the initial box")
	cmd.Flags().StringToStringVar(&params, "param", nil, "model parameter, name=value")
	cmd.Flags().BoolVar(&noParseEqs, "no-parse-eqs", false, "always use the generic jet")
	cmd.Flags().BoolVar(&oneSided, "one-sided", false, "normalize the initial box to [0, 1] instead of [-1, 1]")
}

// newLogger returns a text logger on stderr at the named level.
func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// parseLevel defaults to warn for unknown names.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
