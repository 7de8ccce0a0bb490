package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tmflow/internal/analysis"
	"github.com/san-kum/tmflow/internal/experiment"
	"github.com/san-kum/tmflow/internal/export"
	"github.com/san-kum/tmflow/internal/integrators"
	"github.com/san-kum/tmflow/internal/storage"
	"github.com/san-kum/tmflow/internal/tui"
)

func loadRun(runID string) (*storage.RunMetadata, *storage.Enclosure, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	enc, err := st.LoadEnclosure(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(enc.Times) == 0 {
		return nil, nil, fmt.Errorf("run %s has no enclosure", runID)
	}
	return meta, enc, nil
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tT_END\tJET\tSTATUS")

	for _, run := range runs {
		status := run.Status
		if run.Error != "" {
			status = "error"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4g\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.TEnd,
			run.Jet,
			status,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, enc, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s  jet: %s  status: %s\n", meta.Model, meta.Jet, meta.Status)
	if meta.Error != "" {
		fmt.Printf("error: %s\n", meta.Error)
	}
	if p := meta.Problem; p != nil {
		fmt.Printf("q0: %v  dq0: %v  orders: %d/%d  abstol: %g\n", p.Q0, p.DQ0, p.OrderQ, p.OrderT, p.AbsTol)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTIME\tENDPOINT\tWIDTH")
	for i, t := range enc.Times {
		fmt.Fprintf(w, "%d\t%.6g\t%v\t%.3e\n", i, t, enc.Endpoints[i], enc.Endpoints[i].Width())
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, enc, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("steps: %d\n\n", len(enc.Times)-1)

	numVars := min(len(enc.Endpoints[0]), 6)
	for varIdx := 0; varIdx < numVars; varIdx++ {
		lo := make([]float64, len(enc.Endpoints))
		hi := make([]float64, len(enc.Endpoints))
		for i, box := range enc.Endpoints {
			lo[i], hi[i] = box[varIdx].Lo, box[varIdx].Hi
		}

		graph := asciigraph.PlotMany([][]float64{lo, hi},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption(fmt.Sprintf("x%d bounds vs step", varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, enc, err := loadRun(args[0])
	if err != nil {
		return err
	}

	rects, err := analysis.PhaseBoxes(enc.Result(), xAxis, yAxis)
	if err != nil {
		return err
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)
	fmt.Print(analysis.PhaseToASCII(rects, 70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, enc, err := loadRun(args[0])
	if err != nil {
		return err
	}
	res := enc.Result()

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	widths := analysis.WidthSeries(res)
	logs := make([]float64, len(widths))
	for i, w := range widths {
		logs[i] = math.Log10(max(w, math.SmallestNonzeroFloat64))
	}
	fmt.Printf("log10 width  %s\n", tui.Sparkline(logs, 60))
	fmt.Printf("initial      %.3e\n", widths[0])
	fmt.Printf("final        %.3e\n", widths[len(widths)-1])

	rate := analysis.GrowthRate(res)
	fmt.Printf("growth rate  %.4g per unit time\n", rate)
	if d := analysis.Doubling(rate); !math.IsInf(d, 0) {
		fmt.Printf("doubling     %.4g\n", d)
	}

	fmt.Println("\nper component:")
	for i := range res.Endpoints[0] {
		cw := analysis.ComponentWidths(res, i)
		fmt.Printf("  x%d  %.3e -> %.3e\n", i, cw[0], cw[len(cw)-1])
	}

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		fmt.Print(formatMetrics(meta.Metrics))
	}
	return nil
}

func formatMetrics(m map[string]float64) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %.6g\n", name, m[name])
	}
	return b.String()
}

func checkRun(cmd *cobra.Command, args []string) error {
	meta, enc, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if meta.Problem == nil {
		return fmt.Errorf("run %s has no stored problem", meta.ID)
	}

	exp := experiment.New(meta.Problem, experiment.NewRegistry(), newLogger(logLevel))
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("checking %s against %d reference solutions\n", meta.ID, meta.Problem.Check.Samples)
	rep, err := exp.Check(ctx, enc.Result())
	if err != nil {
		return err
	}
	printReport(rep)
	if !rep.OK() {
		return fmt.Errorf("%d violations", len(rep.Violations))
	}
	return nil
}

func printReport(rep integrators.Report) {
	if rep.OK() {
		fmt.Printf("   %s %d samples, %d states inside their enclosures\n",
			okStyle.Render("ok"), rep.Samples, rep.Checked)
		return
	}
	fmt.Printf("   %s %d of %d states outside their enclosures\n",
		warnStyle.Render("violations"), len(rep.Violations), rep.Checked)
	for i, v := range rep.Violations {
		if i == 10 {
			fmt.Printf("     ... %d more\n", len(rep.Violations)-i)
			break
		}
		fmt.Printf("     %s\n", v)
	}
}

func inspectRun(cmd *cobra.Command, args []string) error {
	meta, enc, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return tui.RunInspector(*meta, enc)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, enc, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, enc)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, enc, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if svgBand {
		if svgComp < 0 || svgComp >= len(enc.Endpoints[0]) {
			return fmt.Errorf("component %d out of range for dimension %d", svgComp, len(enc.Endpoints[0]))
		}
		lo := make([]float64, len(enc.Endpoints))
		hi := make([]float64, len(enc.Endpoints))
		for i, box := range enc.Endpoints {
			lo[i], hi[i] = box[svgComp].Lo, box[svgComp].Hi
		}
		fmt.Println(export.BandSVG(enc.Times, lo, hi, 800, 400, "#ff4fd8"))
		return nil
	}

	rects, err := analysis.PhaseBoxes(enc.Result(), xAxis, yAxis)
	if err != nil {
		return err
	}
	fmt.Println(export.PhaseSVG(rects, 600, 600, "#00ff00"))
	return nil
}
