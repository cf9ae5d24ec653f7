package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/phaseplane/internal/config"
	"github.com/san-kum/phaseplane/internal/export"
	"github.com/san-kum/phaseplane/internal/field"
	"github.com/san-kum/phaseplane/internal/models"
	"github.com/san-kum/phaseplane/internal/phase"
	"github.com/san-kum/phaseplane/internal/store"
	"github.com/san-kum/phaseplane/internal/traj"
	"github.com/san-kum/phaseplane/internal/tui"
	"github.com/san-kum/phaseplane/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	paramFlags []string
	// analysis window
	xMin, xMax float64
	yMin, yMax float64
	// fixed point search
	gridN     int
	maxSearch int
	searchEps float64
	// nullclines
	nullN   int
	maxStep float64
	maxPts  int
	// manifolds
	manDx      float64
	manDxGamma float64
	manDxPerp  float64
	manTmax    float64
	manMaxLen  float64
	// portrait rendering
	plotWidth  int
	plotHeight int
	themeName  string
	noNull     bool
	noMan      bool
	// orbit / period
	orbitX0   float64
	orbitY0   float64
	orbitTime float64
	threshold float64
	crossDir  int
	// orbit sampling on portraits
	numOrbits int
	orbitT    float64
	// output
	asJSON  bool
	saveRun bool
	svgPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phaseplane",
		Short: "phase-plane analysis of planar dynamical systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			// default to the interactive explorer when no command given
			_, err := tea.NewProgram(tui.NewExplorer(), tea.WithAltScreen()).Run()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".phaseplane", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringArrayVar(&paramFlags, "param", nil, "parameter override name=value (repeatable)")

	fixedCmd := &cobra.Command{
		Use:   "fixedpoints [model]",
		Short: "find and classify equilibria",
		Args:  cobra.ExactArgs(1),
		RunE:  runFixedPoints,
	}
	addWindowFlags(fixedCmd)
	fixedCmd.Flags().IntVar(&gridN, "grid-n", config.DefaultGridN, "grid points per axis")
	fixedCmd.Flags().IntVar(&maxSearch, "max-search", config.DefaultMaxSearch, "cap on total search seeds")
	fixedCmd.Flags().Float64Var(&searchEps, "eps", config.DefaultEps, "dedup/acceptance tolerance")
	fixedCmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON to stdout")
	fixedCmd.Flags().BoolVar(&saveRun, "save", false, "save run to the data directory")
	fixedCmd.Flags().StringVar(&svgPath, "svg", "", "write the result as SVG to this path")

	nullCmd := &cobra.Command{
		Use:   "nullclines [model]",
		Short: "trace nullclines of both variables",
		Args:  cobra.ExactArgs(1),
		RunE:  runNullclines,
	}
	addWindowFlags(nullCmd)
	nullCmd.Flags().IntVar(&nullN, "grid-n", config.DefaultNullclineN, "grid resolution")
	nullCmd.Flags().Float64Var(&maxStep, "max-step", 0, "continuation max step (0 = grid search only)")
	nullCmd.Flags().IntVar(&maxPts, "max-points", config.DefaultMaxPoints, "continuation point budget")
	nullCmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON to stdout")
	nullCmd.Flags().BoolVar(&saveRun, "save", false, "save run to the data directory")
	nullCmd.Flags().StringVar(&svgPath, "svg", "", "write the result as SVG to this path")

	manCmd := &cobra.Command{
		Use:   "manifolds [model]",
		Short: "grow stable and unstable manifolds of each saddle",
		Args:  cobra.ExactArgs(1),
		RunE:  runManifolds,
	}
	addWindowFlags(manCmd)
	manCmd.Flags().Float64Var(&manDx, "dx", config.DefaultManifoldDx, "arclength step")
	manCmd.Flags().Float64Var(&manDxGamma, "dx-gamma", config.DefaultDxGamma, "gamma surface offset")
	manCmd.Flags().Float64Var(&manDxPerp, "dx-perp", config.DefaultDxPerp, "transverse bracket half-width")
	manCmd.Flags().Float64Var(&manTmax, "tmax", config.DefaultTmax, "time budget per test trajectory")
	manCmd.Flags().Float64Var(&manMaxLen, "max-len", config.DefaultMaxLen, "arclength budget per direction")
	manCmd.Flags().IntVar(&maxPts, "max-points", config.DefaultMaxPoints, "point budget per direction")
	manCmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON to stdout")
	manCmd.Flags().BoolVar(&saveRun, "save", false, "save run to the data directory")
	manCmd.Flags().StringVar(&svgPath, "svg", "", "write the result as SVG to this path")

	portraitCmd := &cobra.Command{
		Use:   "portrait [model]",
		Short: "render a phase portrait to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPortrait,
	}
	addWindowFlags(portraitCmd)
	portraitCmd.Flags().IntVar(&plotWidth, "width", 70, "portrait width in characters")
	portraitCmd.Flags().IntVar(&plotHeight, "height", 22, "portrait height in characters")
	portraitCmd.Flags().StringVar(&themeName, "theme", "cyberpunk", "color theme")
	portraitCmd.Flags().BoolVar(&noNull, "no-nullclines", false, "skip nullclines")
	portraitCmd.Flags().BoolVar(&noMan, "no-manifolds", false, "skip saddle manifolds")
	portraitCmd.Flags().IntVar(&numOrbits, "orbits", 0, "number of sample orbits to overlay")
	portraitCmd.Flags().Float64Var(&orbitT, "orbit-time", 20.0, "integration time per sample orbit")

	periodCmd := &cobra.Command{
		Use:   "period [model]",
		Short: "integrate an orbit and estimate its period",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeriod,
	}
	periodCmd.Flags().Float64Var(&orbitX0, "x0", 1.0, "initial x")
	periodCmd.Flags().Float64Var(&orbitY0, "y0", 0.0, "initial y")
	periodCmd.Flags().Float64Var(&orbitTime, "time", 50.0, "integration time")
	periodCmd.Flags().Float64Var(&threshold, "thresh", 0.0, "crossing threshold on the x variable")
	periodCmd.Flags().IntVar(&crossDir, "dir", 1, "crossing direction (1 or -1)")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE:  listModels,
	}

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

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export saved run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive phase-plane explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := tea.NewProgram(tui.NewExplorer(), tea.WithAltScreen()).Run()
			return err
		},
	}

	rootCmd.AddCommand(fixedCmd, nullCmd, manCmd, portraitCmd, periodCmd,
		modelsCmd, presetsCmd, listCmd, exportCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&xMin, "xmin", 0, "window lower x bound")
	cmd.Flags().Float64Var(&xMax, "xmax", 0, "window upper x bound")
	cmd.Flags().Float64Var(&yMin, "ymin", 0, "window lower y bound")
	cmd.Flags().Float64Var(&yMax, "ymax", 0, "window upper y bound")
}

// loadConfig resolves preset, config file and flag overrides, in that
// order of increasing precedence.
func loadConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)",
				preset, config.ListPresets(model))
		}
		cp := *p
		cfg = &cp
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.Model = model
	cfg.FillDefaults()

	if cmd.Flags().Changed("grid-n") {
		if n, err := cmd.Flags().GetInt("grid-n"); err == nil {
			cfg.FixedPts.GridN = n
			cfg.Nullclines.GridN = n
		}
	}
	if cmd.Flags().Changed("max-search") {
		cfg.FixedPts.MaxSearch = maxSearch
	}
	if cmd.Flags().Changed("eps") {
		cfg.FixedPts.Eps = searchEps
	}
	if cmd.Flags().Changed("max-step") {
		cfg.Nullclines.MaxStep = maxStep
	}
	if cmd.Flags().Changed("max-points") {
		cfg.Nullclines.MaxPoints = maxPts
		cfg.Manifolds.MaxPoints = maxPts
	}
	if cmd.Flags().Changed("dx") {
		cfg.Manifolds.Dx = manDx
	}
	if cmd.Flags().Changed("dx-gamma") {
		cfg.Manifolds.DxGamma = manDxGamma
	}
	if cmd.Flags().Changed("dx-perp") {
		cfg.Manifolds.DxPerp = manDxPerp
	}
	if cmd.Flags().Changed("tmax") {
		cfg.Manifolds.Tmax = manTmax
	}
	if cmd.Flags().Changed("max-len") {
		cfg.Manifolds.MaxLen = manMaxLen
	}
	if cmd.Flags().Changed("xmin") || cmd.Flags().Changed("xmax") ||
		cmd.Flags().Changed("ymin") || cmd.Flags().Changed("ymax") {
		cfg.Window = &config.WindowConfig{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	}
	return cfg, nil
}

// buildField constructs the model and applies config and flag parameter
// overrides.
func buildField(cfg *config.Config) (field.Field, error) {
	f, err := models.NewRegistry().Get(cfg.Model)
	if err != nil {
		return nil, err
	}
	for name, v := range cfg.Params {
		if err := f.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	for _, kv := range paramFlags {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --param %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", kv, err)
		}
		if err := f.SetParam(parts[0], v); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// window resolves the analysis rectangle from config or the field domains.
func window(f field.Field, cfg *config.Config) (xiv, yiv field.Interval, xname, yname string, err error) {
	vars := f.Vars()
	xname, yname = vars[0], vars[1]
	if cfg.XVar != "" {
		xname = cfg.XVar
	}
	if cfg.YVar != "" {
		yname = cfg.YVar
	}
	if cfg.Window != nil {
		return field.Interval{Lo: cfg.Window.XMin, Hi: cfg.Window.XMax},
			field.Interval{Lo: cfg.Window.YMin, Hi: cfg.Window.YMax},
			xname, yname, nil
	}
	if xiv, err = f.Domain(xname); err != nil {
		return
	}
	yiv, err = f.Domain(yname)
	return
}

func findAndClassify(f field.Field, cfg *config.Config, xiv, yiv field.Interval, xname, yname string) ([]*phase.FixedPoint, error) {
	pts, err := phase.FindFixedPoints(f, phase.FixedPointSearch{
		SubDomain: map[string]phase.AxisSpec{
			xname: phase.Over(xiv.Lo, xiv.Hi),
			yname: phase.Over(yiv.Lo, yiv.Hi),
		},
		N:         cfg.FixedPts.GridN,
		MaxSearch: cfg.FixedPts.MaxSearch,
		Eps:       cfg.FixedPts.Eps,
	})
	if err != nil {
		return nil, err
	}
	fps := make([]*phase.FixedPoint, 0, len(pts))
	for _, pt := range pts {
		fp, err := phase.Classify(f, pt, phase.ClassifyOptions{Eps: cfg.FixedPts.Eps})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", pt, err)
			continue
		}
		fps = append(fps, fp)
	}
	return fps, nil
}

func runFixedPoints(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}
	xiv, yiv, xname, yname, err := window(f, cfg)
	if err != nil {
		return err
	}
	fps, err := findAndClassify(f, cfg, xiv, yiv, xname, yname)
	if err != nil {
		return err
	}

	res := &store.Result{Model: cfg.Model, XVar: xname, YVar: yname, Params: f.Params()}
	for _, fp := range fps {
		res.FixedPoints = append(res.FixedPoints, store.RecordFixedPoint(fp))
	}
	if done, err := emitResult(res); done || err != nil {
		return err
	}

	if len(fps) == 0 {
		fmt.Println("no fixed points found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tCLASS\tSTABILITY\tEIGENVALUES\tDEGENERATE\n",
		strings.ToUpper(xname), strings.ToUpper(yname))
	for _, fp := range fps {
		fmt.Fprintf(w, "%.6f\t%.6f\t%s\t%s\t%s\t%v\n",
			fp.Point.At(0), fp.Point.At(1),
			fp.Class, fp.Stability,
			formatEigs(fp.Eigenvalues), fp.Degenerate)
	}
	return w.Flush()
}

func formatEigs(evals [2]complex128) string {
	parts := make([]string, 2)
	for i, ev := range evals {
		if imag(ev) == 0 {
			parts[i] = strconv.FormatFloat(real(ev), 'g', 4, 64)
		} else {
			parts[i] = fmt.Sprintf("%.4g%+.4gi", real(ev), imag(ev))
		}
	}
	return parts[0] + ", " + parts[1]
}

func runNullclines(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}
	xiv, yiv, xname, yname, err := window(f, cfg)
	if err != nil {
		return err
	}
	fps, err := findAndClassify(f, cfg, xiv, yiv, xname, yname)
	if err != nil {
		return err
	}
	seeds := make([]field.Point, len(fps))
	for i, fp := range fps {
		seeds[i] = fp.Point
	}

	xn, yn, err := phase.FindNullclines(f, xname, yname, phase.NullclineOptions{
		XDom:        &xiv,
		YDom:        &yiv,
		N:           cfg.Nullclines.GridN,
		MaxStep:     cfg.Nullclines.MaxStep,
		MaxPoints:   cfg.Nullclines.MaxPoints,
		FixedPoints: seeds,
	})
	if err != nil {
		return err
	}

	res := &store.Result{Model: cfg.Model, XVar: xname, YVar: yname, Params: f.Params()}
	for _, fp := range fps {
		res.FixedPoints = append(res.FixedPoints, store.RecordFixedPoint(fp))
	}
	res.Nullclines = append(res.Nullclines, store.RecordNullcline(xn), store.RecordNullcline(yn))
	if done, err := emitResult(res); done || err != nil {
		return err
	}

	for _, n := range []*phase.Nullcline{xn, yn} {
		kind := "point cloud"
		if n.Ordered {
			kind = "ordered curve"
		}
		fmt.Printf("d%s/dt = 0: %d points (%s)\n", n.Var, len(n.Points), kind)
		plotNullcline(n)
	}
	return nil
}

// plotNullcline renders an ordered nullcline as y over x with asciigraph.
// Unordered clouds have no meaningful series to plot.
func plotNullcline(n *phase.Nullcline) {
	if !n.Ordered || len(n.Points) < 2 {
		return
	}
	data := make([]float64, len(n.Points))
	for i, pt := range n.Points {
		data[i] = pt[1]
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("d%s/dt = 0 (y along curve)", n.Var)),
	))
	fmt.Println()
}

func runManifolds(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}
	xiv, yiv, xname, yname, err := window(f, cfg)
	if err != nil {
		return err
	}
	fps, err := findAndClassify(f, cfg, xiv, yiv, xname, yname)
	if err != nil {
		return err
	}

	res := &store.Result{Model: cfg.Model, XVar: xname, YVar: yname, Params: f.Params()}
	saddles := 0
	for _, fp := range fps {
		if fp.Class != phase.Saddle || fp.Degenerate {
			continue
		}
		saddles++
		man, err := phase.SaddleManifolds(f, traj.New(f), fp, phase.ManifoldOptions{
			Dx:           cfg.Manifolds.Dx,
			DxGamma:      cfg.Manifolds.DxGamma,
			DxPerp:       cfg.Manifolds.DxPerp,
			Tmax:         cfg.Manifolds.Tmax,
			MaxLen:       cfg.Manifolds.MaxLen,
			MaxPoints:    cfg.Manifolds.MaxPoints,
			ShrinkFactor: cfg.Manifolds.ShrinkFactor,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: saddle at %s: %v\n", fp.Point, err)
			continue
		}
		res.FixedPoints = append(res.FixedPoints, store.RecordFixedPoint(fp))
		for _, kind := range []phase.BranchKind{phase.StableBranch, phase.UnstableBranch} {
			br := man[kind]
			if br == nil {
				continue
			}
			res.Manifolds = append(res.Manifolds, store.RecordBranch(br))
			if !asJSON && !saveRun && svgPath == "" {
				span := 0.0
				if n := len(br.Arclengths); n > 0 {
					span = br.Arclengths[n-1] - br.Arclengths[0]
				}
				fmt.Printf("saddle (%.4f, %.4f) %s manifold: %d points, arclength %.4f\n",
					fp.Point.At(0), fp.Point.At(1), kind, len(br.Points), span)
			}
		}
	}
	if saddles == 0 {
		return fmt.Errorf("no non-degenerate saddles in the window")
	}
	_, err = emitResult(res)
	return err
}

func runPortrait(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}
	xiv, yiv, xname, yname, err := window(f, cfg)
	if err != nil {
		return err
	}

	p := viz.NewPortrait(plotWidth, plotHeight, xiv, yiv, viz.GetTheme(themeName))

	fps, err := findAndClassify(f, cfg, xiv, yiv, xname, yname)
	if err != nil {
		return err
	}
	if !noNull {
		xn, yn, err := phase.FindNullclines(f, xname, yname, phase.NullclineOptions{
			XDom: &xiv, YDom: &yiv, N: cfg.Nullclines.GridN,
			MaxStep: cfg.Nullclines.MaxStep, MaxPoints: cfg.Nullclines.MaxPoints,
		})
		if err != nil {
			return err
		}
		p.AddNullcline(xn, true)
		p.AddNullcline(yn, false)
	}
	for _, fp := range fps {
		p.AddFixedPoint(fp)
	}
	if !noMan {
		for _, fp := range fps {
			if fp.Class != phase.Saddle || fp.Degenerate {
				continue
			}
			man, err := phase.SaddleManifolds(f, traj.New(f), fp, phase.ManifoldOptions{
				Dx:           cfg.Manifolds.Dx,
				DxGamma:      cfg.Manifolds.DxGamma,
				DxPerp:       cfg.Manifolds.DxPerp,
				Tmax:         cfg.Manifolds.Tmax,
				MaxLen:       cfg.Manifolds.MaxLen,
				MaxPoints:    cfg.Manifolds.MaxPoints,
				ShrinkFactor: cfg.Manifolds.ShrinkFactor,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: saddle at %s: %v\n", fp.Point, err)
				continue
			}
			p.AddBranch(man[phase.StableBranch])
			p.AddBranch(man[phase.UnstableBranch])
		}
	}

	if numOrbits > 0 {
		if err := overlayOrbits(f, p, xiv, yiv); err != nil {
			return err
		}
	}

	fmt.Print(p.Render())
	return nil
}

// overlayOrbits seeds sample orbits on a ring inside the window and
// integrates them concurrently.
func overlayOrbits(f field.Field, p *viz.Portrait, xiv, yiv field.Interval) error {
	ics := make([]field.State, numOrbits)
	cx, cy := xiv.Mid(), yiv.Mid()
	rx, ry := xiv.Width()*0.35, yiv.Width()*0.35
	for i := range ics {
		ang := 2 * math.Pi * float64(i) / float64(numOrbits)
		ics[i] = field.State{cx + rx*math.Cos(ang), cy + ry*math.Sin(ang)}
	}
	ens := traj.NewEnsemble(f, runtime.NumCPU())
	trs, err := ens.ComputeAll(context.Background(), ics, 0, orbitT, traj.Forward)
	if err != nil {
		return err
	}
	for _, tr := range trs {
		p.AddOrbit(tr.States)
	}
	return nil
}

func runPeriod(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}

	integ := traj.New(f)
	tr, err := integ.Compute(field.State{orbitX0, orbitY0}, 0, orbitTime, traj.Forward)
	if err != nil {
		return err
	}

	series := make([]float64, len(tr.States))
	for i, s := range tr.States {
		series[i] = s[0]
	}
	fmt.Println(asciigraph.Plot(downsample(series, 600),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(f.Vars()[0]+" vs time"),
	))

	period, err := phase.FindPeriod(tr.Times, series, threshold, crossDir)
	if err != nil {
		return err
	}
	fmt.Printf("\nperiod: %.6f (threshold %.3f, direction %+d)\n", period, threshold, crossDir)
	return nil
}

func downsample(data []float64, max int) []float64 {
	if len(data) <= max {
		return data
	}
	out := make([]float64, max)
	for i := range out {
		out[i] = data[i*len(data)/max]
	}
	return out
}

func listModels(cmd *cobra.Command, args []string) error {
	reg := models.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tVARS\tPARAMETERS")
	for _, name := range reg.List() {
		f, err := reg.Get(name)
		if err != nil {
			continue
		}
		params := f.Params()
		names := make([]string, 0, len(params))
		for p := range params {
			names = append(names, p)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name,
			strings.Join(f.Vars(), ", "), strings.Join(names, ", "))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tFIXED PTS\tNULLCLINES\tMANIFOLDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.FixedPoints),
			run.Nullclines,
			run.Manifolds,
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// emitResult handles the shared output flags. It reports whether any of
// them consumed the result, so callers can skip their table output.
func emitResult(res *store.Result) (bool, error) {
	if svgPath != "" {
		if err := export.WriteSVG(svgPath, res, 800, 600); err != nil {
			return false, err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	if asJSON {
		return true, store.ExportJSONStdout(res)
	}
	if saveRun {
		return true, saveResult(res)
	}
	return svgPath != "", nil
}

func saveResult(res *store.Result) error {
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}
