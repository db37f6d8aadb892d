package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/ncpanel/internal/config"
	"github.com/san-kum/ncpanel/internal/dataset"
	"github.com/san-kum/ncpanel/internal/export"
	"github.com/san-kum/ncpanel/internal/panel"
	"github.com/san-kum/ncpanel/internal/plot"
	"github.com/san-kum/ncpanel/internal/tui"
)

var (
	configFile string
	preset     string
	variable   string
	method     string
	dimSpecs   []string
	output     string
	width      int
	height     int
	interval   int
	cmapName   string
	projection string
	withData   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ncpanel [file.nc]",
		Short: "interactive panel for multi-dimensional netcdf data",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPanel,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.Flags().StringVar(&variable, "variable", "", "variable to show on start")
	rootCmd.Flags().IntVar(&interval, "interval", 0, "animation interval in ms")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "open the panel on a synthetic dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDataset(dataset.Demo())
		},
	}
	demoCmd.Flags().StringVar(&variable, "variable", "", "variable to show on start")

	infoCmd := &cobra.Command{
		Use:   "info [file.nc]",
		Short: "list variables and dimensions",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	imageCmd := &cobra.Command{
		Use:   "export-image [file.nc]",
		Short: "render one variable to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportImage,
	}
	imageCmd.Flags().StringVar(&variable, "variable", "", "variable to render (default: first)")
	imageCmd.Flags().StringVar(&method, "method", "", "plot method (mapplot, plot2d, lineplot)")
	imageCmd.Flags().StringArrayVar(&dimSpecs, "dim", nil, "fix a dimension, e.g. --dim time=3")
	imageCmd.Flags().StringVar(&output, "output", "", "output file (default: <variable>.svg)")
	imageCmd.Flags().IntVar(&width, "width", config.DefaultPlotWidth, "frame width in cells")
	imageCmd.Flags().IntVar(&height, "height", config.DefaultPlotHeight, "frame height in cells")
	imageCmd.Flags().StringVar(&cmapName, "cmap", "", "colormap")
	imageCmd.Flags().StringVar(&projection, "projection", "", "map projection")

	framesCmd := &cobra.Command{
		Use:   "export-frames [file.nc]",
		Short: "render an animation frame sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportFrames,
	}
	framesCmd.Flags().StringVar(&variable, "variable", "", "variable to render (default: first)")
	framesCmd.Flags().StringVar(&method, "method", "", "plot method")
	framesCmd.Flags().StringArrayVar(&dimSpecs, "dim", nil, "fix a dimension, e.g. --dim lev=2")
	framesCmd.Flags().StringVar(&output, "output", "", "output directory (default: <variable>_frames)")
	framesCmd.Flags().IntVar(&width, "width", config.DefaultPlotWidth, "frame width in cells")
	framesCmd.Flags().IntVar(&height, "height", config.DefaultPlotHeight, "frame height in cells")
	framesCmd.Flags().IntVar(&interval, "interval", config.DefaultIntervalMS, "frame interval in ms")

	projectCmd := &cobra.Command{
		Use:   "project [project.yaml]",
		Short: "reopen a saved project",
		Args:  cobra.ExactArgs(1),
		RunE:  runProject,
	}

	saveCmd := &cobra.Command{
		Use:   "export-project [file.nc]",
		Short: "save a project file without opening the panel",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportProject,
	}
	saveCmd.Flags().StringVar(&variable, "variable", "", "variable to show (default: first)")
	saveCmd.Flags().StringVar(&output, "output", "project.yaml", "output file")
	saveCmd.Flags().BoolVar(&withData, "with-data", false, "embed the dataset values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(demoCmd, infoCmd, imageCmd, framesCmd, projectCmd, saveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func openDataset(args []string) (dataset.Dataset, error) {
	if len(args) == 0 {
		return dataset.Demo(), nil
	}
	return dataset.OpenNetCDF(args[0])
}

func runPanel(cmd *cobra.Command, args []string) error {
	ds, err := openDataset(args)
	if err != nil {
		return err
	}
	return runWithDataset(ds)
}

func runWithDataset(ds dataset.Dataset) error {
	cfg, err := loadConfig()
	if err != nil {
		ds.Close()
		return err
	}
	p := panel.New(ds, cfg)
	defer p.Close()

	if interval > 0 {
		p.SetInterval(interval)
	}
	if variable != "" {
		if _, err := p.SelectVariable(variable); err != nil {
			return err
		}
	}
	return tui.Run(p)
}

func runProject(cmd *cobra.Command, args []string) error {
	proj, err := export.LoadProject(args[0])
	if err != nil {
		return err
	}
	ds, err := proj.OpenDataset()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		ds.Close()
		return err
	}
	p := panel.New(ds, cfg)
	defer p.Close()

	if err := p.ApplyProject(proj); err != nil {
		return err
	}
	return tui.Run(p)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ds, err := dataset.OpenNetCDF(args[0])
	if err != nil {
		return err
	}
	defer ds.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "variable\tdims\tshape\tunits\tlong name\n")
	for _, name := range ds.Variables() {
		v, err := ds.Variable(name)
		if err != nil {
			continue
		}
		shape := make([]string, len(v.Shape))
		for i, s := range v.Shape {
			shape[i] = strconv.Itoa(s)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			name, strings.Join(v.Dims, ","), strings.Join(shape, "x"), v.Units, v.LongName)
	}
	return w.Flush()
}

// setupPlot builds a non-interactive panel with one plot from the
// export flags.
func setupPlot(path string) (*panel.Panel, error) {
	ds, err := dataset.OpenNetCDF(path)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		ds.Close()
		return nil, err
	}
	p := panel.New(ds, cfg)

	name := variable
	if name == "" {
		names := ds.Variables()
		if len(names) == 0 {
			p.Close()
			return nil, fmt.Errorf("%s has no data variables", path)
		}
		name = names[0]
	}

	if method != "" {
		if _, err := p.SelectVariableWith(name, plot.Kind(method)); err != nil {
			p.Close()
			return nil, err
		}
	} else if _, err := p.SelectVariable(name); err != nil {
		p.Close()
		return nil, err
	}

	for _, spec := range dimSpecs {
		dim, idxStr, ok := strings.Cut(spec, "=")
		if !ok {
			p.Close()
			return nil, fmt.Errorf("bad dimension spec %q, want name=index", spec)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("bad dimension index %q: %w", idxStr, err)
		}
		if err := p.Plot().SetIndex(dim, idx); err != nil {
			p.Close()
			return nil, err
		}
	}

	var opts []plot.Option
	if cmapName != "" {
		opts = append(opts, plot.WithCmap(cmapName))
	}
	if projection != "" {
		opts = append(opts, plot.WithProjection(projection))
	}
	if len(opts) > 0 {
		if err := p.SetOptions(opts...); err != nil {
			p.Close()
			return nil, err
		}
	}
	return p, nil
}

func runExportImage(cmd *cobra.Command, args []string) error {
	p, err := setupPlot(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	out := output
	if out == "" {
		out = p.Plot().Variable().Name + ".svg"
	}
	if err := p.ExportImage(out, width, height); err != nil {
		return err
	}
	fmt.Println("saved", out)
	return nil
}

func runExportFrames(cmd *cobra.Command, args []string) error {
	p, err := setupPlot(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if interval > 0 {
		p.SetInterval(interval)
	}
	out := output
	if out == "" {
		out = p.Plot().Variable().Name + "_frames"
	}
	if err := p.ExportAnimation(out, width, height); err != nil {
		return err
	}
	fmt.Println("saved", out)
	return nil
}

func runExportProject(cmd *cobra.Command, args []string) error {
	p, err := setupPlot(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.ExportProject(output, withData); err != nil {
		return err
	}
	fmt.Println("saved", output)
	return nil
}
