package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scalarwave/mandelgrid"
	"github.com/scalarwave/mandelgrid/palette"
	"github.com/scalarwave/mandelgrid/render"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mandelgrid",
		Short:         "vectorized multi-core Mandelbrot renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			viper.SetEnvPrefix("MANDELGRID")
			viper.AutomaticEnv()

			// Optional mandelgrid.yaml next to the working directory.
			viper.SetConfigName("mandelgrid")
			viper.SetConfigType("yaml")
			viper.AddConfigPath(".")
			if err := viper.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return fmt.Errorf("read config: %w", err)
				}
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("size", "1920x1080", "output resolution as WIDTHxHEIGHT")
	pf.String("region", "seahorse", "landmark region ("+strings.Join(landmarkNames(), ", ")+")")
	pf.String("viewport", "", "explicit viewport as xmin,xmax,ymin,ymax (overrides --region)")
	pf.Int("iterations", 1000, "maximum escape-time iterations per pixel")
	pf.Bool("smooth", true, "continuous (smoothed) escape values")
	pf.String("palette", "hsv", "palette name ("+strings.Join(paletteNames(), ", ")+")")
	pf.Int("workers", 0, "worker goroutine cap, 0 means all CPUs")
	pf.String("tile", "64x64", "work-unit granularity as WIDTHxHEIGHT")
	pf.String("preset", "", "preset name from the preset file")
	pf.String("preset-file", "", "YAML viewport preset file")

	cmd.AddCommand(renderCmd(), serveCmd())
	return cmd
}

func landmarkNames() []string {
	names := make([]string, 0, len(mandelgrid.Landmarks))
	for name := range mandelgrid.Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func paletteNames() []string {
	names := make([]string, 0, len(palette.Named))
	for name := range palette.Named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// jobFromConfig assembles the render job from flags, env, config file and
// the optional preset file, in viper's usual precedence order.
func jobFromConfig() (mandelgrid.Job, error) {
	var job mandelgrid.Job

	w, h, err := parsePair(viper.GetString("size"))
	if err != nil {
		return job, fmt.Errorf("--size: %w", err)
	}
	job.Width, job.Height = w, h
	job.MaxIter = viper.GetInt("iterations")
	job.Smooth = viper.GetBool("smooth")

	region, ok := mandelgrid.Landmarks[viper.GetString("region")]
	if !ok {
		return job, fmt.Errorf("unknown region %q, expected one of: %s",
			viper.GetString("region"), strings.Join(landmarkNames(), ", "))
	}
	job.Region = region

	if vp := viper.GetString("viewport"); vp != "" {
		job.Region, err = parseViewport(vp)
		if err != nil {
			return job, fmt.Errorf("--viewport: %w", err)
		}
	}

	if name := viper.GetString("preset"); name != "" {
		file := viper.GetString("preset-file")
		if file == "" {
			return job, errors.New("--preset requires --preset-file")
		}
		p, err := loadPreset(file, name)
		if err != nil {
			return job, err
		}
		p.apply(&job)
	}

	return job, job.Validate()
}

// newEngine builds the render engine from flags, with an optional tile hook.
func newEngine(hook render.TileHook) (*render.Engine, error) {
	opts := []render.Option{}
	if n := viper.GetInt("workers"); n > 0 {
		opts = append(opts, render.WithWorkers(n))
	}
	tw, th, err := parsePair(viper.GetString("tile"))
	if err != nil {
		return nil, fmt.Errorf("--tile: %w", err)
	}
	opts = append(opts, render.WithTileSize(tw, th))
	if hook != nil {
		opts = append(opts, render.WithTileHook(hook))
	}
	return render.NewEngine(opts...)
}

func paletteFromConfig() (palette.Func, error) {
	name := viper.GetString("palette")
	fn, ok := palette.Named[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q, expected one of: %s",
			name, strings.Join(paletteNames(), ", "))
	}
	return fn, nil
}

// parsePair parses "800x600" style dimension pairs.
func parsePair(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected WIDTHxHEIGHT, got %q", s)
	}
	w, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("width %q: %w", a, err)
	}
	h, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("height %q: %w", b, err)
	}
	return w, h, nil
}

// parseViewport parses "xmin,xmax,ymin,ymax".
func parseViewport(s string) (mandelgrid.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return mandelgrid.Region{}, fmt.Errorf("expected xmin,xmax,ymin,ymax, got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return mandelgrid.Region{}, fmt.Errorf("bound %q: %w", p, err)
		}
		vals[i] = v
	}
	return mandelgrid.Region{Xmin: vals[0], Xmax: vals[1], Ymin: vals[2], Ymax: vals[3]}, nil
}
