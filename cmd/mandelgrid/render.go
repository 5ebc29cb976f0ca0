package main

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scalarwave/mandelgrid/palette"
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame and write it as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context())
		},
	}
	cmd.Flags().String("out", "mandel.png", "output PNG path")
	return cmd
}

func runRender(ctx context.Context) error {
	job, err := jobFromConfig()
	if err != nil {
		return err
	}
	pal, err := paletteFromConfig()
	if err != nil {
		return err
	}
	eng, err := newEngine(nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Printf("rendering %dx%d, max %d iterations", job.Width, job.Height, job.MaxIter)
	start := time.Now()
	buf, err := eng.Render(ctx, job)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("render took %s", time.Since(start))

	img := palette.Image(buf, job.MaxIter, pal, palette.Background)

	filename := viper.GetString("out")
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	log.Printf("rendered image saved to %q", filename)
	return nil
}
