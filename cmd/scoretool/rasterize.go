package main

import (
	"image/png"
	"os"

	"scorewriter/internal/app"
	"scorewriter/internal/layout"
	"scorewriter/internal/raster"
	"scorewriter/internal/render"
	"scorewriter/internal/score"

	"github.com/spf13/cobra"
)

var (
	rasterizeOut   string
	rasterizeBeams bool
)

func init() {
	rasterizeCmd.Flags().StringVarP(&rasterizeOut, "output", "o", "score.png", "output PNG path")
	rasterizeCmd.Flags().BoolVar(&rasterizeBeams, "beams", false, "beam runs of eighth and sixteenth notes")
	rootCmd.AddCommand(rasterizeCmd)
}

var rasterizeCmd = &cobra.Command{
	Use:   "rasterize <score file>",
	Short: "Engrave a score file as PNG",
	Long:  `Engrave a score file as PNG.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRasterize(args[0], rasterizeOut, rasterizeBeams)
	},
}

func runRasterize(inPath, outPath string, beams bool) error {
	sc, err := app.ReadScore(inPath)
	if err != nil {
		return err
	}

	l := layout.Compute(sc)
	prims := render.RenderLayout(l, sc, score.NoSelection(), render.Options{Beams: beams})
	img := raster.Draw(prims, int(sc.Width), int(sc.Height))

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
