package main

import (
	"os"

	"scorewriter/internal/app"
	"scorewriter/internal/layout"
	"scorewriter/internal/render"
	"scorewriter/internal/score"

	"github.com/spf13/cobra"
)

var (
	renderOut   string
	renderBeams bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "score.svg", "output SVG path")
	renderCmd.Flags().BoolVar(&renderBeams, "beams", false, "beam runs of eighth and sixteenth notes")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <score file>",
	Short: "Engrave a score file as SVG",
	Long:  `Engrave a score file as SVG.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(args[0], renderOut, renderBeams)
	},
}

func runRender(inPath, outPath string, beams bool) error {
	sc, err := app.ReadScore(inPath)
	if err != nil {
		return err
	}

	l := layout.Compute(sc)
	prims := render.RenderLayout(l, sc, score.NoSelection(), render.Options{Beams: beams})

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return render.WriteSVG(f, sc.Width, sc.Height, prims)
}
