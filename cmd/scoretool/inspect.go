package main

import (
	"fmt"

	"scorewriter/internal/app"
	"scorewriter/internal/layout"
	"scorewriter/internal/score"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score file>",
	Short: "Summarizes a score file",
	Long:  `Summarizes a score file and its computed page geometry.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func runInspect(path string) error {
	sc, err := app.ReadScore(path)
	if err != nil {
		return err
	}

	fmt.Printf("title:    %s\n", sc.Title)
	if sc.Composer != "" {
		fmt.Printf("composer: %s\n", sc.Composer)
	}
	fmt.Printf("key:      %s (%+d)\n", sc.Key, sc.Key.Accidentals())
	fmt.Printf("time:     %d/%d\n", sc.Time.Beats, sc.Time.BeatType)
	fmt.Printf("tempo:    %d bpm\n", sc.Tempo)
	fmt.Printf("page:     %.0fx%.0f\n", sc.Width, sc.Height)
	fmt.Println()

	l := layout.Compute(sc)
	for i, g := range l.Staves {
		staff := g.Staff
		fmt.Printf("staff %d: %q (%s clef) y=%.0f..%.0f\n",
			i+1, staff.Name, staff.Clef, g.TopY, g.BottomY)
		for _, mb := range g.Measures {
			fmt.Printf("  measure %d: x=%.0f w=%.0f, %d notes\n",
				mb.Index+1, mb.X, mb.Width, len(mb.Notes))
			for _, slot := range mb.Notes {
				n := slot.Note
				if n.Kind == score.KindRest {
					fmt.Printf("    %s rest\n", n.Duration)
					continue
				}
				fmt.Printf("    %s %s%d at (%.1f, %.1f) pos %d\n",
					n.Duration, n.Pitch.Name, n.Pitch.Octave, slot.X, slot.Y, slot.Pos)
			}
		}
	}
	return nil
}
