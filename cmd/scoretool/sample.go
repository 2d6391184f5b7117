package main

import (
	"fmt"

	"scorewriter/internal/app"
	"scorewriter/internal/edit"
	"scorewriter/internal/score"

	"github.com/spf13/cobra"
)

var sampleOut string

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "output", "o", "sample.score", "output path")
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Writes a demonstration score file",
	Long:  `Writes a demonstration score file, a G major scale study.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSample(sampleOut)
	},
}

func runSample(outPath string) error {
	session := edit.NewSession(score.NewScore("Scale Study"))
	if err := session.UpdateMeta("Scale Study", "Scoretool"); err != nil {
		return err
	}
	if err := session.SetKeySignature("G"); err != nil {
		return err
	}
	if err := session.SetTempo(96); err != nil {
		return err
	}

	staffID := session.Score().Staves[0].ID

	// Two measures of ascending quarters
	scale := []score.Pitch{
		{Name: score.G, Octave: 4},
		{Name: score.A, Octave: 4},
		{Name: score.B, Octave: 4},
		{Name: score.C, Octave: 5},
		{Name: score.D, Octave: 5},
		{Name: score.E, Octave: 5},
		{Name: score.F, Octave: 5},
		{Name: score.G, Octave: 5},
	}
	for i, p := range scale {
		if err := session.AddNote(staffID, i/4, p); err != nil {
			return err
		}
	}

	// A measure of descending eighths
	session.SetTool(edit.Tool{Duration: score.Eighth})
	for i := len(scale) - 1; i >= len(scale)-4; i-- {
		if err := session.AddNote(staffID, 2, scale[i]); err != nil {
			return err
		}
	}

	// Close with a half rest
	session.SetTool(edit.Tool{Duration: score.Half})
	if err := session.AddRest(staffID, 3); err != nil {
		return err
	}
	if err := session.AddNote(staffID, 3, scale[0]); err != nil {
		return err
	}

	if err := app.WriteScore(outPath, session.Score()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}
