package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jpfielding/fourier.go/pkg/imageio"
	"github.com/jpfielding/fourier.go/pkg/spectrum"
	"github.com/jpfielding/fourier.go/pkg/workspace"
	"github.com/spf13/cobra"
)

// NewFourierCmd renders the spectrum views of the current image
func NewFourierCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fourier",
		Short: "render the centered spectrum of the current image",
		Long:  "writes log scaled magnitude (fft), real (fft-real) and imaginary (fft-imag) views of the centered DFT of the current image",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := currentSession(cmd)
			if err != nil {
				return err
			}
			img, err := s.Load(workspace.Origin)
			if err != nil {
				return err
			}
			for _, v := range spectrum.Views {
				view, err := spectrum.Render(img, v)
				if err != nil {
					return err
				}
				kind := workspace.Kind(v.String())
				if err := s.SaveImage(kind, imageio.Normalize(view)); err != nil {
					return err
				}
				slog.DebugContext(ctx, "rendered spectrum", "view", v.String(), "session", s.ID)
				fmt.Fprintln(cmd.OutOrStdout(), s.Path(kind))
			}
			return nil
		},
	}
	return cmd
}
