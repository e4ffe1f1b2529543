package cmd

import (
	"context"
	"fmt"

	"github.com/jpfielding/fourier.go/pkg/compress"
	"github.com/jpfielding/fourier.go/pkg/imageio"
	"github.com/jpfielding/fourier.go/pkg/metric"
	"github.com/jpfielding/fourier.go/pkg/workspace"
	"github.com/spf13/cobra"
)

// NewCompressCmd compresses the current image by coefficient truncation
func NewCompressCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "compress the current image by discarding block transform coefficients",
		Long:  "splits the image into 8x8 blocks, transforms them (dft|dct) and keeps only the largest (1-level) fraction of all coefficients",
		RunE: func(cmd *cobra.Command, args []string) error {
			method, _ := cmd.Flags().GetString("method")
			level, _ := cmd.Flags().GetFloat64("level")
			align, _ := cmd.Flags().GetBool("align")

			s, err := currentSession(cmd)
			if err != nil {
				return err
			}
			src, err := imageio.Load(s.Path(workspace.Origin))
			if err != nil {
				return err
			}
			if align {
				if src, err = imageio.Align(src, compress.BlockSize); err != nil {
					return err
				}
			}
			img := imageio.Matrix(src)
			out, err := compress.Image(ctx, img, level, method)
			if err != nil {
				return err
			}
			if err := s.Save(workspace.Compressed, out); err != nil {
				return err
			}
			mse, err := metric.MSE(img, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nmse: %.4f\n", s.Path(workspace.Compressed), mse)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("method", "m", "dct", "transform (dft|dct)")
	pf.Float64P("level", "l", 0.9, "fraction of coefficients to discard, within [0, 1]")
	pf.Bool("align", true, "center crop the image to a multiple of the block size")
	return cmd
}
