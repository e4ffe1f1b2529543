package cmd

import (
	"context"
	"fmt"

	"github.com/jpfielding/fourier.go/pkg/imageio"
	"github.com/jpfielding/fourier.go/pkg/metric"
	"github.com/jpfielding/fourier.go/pkg/workspace"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// NewDiffCmd prints the mean squared error between two images
func NewDiffCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [a b]",
		Short: "mean squared error between two images",
		Long:  "compares two image files, or with --kind the current origin and one of its stored results",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")

			var a, b *mat.Dense
			switch {
			case len(args) == 2:
				var err error
				if a, err = loadMatrix(args[0]); err != nil {
					return err
				}
				if b, err = loadMatrix(args[1]); err != nil {
					return err
				}
			case len(args) == 0 && kind != "":
				s, err := currentSession(cmd)
				if err != nil {
					return err
				}
				if a, err = s.Load(workspace.Origin); err != nil {
					return err
				}
				k, err := workspace.ParseKind(kind)
				if err != nil {
					return err
				}
				if b, err = s.Load(k); err != nil {
					return err
				}
			default:
				return fmt.Errorf("either two image paths or --kind is required")
			}
			mse, err := metric.MSE(a, b)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", mse)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("kind", "k", "", "stored result to compare to the origin (filtered, compressed)")
	return cmd
}

func loadMatrix(path string) (*mat.Dense, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	return imageio.Matrix(img), nil
}
