package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpfielding/fourier.go/pkg/filter"
	"github.com/jpfielding/fourier.go/pkg/kernel"
	"github.com/jpfielding/fourier.go/pkg/metric"
	"github.com/jpfielding/fourier.go/pkg/workspace"
	"github.com/spf13/cobra"
)

// NewFilterCmd filters the current image in the frequency domain
func NewFilterCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "apply a frequency domain filter to the current image",
		Long:  "filters: " + filterList() + ". Only the parameters the filter takes may be given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			family, _ := cmd.Flags().GetString("family")
			shape, _ := cmd.Flags().GetString("shape")
			opts := map[string]float64{}
			for _, p := range []kernel.Param{kernel.Cutoff, kernel.Width, kernel.Order} {
				if cmd.Flags().Changed(string(p)) {
					opts[string(p)], _ = cmd.Flags().GetFloat64(string(p))
				}
			}

			s, err := currentSession(cmd)
			if err != nil {
				return err
			}
			img, err := s.Load(workspace.Origin)
			if err != nil {
				return err
			}
			out, err := filter.Image(ctx, img, family, shape, opts)
			if err != nil {
				return err
			}
			if err := s.Save(workspace.Filtered, out); err != nil {
				return err
			}
			mse, err := metric.MSE(img, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nmse: %.4f\n", s.Path(workspace.Filtered), mse)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.String("family", "low_pass", "filter family (low_pass, high_pass, band_pass, band_reject)")
	pf.String("shape", "ideal", "response shape (ideal, gauss, butterworth)")
	pf.Float64(string(kernel.Cutoff), 0, "cutoff distance from the spectrum center")
	pf.Float64(string(kernel.Width), 0, "band width (band filters)")
	pf.Float64(string(kernel.Order), 0, "order (butterworth filters)")
	return cmd
}

func filterList() string {
	var names []string
	for _, k := range kernel.All() {
		names = append(names, fmt.Sprintf("%s(%s)", k, joinParams(k.Params)))
	}
	return strings.Join(names, ", ")
}

func joinParams(ps []kernel.Param) string {
	s := make([]string, len(ps))
	for i, p := range ps {
		s[i] = string(p)
	}
	return strings.Join(s, ",")
}
