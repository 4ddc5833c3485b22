package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/unitai/internal/domain/conversion"
)

// errConversionFailed marks a conversion whose banner was already printed.
var errConversionFailed = errors.New("conversion failed")

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var req conversion.Request
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Ask the model for a single conversion and print the result",
		Example: `  unitai convert --category Length --from meters --to feet --value 3
  unitai convert --from "light years" --to parsecs --value 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.requireConfig()
			if err != nil {
				return err
			}
			svc, _, release, err := newStandaloneService(cmd.Context(), cfg, ctx.logger())
			if err != nil {
				return err
			}
			defer release()

			req.Source = conversion.SourceCLI
			out, err := svc.Convert(cmd.Context(), req)
			banner := conversion.NewBanner(out, err)
			if banner.Kind == conversion.BannerSuccess {
				_, werr := fmt.Fprintln(cmd.OutOrStdout(), banner.Message)
				return werr
			}
			fmt.Fprintln(cmd.ErrOrStderr(), banner.Message) //nolint:errcheck
			return errConversionFailed
		},
	}
	cmd.Flags().StringVar(&req.Category, "category", "", "Unit category (enables catalog validation)")
	cmd.Flags().StringVar(&req.From, "from", "", "Unit to convert from")
	cmd.Flags().StringVar(&req.To, "to", "", "Unit to convert to")
	cmd.Flags().Float64Var(&req.Value, "value", 0, "Value to convert")
	return cmd
}
