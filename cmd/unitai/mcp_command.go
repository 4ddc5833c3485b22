package main

import (
	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/unitai/internal/mcpserver"
	"github.com/matiasleandrokruk/unitai/internal/version"
)

func newMCPCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the conversion tools over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.requireConfig()
			if err != nil {
				return err
			}
			svc, catalog, release, err := newStandaloneService(cmd.Context(), cfg, ctx.logger())
			if err != nil {
				return err
			}
			defer release()

			ctx.logger().Info("serving MCP over stdio", "version", version.Version)
			return mcpserver.ServeStdio(cmd.Context(), mcpserver.New(svc, catalog, version.Version))
		},
	}
}
