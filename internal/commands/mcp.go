package commands

import (
	"github.com/spf13/cobra"

	"journal/internal/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the Model Context Protocol server on stdio",
		Long: `Launch an MCP server that exposes get_entry, save_entry and delete_entry
tools backed by the configured document and blob stores.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol
			e, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			return mcp.NewServer(e.entries, Version, e.logger).Start()
		},
	}

	topLevel.AddCommand(cmd)
}
