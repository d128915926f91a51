package cmd

import (
	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [csv-path-or-url]",
	Short: "Start the motionlens MCP server",
	Long:  `Load a dataset into one session and launch an MCP server that lets AI agents read its views and dispatch filter events via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		// Suppress the load header to avoid polluting stdio, which carries the protocol.
		session, err := core.OpenSession(core.WithSuppressHeader(rootCtx), cfg, nil, nil)
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, session)
	},
}
