package cmd

import (
	"github.com/spf13/cobra"

	"gittrack/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the gittrack MCP server",
	Long:  `Launch an MCP server that allows AI agents to query tracked activity via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, s, err := openDashboard()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		return mcp.StartMCPServer(rootCtx, svc)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
