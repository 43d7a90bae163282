package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hancao97/hanai-wealth/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the snapshot read API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")
		return server.New(dataDir(cmd)).Start(listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
}
