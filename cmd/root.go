package cmd

import (
	"fmt"
	"os"

	"github.com/skaiser/dgate/cmd/call"
	"github.com/skaiser/dgate/cmd/serve"
	"github.com/skaiser/dgate/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dgate",
		Short: "multi-tenant data gateway",
		Long: fmt.Sprintf(`dgate (v%s)

A socket-based gateway exposing relational and document data providers
through a uniform request/response protocol, with per-connection record
caching for chained method calls.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dgate",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dgate v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(call.CallCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob, cbor)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
