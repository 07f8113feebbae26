package call

import (
	"github.com/skaiser/dgate/cmd/util"
	"github.com/skaiser/dgate/rpc/client"
	"github.com/spf13/cobra"
)

var (
	gatewayClient *client.GatewayClient

	// CallCmd represents the call command group
	CallCmd = &cobra.Command{
		Use:               "call",
		Short:             "Send requests to a dgate server",
		PersistentPreRunE: setupCallClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common gateway flags to the call command
	util.SetupRPCClientFlags(CallCmd)

	CallCmd.PersistentFlags().String("tenant", "default", util.WrapString("Tenant the requests run under"))

	// Add subcommands
	CallCmd.AddCommand(relationalCmd)
	CallCmd.AddCommand(documentCmd)
	CallCmd.AddCommand(recordCmd)
	CallCmd.AddCommand(recordSetCmd)
	CallCmd.AddCommand(perfCmd)
}

// setupCallClient initializes the gateway client
func setupCallClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the gateway client
	gatewayClient, err = client.NewGatewayClient(
		*config,
		t,
		s,
	)

	return err
}
