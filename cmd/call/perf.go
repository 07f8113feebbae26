package call

import (
	"fmt"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/skaiser/dgate/cmd/util"
	"github.com/skaiser/dgate/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfCmd = &cobra.Command{
		Use:     "perf [model] [method] [params...]",
		Short:   "Measure request latency and throughput against a dgate server",
		Args:    cobra.MinimumNArgs(2),
		PreRunE: processPerfConfig,
		RunE:    runPerf,
	}
	perfRequests = 10000
	perfTarget   = "relational"
)

func init() {
	// add flags
	key := "requests"
	perfCmd.Flags().Int(key, 10000, util.WrapString("Number of requests to send"))
	key = "target"
	perfCmd.Flags().String(key, "relational", util.WrapString("Provider target to benchmark (relational, document)"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	perfRequests = viper.GetInt("requests")
	perfTarget = viper.GetString("target")

	return nil
}

func runPerf(_ *cobra.Command, args []string) error {

	var target common.ProviderTarget
	switch perfTarget {
	case "relational":
		target = common.TargetRelational
	case "document":
		target = common.TargetDocument
	default:
		return fmt.Errorf("invalid perf target %s (expected relational or document)", perfTarget)
	}

	tenant := viper.GetString("tenant")
	model, method := args[0], args[1]
	params := parseParams(args[2:])

	fmt.Println("Performance testing tool for dgate servers")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Requests: %d\n", perfRequests)
	fmt.Printf("Call:     %s %s.%s\n", perfTarget, model, method)
	fmt.Println()

	fmt.Println("starting test...")

	// Requests run sequentially, matching the protocol's one-at-a-time
	// contract per connection
	timer := metrics.NewTimer()
	errCount := 0

	start := time.Now()
	for i := 0; i < perfRequests; i++ {
		timer.Time(func() {
			if _, err := gatewayClient.Call(target, tenant, model, method, params...); err != nil {
				errCount++
			}
		})
	}
	elapsed := time.Since(start)

	fmt.Println()
	fmt.Printf("%-16s%d (%d failed)\n", "requests", timer.Count(), errCount)
	fmt.Printf("%-16s%s\n", "total", elapsed)
	fmt.Printf("%-16s%s/op\n", "mean", time.Duration(int64(timer.Mean())))
	fmt.Printf("%-16s%s/op\n", "p95", time.Duration(int64(timer.Percentile(0.95))))
	fmt.Printf("%-16s%s/op\n", "p99", time.Duration(int64(timer.Percentile(0.99))))
	fmt.Printf("%-16s%.0f ops/sec\n", "throughput", float64(timer.Count())/elapsed.Seconds())

	return nil
}
