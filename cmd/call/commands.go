package call

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/skaiser/dgate/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	relationalCmd = &cobra.Command{
		Use:   "relational [model] [method] [params...]",
		Short: "Call a method on a relational model",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doCall(common.TargetRelational, args)
		},
	}
	documentCmd = &cobra.Command{
		Use:   "document [collection] [method] [params...]",
		Short: "Call a method on a document collection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doCall(common.TargetDocument, args)
		},
	}
	recordCmd = &cobra.Command{
		Use:   "record [name] [method] [params...]",
		Short: "Call a method on the cached record of a previous call (name is the derived model name, e.g. 'student')",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doCall(common.TargetCachedRecord, args)
		},
	}
	recordSetCmd = &cobra.Command{
		Use:   "recordset [name] [method] [params...]",
		Short: "Call a method on the cached record set of a previous call",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doCall(common.TargetCachedRecordSet, args)
		},
	}
)

// doCall sends a single request and renders the result
func doCall(target common.ProviderTarget, args []string) error {
	params := parseParams(args[2:])

	res, err := gatewayClient.Call(target, viper.GetString("tenant"), args[0], args[1], params...)
	if err != nil {
		return err
	}

	renderResult(res)
	return nil
}

// parseParams decodes each positional parameter as JSON, falling back to the
// raw string (so both '5' and 'alice' work without quoting gymnastics)
func parseParams(args []string) []any {
	params := make([]any, len(args))
	for i, arg := range args {
		var v any
		if err := json.Unmarshal([]byte(arg), &v); err != nil {
			v = arg
		}
		params[i] = v
	}
	return params
}

// renderResult pretty-prints a response payload
func renderResult(v any) {
	switch val := v.(type) {
	case nil:
		pterm.Println("null")

	case map[string]any:
		renderRecord(val)

	case []any:
		pterm.Info.Printfln("%d results", len(val))
		for _, item := range val {
			if m, ok := item.(map[string]any); ok {
				renderRecord(m)
			} else {
				pterm.Println(formatValue(item))
			}
		}

	default:
		pterm.Println(formatValue(val))
	}
}

// renderRecord prints one attribute map as a two-column table
func renderRecord(m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := pterm.TableData{}
	for _, k := range keys {
		data = append(data, []string{k, formatValue(m[k])})
	}
	_ = pterm.DefaultTable.WithData(data).Render()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		// JSON numbers decode to float64, print integers without the decimal point
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(out)
	}
}
