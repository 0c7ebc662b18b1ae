package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/sortspec/internal/order"
	"github.com/roach88/sortspec/internal/specifier"
)

// NormalizeOptions holds flags for the normalize command.
type NormalizeOptions struct {
	*RootOptions
	Decode bool // input is an encoded order
}

// NormalizeResult is the output of normalize.
type NormalizeResult struct {
	Encoded string     `json:"encoded"`
	Pairs   [][]string `json:"pairs"`
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NormalizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "normalize <sort-order>",
		Short: "Normalize a loose sort order",
		Long: `Normalize a JSON sort order into its canonical encoding.

Accepted input: an object such as {"createdAt": -1, "name": 1} (key order
is kept), or an array of field names and [field, direction] pairs.
With --decode the input is an encoded order such as "createdAt:desc,name:asc".

Examples:
  sortspec normalize '{"createdAt": -1, "name": 1}'
  sortspec normalize '[["createdAt", "desc"], "name"]'
  sortspec normalize --decode 'createdAt:desc,name:asc' --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Decode, "decode", false, "treat input as an encoded order")

	return cmd
}

func runNormalize(opts *NormalizeOptions, input string, cmd *cobra.Command) error {
	f := opts.Formatter(cmd)

	var (
		o   order.Order
		err error
	)
	if opts.Decode {
		o, err = order.Decode(input)
	} else {
		o, err = order.FromJSON([]byte(input))
	}
	if err != nil {
		_ = f.Error(string(specifier.ErrCodeInvalidSortSpecifier), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid sort order", err)
	}

	result := NormalizeResult{Encoded: order.Encode(o), Pairs: o.Pairs()}
	return f.Success(result, func(w io.Writer) {
		fmt.Fprintln(w, result.Encoded)
	})
}
