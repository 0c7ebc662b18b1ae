package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sortspec/internal/options"
	"github.com/roach88/sortspec/internal/order"
	"github.com/roach88/sortspec/internal/registry"
	"github.com/roach88/sortspec/internal/specifier"
)

// FieldReport describes one configured field.
type FieldReport struct {
	Name   string            `json:"name"`
	Cycle  []string          `json:"cycle"`
	Values map[string]string `json:"values"`
}

// ValidateResult is the output of a successful validate.
type ValidateResult struct {
	Valid       bool          `json:"valid"`
	Fields      []FieldReport `json:"fields"`
	DefaultSort string        `json:"defaultSort"`
	ToggleReset bool          `json:"toggleReset"`
	Append      string        `json:"append"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <options.yaml>",
		Short: "Validate a sort specifier options file",
		Long: `Validate a YAML (or JSON) options file and print the resolved fields.

Exit codes:
  0 - Options are valid
  1 - Options failed validation
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.Formatter(cmd)

	loaded, err := options.Load(path)
	if err != nil && !options.IsValidationError(err) {
		_ = f.Error(ErrCodeCommand, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load options", err)
	}

	var resolved options.Resolved
	if err == nil {
		resolved, err = loaded.Resolve()
	}
	var reg *registry.Registry
	if err == nil {
		reg, err = registry.Build(resolved.Fields)
	}
	if err != nil {
		_ = f.Error(string(specifier.ErrCodeInvalidOptions), "options failed validation", validationDetails(err))
		return WrapExitError(ExitFailure, "invalid options", err)
	}

	f.VerboseLog("Validated %d field(s) in %s", reg.Len(), path)

	result := ValidateResult{
		Valid:       true,
		Fields:      make([]FieldReport, 0, reg.Len()),
		DefaultSort: order.Encode(resolved.DefaultSort),
		ToggleReset: resolved.ToggleReset,
		Append:      resolved.Append.String(),
	}
	for _, name := range reg.Names() {
		spec, _ := reg.Lookup(name)
		fr := FieldReport{Name: name, Cycle: spec.Order, Values: make(map[string]string, len(spec.Values))}
		for label, v := range spec.Values {
			fr.Values[label] = order.Encode(v)
		}
		result.Fields = append(result.Fields, fr)
	}

	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ options valid (%d fields)\n", len(result.Fields))
		for _, fr := range result.Fields {
			fmt.Fprintf(w, "  %s: %s\n", fr.Name, strings.Join(fr.Cycle, " -> "))
		}
		fmt.Fprintf(w, "defaultSort: %q\n", result.DefaultSort)
		fmt.Fprintf(w, "toggleReset: %t\n", result.ToggleReset)
		fmt.Fprintf(w, "append: %s\n", result.Append)
	})
}

// validationDetails lists each validation failure separately when err
// carries them.
func validationDetails(err error) []string {
	var errs options.ValidationErrors
	if errors.As(err, &errs) {
		out := make([]string, len(errs))
		for i, e := range errs {
			out[i] = e.Error()
		}
		return out
	}
	return []string{err.Error()}
}
