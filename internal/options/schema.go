package options

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/sortspec/internal/order"
)

// Schema is the CUE definition every options value must satisfy.
const Schema = `
#Direction: "asc" | "desc"
#Pair: [string, #Direction]
#Shorthand: "asc" | "desc" | "asconly" | "desconly"

#Explicit: {
	options: [string]: [...#Pair]
	order?: [...string]
}

#Options: {
	fields!: {[string]: #Shorthand | #Explicit}
	defaultSort?: [...#Pair]
	toggleReset?: bool
	append?: "previous" | "default" | "none" | false
}
`

// validateSchema encodes o as plain data and unifies it with #Options.
// Sort orders are encoded in their [field, direction] pair form.
func validateSchema(o Options, defaultSort order.Order) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(Schema, cue.Filename("options.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile options schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Options"))

	doc := ctx.Encode(encodeOptions(o, defaultSort))
	if err := doc.Err(); err != nil {
		return ValidationErrors{{Field: "options", Message: err.Error()}}
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fromCUE(err)
	}
	return nil
}

func encodeOptions(o Options, defaultSort order.Order) map[string]any {
	fields := make(map[string]any, len(o.Fields))
	for name, fc := range o.Fields {
		fields[name] = encodeField(fc)
	}

	data := map[string]any{
		"fields":      fields,
		"defaultSort": defaultSort.Pairs(),
	}
	if o.ToggleReset != nil {
		data["toggleReset"] = *o.ToggleReset
	}
	if o.Append != "" {
		data["append"] = string(o.Append)
	}
	return data
}

func encodeField(fc FieldConfig) any {
	if fc.IsShorthand() {
		return string(fc.Shorthand)
	}

	opts := make(map[string]any, len(fc.Options))
	for _, opt := range fc.Options {
		// Already normalized by FieldConfig.check.
		value, _ := order.Normalize(opt.Value)
		opts[opt.Label] = value.Pairs()
	}

	field := map[string]any{"options": opts}
	if len(fc.Order) > 0 {
		field["order"] = fc.Order
	}
	return field
}

// fromCUE flattens a CUE error list into ValidationErrors.
func fromCUE(err error) ValidationErrors {
	cueErrs := errors.Errors(err)
	if len(cueErrs) == 0 {
		return ValidationErrors{{Field: "options", Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(cueErrs))
	for _, e := range cueErrs {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "options"
		}
		format, args := e.Msg()
		out = append(out, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}
