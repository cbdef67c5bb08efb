package probe

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeOption converts one waiter option from its cty value into the Go
// target, applying implicit conversions the same way argument decoding
// does elsewhere in the config pipeline.
func decodeOption(opts map[string]cty.Value, name string, target any) (bool, error) {
	val, ok := opts[name]
	if !ok {
		return false, nil
	}

	// ImpliedType sees through the pointer target.
	impliedType, err := gocty.ImpliedType(target)
	if err != nil {
		return false, fmt.Errorf("option %q: cannot determine target type: %w", name, err)
	}
	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return false, fmt.Errorf("option %q: %w", name, err)
	}

	if err := gocty.FromCtyValue(converted, target); err != nil {
		return false, fmt.Errorf("option %q: %w", name, err)
	}
	return true, nil
}

// requireStringOption fetches a mandatory string option.
func requireStringOption(opts map[string]cty.Value, name string) (string, error) {
	var out string
	ok, err := decodeOption(opts, name, &out)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("missing required option %q", name)
	}
	return out, nil
}
