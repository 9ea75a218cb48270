package cmd

import (
	"fmt"
	"strings"

	"github.com/stencilworks/stencil/internal/scaffold"
)

// parseVariableFlags folds repeated --var key=value flags and comma
// separated --vars lists into one ordered variable set. --var entries come
// first, then --vars entries; later duplicates overwrite earlier values
// without changing their position.
func parseVariableFlags(varFlags []string, varsFlag string) (*scaffold.Variables, error) {
	vars := scaffold.NewVariables()

	for _, pair := range varFlags {
		key, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		vars.Set(key, value)
	}

	if varsFlag != "" {
		for _, pair := range strings.Split(varsFlag, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			key, value, err := splitPair(pair)
			if err != nil {
				return nil, err
			}
			vars.Set(key, value)
		}
	}

	return vars, nil
}

func splitPair(pair string) (string, string, error) {
	key, value, found := strings.Cut(pair, "=")
	if !found || key == "" {
		return "", "", fmt.Errorf("invalid variable %q, expected key=value", pair)
	}
	return key, value, nil
}
