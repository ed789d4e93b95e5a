// Package offlineenv points Hugging Face and tokenizer libraries at offline,
// telemetry-free behaviour before anything is imported.
package offlineenv

import "fmt"

// Var is a variable name with the value applied when it is unset.
type Var struct {
	Name  string
	Value string
}

// Defaults are the offline flags. Order carries no meaning.
var Defaults = []Var{
	{Name: "TRANSFORMERS_OFFLINE", Value: "1"},
	{Name: "HF_HUB_OFFLINE", Value: "1"},
	{Name: "HF_HUB_DISABLE_TELEMETRY", Value: "1"},
	{Name: "TOKENIZERS_PARALLELISM", Value: "false"},
}

// Apply sets each variable in vars that is not already present in env and
// returns the names it set. A variable that is present, even if empty, is
// left untouched, so running Apply again changes nothing.
func Apply(env Env, vars []Var) ([]string, error) {
	var set []string
	for _, v := range vars {
		if _, ok := env.LookupEnv(v.Name); ok {
			continue
		}
		if err := env.Setenv(v.Name, v.Value); err != nil {
			return set, fmt.Errorf("set %s: %w", v.Name, err)
		}
		set = append(set, v.Name)
	}
	return set, nil
}
