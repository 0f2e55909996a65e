package transcribe

import (
	"fmt"
	"sort"
	"strings"
)

const DefaultModel = "tiny"

// Model sizes faster-whisper resolves by name. Hosted backends only care
// that the name is on the list; they substitute their own model.
var knownModels = map[string]struct{}{
	"tiny":            {},
	"tiny.en":         {},
	"base":            {},
	"base.en":         {},
	"small":           {},
	"small.en":        {},
	"medium":          {},
	"medium.en":       {},
	"large-v1":        {},
	"large-v2":        {},
	"large-v3":        {},
	"distil-large-v3": {},
}

func ModelNames() []string {
	names := make([]string, 0, len(knownModels))
	for name := range knownModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func KnownModel(name string) bool {
	_, ok := knownModels[name]
	return ok
}

// ValidateModel normalizes the requested size and rejects names that no
// backend could load, so bad requests fail before any upload is processed.
func ValidateModel(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultModel, nil
	}
	if !KnownModel(name) {
		return "", fmt.Errorf("%w: unknown model %q (known: %s)",
			ErrModelLoad, name, strings.Join(ModelNames(), ", "))
	}
	return name, nil
}
