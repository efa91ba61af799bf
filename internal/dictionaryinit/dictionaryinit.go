// Package dictionaryinit wires the dictionary service's one-shot
// initialization (languages plus optional whitelist) into a single call
// for cmd/ocrclean, keeping main's flag handling separate from dictionary
// loading errors and fallbacks.
package dictionaryinit

import (
	"fmt"

	"github.com/ocrclean/ocrclean/internal/textclean/dictionary"
)

// Load initializes a process-wide dictionary.Service from dir and,
// if whitelistPath is non-empty, loads the whitelist too. It returns the
// service and the list of languages that actually loaded.
func Load(dir, whitelistPath string) (*dictionary.Service, []string, error) {
	svc := dictionary.New()

	count, err := svc.Init(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("dictionaryinit: %w", err)
	}
	if count == 0 {
		return nil, nil, fmt.Errorf("dictionaryinit: no dictionaries loaded from %q", dir)
	}

	if whitelistPath != "" {
		if err := svc.InitWhitelist(whitelistPath); err != nil {
			return nil, nil, fmt.Errorf("dictionaryinit: %w", err)
		}
	}

	return svc, svc.LoadedLanguages(), nil
}
