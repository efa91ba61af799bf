// Package dictionary loads Hunspell-format affix/dictionary pairs for up to
// four languages and answers word-membership queries (C9). It is a small,
// deliberately narrow .dic-format reader: it reads the base word list (one
// entry per line, optional "/FLAGS" suffix) and ignores affix rules — flags
// are not expanded into inflected forms. This keeps recall lower than a
// full Hunspell stemmer but every word it does report is genuinely listed
// in the source dictionary, which is the property the vocabulary extractor
// and line unwrapper both depend on.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Languages recognized by filename convention: "<code>.aff" / "<code>.dic".
var Languages = []string{"en", "de", "fr", "la"}

// Service answers word-membership queries against every dictionary loaded
// at Init time. It is read-only after Init and safe to share across
// worker goroutines.
type Service struct {
	mu        sync.RWMutex
	byLang    map[string]map[string]bool
	whitelist map[string]bool
	initOnce  sync.Once
	inited    bool
}

// New returns a Service with nothing loaded. Call Init (and optionally
// InitWhitelist) before using it from workers.
func New() *Service {
	return &Service{
		byLang: make(map[string]map[string]bool),
	}
}

// Init loads the "<code>.dic" file found in dir for each language in
// Languages (the ".aff" affix file is not read). It is safe to call only
// once per process — a second call is a programming error and returns a
// non-nil error without altering already-loaded state.
//
// A missing dir is fatal to the call (returns 0 and a non-nil error), as is
// a dir with no language file at all. A missing single-language file is
// skipped; Init returns how many languages loaded, and LoadedLanguages
// names them.
func (s *Service) Init(dir string) (loadedCount int, err error) {
	s.mu.RLock()
	already := s.inited
	s.mu.RUnlock()
	if already {
		return 0, fmt.Errorf("dictionary: Init called more than once")
	}

	s.initOnce.Do(func() {
		loadedCount, err = s.doInit(dir)
		s.mu.Lock()
		s.inited = true
		s.mu.Unlock()
	})
	return loadedCount, err
}

func (s *Service) doInit(dir string) (int, error) {
	info, statErr := os.Stat(dir)
	if statErr != nil {
		return 0, fmt.Errorf("dictionary: directory %q: %w", dir, statErr)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("dictionary: %q is not a directory", dir)
	}

	loaded := 0
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lang := range Languages {
		dicPath := filepath.Join(dir, lang+".dic")
		words, loadErr := loadDic(dicPath)
		if loadErr != nil {
			// Missing single-language file: non-fatal, skip.
			continue
		}
		s.byLang[lang] = words
		loaded++
	}

	if loaded == 0 {
		return 0, fmt.Errorf("dictionary: no language dictionaries found in %q", dir)
	}
	return loaded, nil
}

// loadDic reads a Hunspell .dic file: a count line followed by one word
// per line, optionally suffixed "/FLAGS" which this reader discards.
func loadDic(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			// The first non-empty line is a decimal word count in a
			// well-formed .dic file; if it doesn't parse, treat every
			// line (including this one) as a word instead of failing.
			if _, convErr := strconv.Atoi(line); convErr == nil {
				continue
			}
		}
		word := line
		if idx := strings.IndexByte(line, '/'); idx >= 0 {
			word = line[:idx]
		}
		word = strings.TrimSpace(word)
		if word != "" {
			words[strings.ToLower(word)] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// InitWhitelist loads a flat, newline-delimited whitelist file used to
// suppress tokens during vocabulary extraction. Blank lines and lines
// beginning with "#" are ignored. Safe to call at most once.
func (s *Service) InitWhitelist(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dictionary: whitelist %q: %w", path, err)
	}
	defer f.Close()

	wl := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		wl[strings.ToLower(line)] = true
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.whitelist = wl
	s.mu.Unlock()
	return nil
}

// IsKnownWord reports whether any loaded dictionary recognizes word,
// case-insensitively.
func (s *Service) IsKnownWord(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lower := strings.ToLower(word)
	for _, set := range s.byLang {
		if set[lower] {
			return true
		}
	}
	return false
}

// WordLanguages returns every loaded language that recognizes word.
func (s *Service) WordLanguages(word string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lower := strings.ToLower(word)
	var langs []string
	for _, lang := range Languages {
		if set, ok := s.byLang[lang]; ok && set[lower] {
			langs = append(langs, lang)
		}
	}
	return langs
}

// IsWhitelisted reports whether word appears in the loaded whitelist. It
// is false (not an error) when no whitelist was loaded.
func (s *Service) IsWhitelisted(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.whitelist[strings.ToLower(word)]
}

// LoadedLanguages returns the languages that successfully loaded.
func (s *Service) LoadedLanguages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var langs []string
	for _, lang := range Languages {
		if _, ok := s.byLang[lang]; ok {
			langs = append(langs, lang)
		}
	}
	return langs
}
