package rules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/corvidscan/keyhunter/env"
	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultCatalogTOML []byte

// gitLeaksConfig mirrors the gitleaks rule file schema: a title, an
// optional allow-list, and a sequence of rule records.
type gitLeaksConfig struct {
	Title     string          `toml:"title"`
	AllowList *gitLeaksAllow  `toml:"allowlist"`
	Rules     []gitLeaksRule  `toml:"rules"`
}

type gitLeaksAllow struct {
	Description string   `toml:"description"`
	Paths       []string `toml:"paths"`
}

type gitLeaksRule struct {
	ID          string   `toml:"id"`
	Description string   `toml:"description"`
	Regex       string   `toml:"regex"`
	Keywords    []string `toml:"keywords"`
	Entropy     *float64 `toml:"entropy"`
}

// assignmentInfix is the fixed literal substring gitleaks-style rules use
// to spell "identifier, assignment operator, opening quote": a rule's raw
// regex is split on an exact textual occurrence of this string, not a
// pattern matched against it. A rule author must write this substring
// verbatim in their regex for the split to trigger; it is not detected
// structurally.
const assignmentInfix = `(?:[\s|']|[\s|"]){0,3}(?:=|>|:{1,3}=|\|\|:|<=|=>|:|\?=)(?:'|\"|\s|=|\x60){0,5}`

const caseInsensitivePrefix = "(?i)"

// Default returns the embedded default gitleaks-schema catalog.
func Default() (*Catalog, error) {
	return Load(defaultCatalogTOML)
}

// LoadFile reads and compiles a gitleaks-schema TOML rule file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	return Load(data)
}

// Load compiles a gitleaks-schema TOML rule file already in memory.
//
// Rules whose value pattern fails to compile are skipped; the accumulated
// skip errors are returned as a single *env.AggregateError alongside the
// partial catalog, so a caller can choose to proceed with what did
// compile or treat any failure as fatal.
func Load(data []byte) (*Catalog, error) {
	var cfg gitLeaksConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("rules: parse toml: %w", err)
	}

	catalog := &Catalog{}
	var errs []error
	for _, r := range cfg.Rules {
		if err := compileRule(catalog, r); err != nil {
			errs = append(errs, fmt.Errorf("rule %q: %w", r.ID, err))
		}
	}
	if len(errs) > 0 {
		return catalog, &env.AggregateError{Errors: errs}
	}
	return catalog, nil
}

// compileRule implements the four compilation steps of spec.md §4.1.
func compileRule(catalog *Catalog, r gitLeaksRule) error {
	raw := strings.TrimSpace(r.Regex)
	if raw == "" {
		return fmt.Errorf("empty regex")
	}

	// Step 1: detect and strip a leading case-insensitive flag.
	caseInsensitive := strings.HasPrefix(raw, caseInsensitivePrefix)
	if caseInsensitive {
		raw = strings.TrimPrefix(raw, caseInsensitivePrefix)
	}

	// Step 2: split on the assignment infix, on the raw (uncompiled) text.
	// The name side ends at the first occurrence; the value side runs up to
	// a second occurrence if there is one, and text after that is dropped.
	nameRaw, valueRaw := "", raw
	if parts := strings.SplitN(raw, assignmentInfix, 3); len(parts) >= 2 {
		nameRaw, valueRaw = parts[0], parts[1]
	}

	// Step 3: compile each side with the flag restored.
	var namePattern *Pattern
	if nameRaw != "" {
		nameSrc := nameRaw
		if caseInsensitive {
			nameSrc = caseInsensitivePrefix + nameSrc
		}
		// A broken name side demotes the rule to value-only rather than
		// failing it outright.
		if p, err := NewRegexPattern(nameSrc); err == nil {
			namePattern = p
		}
	}

	valueSrc := valueRaw
	if caseInsensitive {
		valueSrc = caseInsensitivePrefix + valueSrc
	}
	valuePattern, err := NewRegexPattern(valueSrc)
	if err != nil {
		return fmt.Errorf("value pattern: %w", err)
	}

	// Step 4: store keywords/entropy/description, assign a fresh RuleId.
	var entropy *float64
	if r.Entropy != nil {
		e := *r.Entropy
		entropy = &e
	}
	catalog.addRule(r.ID, r.Description, namePattern, valuePattern, r.Keywords, entropy)
	return nil
}
