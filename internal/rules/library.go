package rules

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
)

// Category groups rules by the analyzer check they feed.
type Category string

const (
	CategoryUrgency           Category = "urgency"
	CategoryThreat            Category = "threat"
	CategoryReward            Category = "reward"
	CategoryHarvesting        Category = "harvesting"
	CategorySocialEngineering Category = "social_engineering"
	CategorySuspiciousLink    Category = "suspicious_link"
	CategoryLegitimateSender  Category = "legitimate_sender"
	CategorySuspiciousSender  Category = "suspicious_sender"
)

// Rule is one declarative detection rule: a tagged, compiled regular
// expression plus the note reported when it matches.
type Rule struct {
	ID       string   `yaml:"id"`
	Category Category `yaml:"category"`
	Pattern  string   `yaml:"pattern"`
	Tag      string   `yaml:"tag"`
	Note     string   `yaml:"note"`

	re *regexp.Regexp
}

// Matches reports whether the rule's pattern matches the text.
func (r *Rule) Matches(text string) bool {
	return r.re.MatchString(text)
}

func (r *Rule) compile() error {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fmt.Errorf("rule %q: invalid pattern: %w", r.ID, err)
	}
	r.re = re
	return nil
}

// Institution is one entry of the known-legitimate-sender table.
type Institution struct {
	Code string          `yaml:"code"`
	Name string          `yaml:"name"`
	Type core.SenderType `yaml:"type"`
}

// Library is the versioned, immutable-after-load rule set shared by the
// analyzers. Rules are compiled once at construction.
type Library struct {
	version      string
	rules        map[Category][]*Rule
	institutions map[string]Institution
	misspellings []string
}

// NewLibrary builds a library from the builtin rule set.
func NewLibrary() *Library {
	lib := &Library{
		version:      builtinVersion,
		rules:        make(map[Category][]*Rule),
		institutions: make(map[string]Institution, len(builtinInstitutions)),
		misspellings: builtinMisspellings,
	}
	for i := range builtinRules {
		r := builtinRules[i]
		if err := r.compile(); err != nil {
			// Builtin patterns are fixed at compile time.
			panic(err)
		}
		lib.rules[r.Category] = append(lib.rules[r.Category], &r)
	}
	for _, inst := range builtinInstitutions {
		lib.institutions[inst.Code] = inst
	}
	return lib
}

// Version returns the rule set version string.
func (l *Library) Version() string {
	return l.version
}

// Rules returns the rules of a category in declaration order.
func (l *Library) Rules(cat Category) []*Rule {
	return l.rules[cat]
}

// MatchAny reports whether any rule of the category matches the text.
func (l *Library) MatchAny(cat Category, text string) bool {
	for _, r := range l.rules[cat] {
		if r.Matches(text) {
			return true
		}
	}
	return false
}

// MatchAll returns every rule of the category that matches the text.
func (l *Library) MatchAll(cat Category, text string) []*Rule {
	var matched []*Rule
	for _, r := range l.rules[cat] {
		if r.Matches(text) {
			matched = append(matched, r)
		}
	}
	return matched
}

// LookupInstitution resolves a normalized sender code against the
// known-legitimate-institution table.
func (l *Library) LookupInstitution(code string) (Institution, bool) {
	inst, ok := l.institutions[code]
	return inst, ok
}

// ReferenceSenders returns the institution codes used by the
// typosquatting check, sorted so callers see a stable order.
func (l *Library) ReferenceSenders() []string {
	codes := make([]string, 0, len(l.institutions))
	for code := range l.institutions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// InstitutionByCode returns the institution for a reference sender code.
func (l *Library) InstitutionByCode(code string) (Institution, bool) {
	return l.LookupInstitution(code)
}

// Misspellings returns the known-misspelling word list used by the
// language-quality heuristic.
func (l *Library) Misspellings() []string {
	return l.misspellings
}

// overlayFile is the on-disk shape of a rule overlay.
type overlayFile struct {
	Version      string        `yaml:"version"`
	Rules        []Rule        `yaml:"rules"`
	Institutions []Institution `yaml:"institutions"`
}

// LoadOverlay reads a YAML overlay file and merges its rules and
// institutions into the library. Overlay rules append after the
// builtins of their category so builtin ordering is preserved.
func (l *Library) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rules overlay: %w", err)
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse rules overlay: %w", err)
	}

	for i := range overlay.Rules {
		r := overlay.Rules[i]
		if r.ID == "" || r.Category == "" {
			return fmt.Errorf("overlay rule %d: id and category are required", i)
		}
		if err := r.compile(); err != nil {
			return err
		}
		l.rules[r.Category] = append(l.rules[r.Category], &r)
	}
	for _, inst := range overlay.Institutions {
		l.institutions[inst.Code] = inst
	}
	if overlay.Version != "" {
		l.version = l.version + "+" + overlay.Version
	}
	return nil
}
