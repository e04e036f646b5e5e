package mapper

import (
	"fmt"
	"os"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

var validate = validator.New()

// LoadRules reads a rule-table override from a YAML file. The file holds an
// ordered list of {prefix, category, section} records:
//
//	- prefix: "706"
//	  category: revenue
//	  section: pl
//
// Every record is validated before the table is accepted; a single bad record
// rejects the whole file so a build never runs on a half-loaded table.
func LoadRules(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table %s: %w", path, err)
	}
	return ParseRules(raw)
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(raw []byte) ([]Rule, error) {
	var rules []Rule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode rule table: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: rule table is empty", apperrors.ErrValidation)
	}
	for i, r := range rules {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: rule %d (prefix %q): %v", apperrors.ErrValidation, i, r.Prefix, err)
		}
	}
	return rules, nil
}
