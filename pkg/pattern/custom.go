package pattern

import (
	"os"
	"regexp"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// CustomRules is the on-disk shape of a user-supplied rules file.
type CustomRules struct {
	Patterns []CustomRule `yaml:"patterns"`
}

type CustomRule struct {
	Rule RuleBody `yaml:"pattern"`
}

type RuleBody struct {
	Name       string `yaml:"name"`
	Regex      string `yaml:"regex"`
	Confidence string `yaml:"confidence"`
}

// LoadCustomSpecs reads additional generic rules from a YAML file. Rules
// that fail to compile are skipped, not fatal; a custom rule can extend the
// API-key table without a rebuild. Custom kinds receive the default policy.
func LoadCustomSpecs(path string) ([]Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rules CustomRules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, err
	}

	specs := make([]Spec, 0, len(rules.Patterns))
	for _, r := range rules.Patterns {
		re, err := regexp.Compile(r.Rule.Regex)
		if err != nil {
			log.Debug().Err(err).Str("name", r.Rule.Name).Str("regex", r.Rule.Regex).Msg("Failed compiling custom rule")
			continue
		}
		specs = append(specs, Spec{
			Kind:       Kind("custom_" + r.Rule.Name),
			Protocol:   ProtocolGeneric,
			Pattern:    re,
			Precedence: 10,
		})
	}

	log.Debug().Int("count", len(specs)).Str("path", path).Msg("Loaded custom rules")
	return specs, nil
}
