package source

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule is one textual replacement applied to source units before parsing.
type Rule struct {
	// Files is a doublestar glob over relative paths; empty matches every file.
	Files string `toml:"files"`
	// Find is a literal string, or a regular expression when Regex is set.
	Find string `toml:"find"`
	// Replace is the replacement; with Regex it may reference groups ($0, $1).
	Replace string `toml:"replace"`
	Regex   bool   `toml:"regex"`
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Preprocessor applies replacement rules in order.
type Preprocessor struct {
	rules []compiledRule
}

// NewPreprocessor validates and compiles rules.
func NewPreprocessor(rules []Rule) (*Preprocessor, error) {
	p := &Preprocessor{}

	for i, r := range rules {
		if r.Find == "" {
			return nil, fmt.Errorf("replace rule %d: find is empty", i+1)
		}

		if r.Files != "" && !doublestar.ValidatePattern(r.Files) {
			return nil, fmt.Errorf("replace rule %d: invalid files pattern %q", i+1, r.Files)
		}

		c := compiledRule{Rule: r}

		if r.Regex {
			re, err := regexp.Compile(r.Find)
			if err != nil {
				return nil, fmt.Errorf("replace rule %d: %w", i+1, err)
			}

			c.re = re
		}

		p.rules = append(p.rules, c)
	}

	return p, nil
}

// Apply rewrites src, the content of the unit at the relative path rel.
// src is never modified in place.
func (p *Preprocessor) Apply(rel string, src []byte) []byte {
	if p == nil {
		return src
	}

	for _, r := range p.rules {
		if r.Files != "" {
			if ok, _ := doublestar.Match(r.Files, rel); !ok {
				continue
			}
		}

		if r.re != nil {
			src = r.re.ReplaceAll(src, []byte(r.Replace))
			continue
		}

		src = bytes.ReplaceAll(src, []byte(r.Find), []byte(r.Replace))
	}

	return src
}
