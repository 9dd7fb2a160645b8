package config

import (
	_ "embed"
	"strings"

	"transmuter/internal/common"
)

//go:embed reserved_functions.txt
var reservedFunctions string

// DefaultReserved returns the embedded reserved function names, lower-cased.
func DefaultReserved() []string {
	var out []string

	for _, line := range strings.Split(reservedFunctions, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		out = append(out, strings.ToLower(line))
	}

	return out
}

// ReservedSet merges the embedded list with ReservedFunctions.
func (c *Config) ReservedSet() common.Set[string] {
	set := common.NewSet(DefaultReserved()...)

	for _, name := range c.ReservedFunctions {
		set.Add(strings.ToLower(strings.TrimSpace(name)))
	}

	return set
}
