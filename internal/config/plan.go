package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Import modes understood by a plan entry.
const (
	ImportModeAppend  = "append"
	ImportModeReplace = "replace"
)

// ImportPlan lists spreadsheet files to load into tables, in order.
//
//	imports:
//	  - table: projects
//	    file: Example/projects.xlsx
//	  - table: MEP
//	    file: Example/Sample_MEP_2401.xlsx
//	    sheet: Data
//	    mode: replace
type ImportPlan struct {
	Imports []ImportEntry `yaml:"imports"`
}

// ImportEntry is a single table/file pair.
type ImportEntry struct {
	Table string `yaml:"table"`
	File  string `yaml:"file"`
	Sheet string `yaml:"sheet,omitempty"`
	Mode  string `yaml:"mode,omitempty"`
}

// LoadPlan reads a YAML import plan. Relative file paths are resolved
// against the directory holding the plan.
func LoadPlan(path string) (*ImportPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import plan: %w", err)
	}

	plan, err := ParsePlan(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range plan.Imports {
		if !filepath.IsAbs(plan.Imports[i].File) {
			plan.Imports[i].File = filepath.Join(base, plan.Imports[i].File)
		}
	}
	return plan, nil
}

// ParsePlan decodes and validates plan YAML without touching the filesystem.
func ParsePlan(data []byte) (*ImportPlan, error) {
	var plan ImportPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse import plan: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate checks every entry and fills in the default mode.
func (p *ImportPlan) Validate() error {
	if len(p.Imports) == 0 {
		return &ConfigError{Field: "imports", Message: "import plan has no entries"}
	}
	for i := range p.Imports {
		entry := &p.Imports[i]
		field := fmt.Sprintf("imports[%d]", i)
		if strings.TrimSpace(entry.Table) == "" {
			return &ConfigError{Field: field + ".table", Message: "table cannot be empty"}
		}
		if strings.TrimSpace(entry.File) == "" {
			return &ConfigError{Field: field + ".file", Message: "file cannot be empty"}
		}
		switch strings.ToLower(entry.Mode) {
		case "":
			entry.Mode = ImportModeAppend
		case ImportModeAppend, ImportModeReplace:
			entry.Mode = strings.ToLower(entry.Mode)
		default:
			return &ConfigError{Field: field + ".mode", Message: "mode must be append or replace"}
		}
	}
	return nil
}
