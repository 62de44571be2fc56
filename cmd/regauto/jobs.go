package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// jobFile is the YAML document accepted by --jobs:
//
//	package: tables
//	jobs:
//	  - name: EndsInAbb
//	    alphabet: ab
//	    regex: (a|b)*abb
type jobFile struct {
	Package string `yaml:"package,omitempty"`
	Jobs    []job  `yaml:"jobs"`
}

type job struct {
	Name     string `yaml:"name"`
	Alphabet string `yaml:"alphabet"`
	Regex    string `yaml:"regex"`
}

func loadJobs(path string) (*jobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var jobs jobFile
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	if err := jobs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job file %s: %w", path, err)
	}
	return &jobs, nil
}

// Validate checks that every job is named uniquely and has an alphabet. An
// empty regex is allowed and fails later with a syntax error.
func (f *jobFile) Validate() error {
	if len(f.Jobs) == 0 {
		return errors.New("no jobs")
	}

	seen := make(map[string]bool, len(f.Jobs))
	for i, j := range f.Jobs {
		if j.Name == "" {
			return fmt.Errorf("job %d: name cannot be empty", i+1)
		}
		if seen[j.Name] {
			return fmt.Errorf("job %d: duplicate name %q", i+1, j.Name)
		}
		seen[j.Name] = true
		if j.Alphabet == "" {
			return fmt.Errorf("job %q: alphabet cannot be empty", j.Name)
		}
	}
	return nil
}
