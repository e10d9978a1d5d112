// Package config provides registration settings for exporting compiled
// workflows to the remote orchestration engine.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for settings validation.
var (
	// ErrProjectRequired indicates the project field is empty.
	ErrProjectRequired = errors.New("registration project is required")

	// ErrDomainRequired indicates the domain field is empty.
	ErrDomainRequired = errors.New("registration domain is required")
)

// Defaults holds node metadata defaults applied when an entity does not
// declare its own.
type Defaults struct {
	// Timeout is the default per-node execution timeout. Zero means none.
	// In settings files it is written as a Go duration string, e.g. "30s".
	Timeout time.Duration `yaml:"-" json:"-"`
	// Retries is the default per-node retry count.
	Retries int `yaml:"retries" json:"retries"`
}

// Settings identifies where exported workflows are registered.
// Project and domain are required; version may be left empty, in which
// case the exporter generates one.
type Settings struct {
	// Project is the remote project the workflow belongs to.
	Project string `yaml:"project" json:"project"`
	// Domain is the remote domain (e.g. "development", "production").
	Domain string `yaml:"domain" json:"domain"`
	// Version pins the registered workflow version. Optional.
	Version string `yaml:"version" json:"version"`
	// Defaults are node metadata defaults.
	Defaults Defaults `yaml:"defaults" json:"defaults"`
}

// Validate checks required fields. Multiple violations are joined together.
func (s Settings) Validate() error {
	var errs []error
	if s.Project == "" {
		errs = append(errs, ErrProjectRequired)
	}
	if s.Domain == "" {
		errs = append(errs, ErrDomainRequired)
	}
	if s.Defaults.Retries < 0 {
		errs = append(errs, fmt.Errorf("default retries cannot be negative: %d", s.Defaults.Retries))
	}
	if s.Defaults.Timeout < 0 {
		errs = append(errs, fmt.Errorf("default timeout cannot be negative: %s", s.Defaults.Timeout))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
