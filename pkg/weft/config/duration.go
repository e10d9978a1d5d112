package config

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// rawDefaults is the file-facing shape of Defaults. The timeout is a Go
// duration string ("30s", "1h15m"); an empty or absent value means zero.
type rawDefaults struct {
	Timeout string `yaml:"timeout" json:"timeout"`
	Retries int    `yaml:"retries" json:"retries"`
}

func (d *Defaults) fromRaw(raw rawDefaults) error {
	d.Retries = raw.Retries
	if raw.Timeout == "" {
		d.Timeout = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw.Timeout)
	if err != nil {
		return fmt.Errorf("parse default timeout %q: %w", raw.Timeout, err)
	}
	d.Timeout = parsed
	return nil
}

// UnmarshalYAML decodes the timeout from a duration string.
func (d *Defaults) UnmarshalYAML(value *yaml.Node) error {
	var raw rawDefaults
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return d.fromRaw(raw)
}

// UnmarshalJSON decodes the timeout from a duration string.
func (d *Defaults) UnmarshalJSON(data []byte) error {
	var raw rawDefaults
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.fromRaw(raw)
}

// MarshalYAML writes the timeout as a duration string.
func (d Defaults) MarshalYAML() (any, error) {
	return rawDefaults{Timeout: d.timeoutString(), Retries: d.Retries}, nil
}

// MarshalJSON writes the timeout as a duration string.
func (d Defaults) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawDefaults{Timeout: d.timeoutString(), Retries: d.Retries})
}

func (d Defaults) timeoutString() string {
	if d.Timeout == 0 {
		return ""
	}
	return d.Timeout.String()
}
