package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// SourceKind selects how ECS clients authenticate
type SourceKind int

const (
	// SourceEnv uses the default AWS credential chain
	SourceEnv SourceKind = iota + 1
	// SourceProfile uses a named profile from the shared config files
	SourceProfile
	// SourceAssumeRole assumes an IAM role on top of the default chain
	SourceAssumeRole
)

const (
	sourceEnv         = "env"
	sourceProfilePfx  = "profile:"
	sourceAssumeRoPfx = "assume:"
)

// ErrInvalidConfigSource is returned for config_source values that are not
// "env", "profile:<name>" or "assume:<role-arn>"
var ErrInvalidConfigSource = errors.New(`config source must be either "env", "profile:<profile_name>" or "assume:<role_arn>"`)

// ConfigSource is the credential source of a cluster. It is comparable and
// used as the client registry key.
type ConfigSource struct {
	Kind    SourceKind
	Name    string
	RoleARN string
}

// EnvSource returns the ambient credential source
func EnvSource() ConfigSource {
	return ConfigSource{Kind: SourceEnv}
}

// ProfileSource returns a named profile credential source
func ProfileSource(name string) ConfigSource {
	return ConfigSource{Kind: SourceProfile, Name: name}
}

// AssumeRoleSource returns an assumed role credential source
func AssumeRoleSource(roleARN string) ConfigSource {
	return ConfigSource{Kind: SourceAssumeRole, RoleARN: roleARN}
}

// ParseConfigSource parses the textual form used in profile files
func ParseConfigSource(value string) (ConfigSource, error) {
	switch {
	case value == sourceEnv:
		return EnvSource(), nil
	case strings.HasPrefix(value, sourceProfilePfx):
		return ProfileSource(strings.TrimPrefix(value, sourceProfilePfx)), nil
	case strings.HasPrefix(value, sourceAssumeRoPfx):
		return AssumeRoleSource(strings.TrimPrefix(value, sourceAssumeRoPfx)), nil
	default:
		return ConfigSource{}, fmt.Errorf("%w; got %q", ErrInvalidConfigSource, value)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *ConfigSource) UnmarshalText(text []byte) error {
	parsed, err := ParseConfigSource(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (c ConfigSource) MarshalText() ([]byte, error) {
	if c.Kind == 0 {
		return nil, ErrInvalidConfigSource
	}
	return []byte(c.String()), nil
}

// IsZero reports whether the source was never set
func (c ConfigSource) IsZero() bool {
	return c.Kind == 0
}

func (c ConfigSource) String() string {
	switch c.Kind {
	case SourceEnv:
		return sourceEnv
	case SourceProfile:
		return sourceProfilePfx + c.Name
	case SourceAssumeRole:
		return sourceAssumeRoPfx + c.RoleARN
	default:
		return "<unset>"
	}
}

// ClusterConfig describes one ECS cluster to monitor. Immutable once loaded.
type ClusterConfig struct {
	Keys         []string     `toml:"keys" json:"keys"`
	ARN          string       `toml:"arn" json:"arn"`
	Services     []string     `toml:"services" json:"services"`
	ConfigSource ConfigSource `toml:"config_source" json:"config_source"`
}

// Validate checks that all required fields are present
func (c ClusterConfig) Validate() error {
	if c.ARN == "" {
		return errors.New("arn is required")
	}
	if c.ConfigSource.IsZero() {
		return errors.New("config_source is required")
	}
	if len(c.Keys) == 0 {
		return fmt.Errorf("cluster %s: keys are required", c.ARN)
	}
	return nil
}

// FilterByKey returns the cluster if any of its keys matches re
func (c ClusterConfig) FilterByKey(re *regexp.Regexp) (ClusterConfig, bool) {
	for _, k := range c.Keys {
		if re.MatchString(k) {
			return c, true
		}
	}
	return ClusterConfig{}, false
}

// FilterByServiceName keeps only the services matching re. Clusters left
// with no services are dropped.
func (c ClusterConfig) FilterByServiceName(re *regexp.Regexp) (ClusterConfig, bool) {
	var kept []string
	for _, s := range c.Services {
		if re.MatchString(s) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return ClusterConfig{}, false
	}
	c.Services = kept
	return c, true
}

// KeysLabel joins the cluster keys for single-column output
func KeysLabel(keys []string) string {
	return strings.Join(keys, ",")
}
