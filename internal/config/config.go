// Package config locates ecscope's profile files and turns them into the
// cluster list the fetch layer works on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/dhth/ecscope/internal/types"
)

const (
	// AppDir is ecscope's directory inside the user config directory
	AppDir = "ecscope"
	// ProfilesDir holds one TOML file per profile
	ProfilesDir = "profiles"
	// ProfileExt is the extension of profile files
	ProfileExt = ".toml"

	xdgConfigHome = "XDG_CONFIG_HOME"
)

var (
	ErrXDGConfigHomeNotAbsolute = errors.New("XDG_CONFIG_HOME is not an absolute path")
	ErrCouldntGetConfigDir      = errors.New("couldn't get your config directory")
	ErrProfileDoesntExist       = errors.New("profile doesn't exist")
	ErrProfileAlreadyExists     = errors.New("profile already exists")
	ErrProfileNameInvalid       = errors.New("profile name is invalid")
	ErrConfigInvalid            = errors.New("config file is invalid")
	ErrCouldntReadProfile       = errors.New("couldn't read profile file")
	ErrCouldntCreateProfileDir  = errors.New("couldn't create profiles directory")
	ErrCouldntOpenProfile       = errors.New("couldn't open file in ecscope's config directory")
	ErrCouldntWriteProfile      = errors.New("couldn't write to file in ecscope's config directory")
	ErrCouldntReadProfilesDir   = errors.New("couldn't read files in ecscope's config directory")
)

// Profile is one profile file on disk
type Profile struct {
	Name string
	Path string
}

// File is the decoded contents of a profile
type File struct {
	Clusters []types.ClusterConfig `toml:"clusters"`
}

// Filters narrows down the clusters of a profile
type Filters struct {
	Service *regexp.Regexp
	Key     *regexp.Regexp
}

// Dir returns the user config directory. XDG_CONFIG_HOME wins when set and
// must be absolute.
func Dir() (string, error) {
	if v, ok := os.LookupEnv(xdgConfigHome); ok && v != "" {
		if !filepath.IsAbs(v) {
			return "", ErrXDGConfigHomeNotAbsolute
		}
		return v, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCouldntGetConfigDir, err)
	}
	return dir, nil
}

// ProfilesPath returns the directory holding profile files
func ProfilesPath(configDir string) string {
	return filepath.Join(configDir, AppDir, ProfilesDir)
}

// ProfilePath returns the file path of a named profile
func ProfilePath(configDir, name string) string {
	return filepath.Join(ProfilesPath(configDir), name+ProfileExt)
}

// Parse decodes and validates profile contents
func Parse(data []byte) (File, error) {
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	for i, c := range f.Clusters {
		if err := c.Validate(); err != nil {
			return File{}, fmt.Errorf("%w: cluster #%d: %w", ErrConfigInvalid, i+1, err)
		}
	}

	return f, nil
}

// LoadClusters reads a profile and applies the filters. The service filter
// runs first, then the key filter.
func LoadClusters(configDir, name string, filters Filters) ([]types.ClusterConfig, error) {
	path := ProfilePath(configDir, name)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrProfileDoesntExist
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldntReadProfile, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return Apply(f.Clusters, filters), nil
}

// Apply returns the clusters left after applying filters
func Apply(clusters []types.ClusterConfig, filters Filters) []types.ClusterConfig {
	result := make([]types.ClusterConfig, 0, len(clusters))
	for _, c := range clusters {
		ok := true
		if filters.Service != nil {
			c, ok = c.FilterByServiceName(filters.Service)
		}
		if ok && filters.Key != nil {
			c, ok = c.FilterByKey(filters.Key)
		}
		if ok {
			result = append(result, c)
		}
	}
	return result
}
