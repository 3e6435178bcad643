package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

//go:embed sample-profile.toml
var sampleProfile []byte

var profileNameRegex = regexp.MustCompile(`^[a-z0-9_-]{1,20}$`)

// ValidateProfileName checks a profile name can be used as a file name
func ValidateProfileName(name string) error {
	if !profileNameRegex.MatchString(name) {
		return fmt.Errorf("%w; valid regex: %s", ErrProfileNameInvalid, profileNameRegex.String())
	}
	return nil
}

// AddProfile writes the sample profile under name and returns its path.
// An existing profile is only replaced when overwrite is set.
func AddProfile(configDir, name string, overwrite bool) (string, error) {
	if err := ValidateProfileName(name); err != nil {
		return "", err
	}

	dir := ProfilesPath(configDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w at %s: %w", ErrCouldntCreateProfileDir, dir, err)
	}

	path := ProfilePath(configDir, name)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", ErrProfileAlreadyExists
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCouldntOpenProfile, err)
	}
	defer f.Close()

	if _, err := f.Write(sampleProfile); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCouldntWriteProfile, err)
	}

	return path, nil
}

// ListProfiles returns the profiles found on disk sorted by name. A missing
// profiles directory yields no profiles.
func ListProfiles(configDir string) ([]Profile, error) {
	dir := ProfilesPath(configDir)

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldntReadProfilesDir, err)
	}

	var profiles []Profile
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != ProfileExt {
			continue
		}
		profiles = append(profiles, Profile{
			Name: strings.TrimSuffix(e.Name(), ProfileExt),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

// SuggestProfiles returns existing profile names close to name, best first
func SuggestProfiles(configDir, name string) []string {
	profiles, err := ListProfiles(configDir)
	if err != nil || len(profiles) == 0 {
		return nil
	}

	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}

	matches := fuzzy.Find(name, names)
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}
