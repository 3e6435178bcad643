package config

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhth/ecscope/internal/types"
)

const validProfile = `
[[clusters]]
keys = ["qa"]
arn = "arn:aws:ecs:eu-central-1:111111111111:cluster/urlpreview-2-cluster-qa"
services = [
  "service-a",
  "service-b",
]
config_source = "env"

[[clusters]]
keys = ["qa"]
arn = "arn:aws:ecs:eu-central-1:111111111111:cluster/prlserver-cluster-qa"
services = [
  "service-c",
  "service-d",
]
config_source = "profile:qa"

[[clusters]]
keys = ["prod"]
arn = "arn:aws:ecs:eu-central-1:111111111111:cluster/prlserver-cluster-prod"
services = [
  "service-c",
]
config_source = "assume:arn:aws:iam::222222222222:role/role-name"
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(validProfile))
	require.NoError(t, err)
	require.Len(t, f.Clusters, 3)

	assert.Equal(t, []string{"qa"}, f.Clusters[0].Keys)
	assert.Equal(t, []string{"service-a", "service-b"}, f.Clusters[0].Services)
	assert.Equal(t, types.EnvSource(), f.Clusters[0].ConfigSource)
	assert.Equal(t, types.ProfileSource("qa"), f.Clusters[1].ConfigSource)
	assert.Equal(t, types.AssumeRoleSource("arn:aws:iam::222222222222:role/role-name"), f.Clusters[2].ConfigSource)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "services is not a list",
			content: `
[[clusters]]
keys = ["qa"]
arn = "arn:aws:ecs:eu-central-1:111111111111:cluster/cluster-a"
services = "service-a"
config_source = "env"
`,
		},
		{
			name: "unknown config source",
			content: `
[[clusters]]
keys = ["qa"]
arn = "arn:aws:ecs:eu-central-1:111111111111:cluster/cluster-a"
services = ["service-a", "service-b"]
config_source = "unknown"
`,
		},
		{
			name: "missing config source",
			content: `
[[clusters]]
keys = ["qa"]
arn = "arn:aws:ecs:eu-central-1:111111111111:cluster/cluster-a"
services = ["service-a"]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigInvalid)
		})
	}
}

func TestSampleProfileIsValid(t *testing.T) {
	f, err := Parse(sampleProfile)
	require.NoError(t, err)
	assert.NotEmpty(t, f.Clusters)
}

func TestDir(t *testing.T) {
	t.Run("absolute XDG_CONFIG_HOME", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)

		got, err := Dir()
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("relative XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "relative/path")

		_, err := Dir()
		assert.ErrorIs(t, err, ErrXDGConfigHomeNotAbsolute)
	})
}

func TestLoadClusters(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ProfilesPath(dir), 0o755))
	require.NoError(t, os.WriteFile(ProfilePath(dir, "qa"), []byte(validProfile), 0o644))

	tests := []struct {
		name         string
		filters      Filters
		wantClusters int
		wantServices []int
	}{
		{name: "no filters", wantClusters: 3, wantServices: []int{2, 2, 1}},
		{
			name:         "service filter",
			filters:      Filters{Service: regexp.MustCompile("service-(a|c)")},
			wantClusters: 3,
			wantServices: []int{1, 1, 1},
		},
		{
			name:         "key filter",
			filters:      Filters{Key: regexp.MustCompile("^prod$")},
			wantClusters: 1,
			wantServices: []int{1},
		},
		{
			name: "both filters",
			filters: Filters{
				Service: regexp.MustCompile("service-d"),
				Key:     regexp.MustCompile("qa"),
			},
			wantClusters: 1,
			wantServices: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clusters, err := LoadClusters(dir, "qa", tt.filters)
			require.NoError(t, err)
			require.Len(t, clusters, tt.wantClusters)
			for i, n := range tt.wantServices {
				assert.Len(t, clusters[i].Services, n)
			}
		})
	}

	t.Run("missing profile", func(t *testing.T) {
		_, err := LoadClusters(dir, "prod", Filters{})
		assert.ErrorIs(t, err, ErrProfileDoesntExist)
	})
}

func TestAddAndListProfiles(t *testing.T) {
	dir := t.TempDir()

	path, err := AddProfile(dir, "qa", false)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = AddProfile(dir, "qa", false)
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)

	_, err = AddProfile(dir, "qa", true)
	assert.NoError(t, err)

	_, err = AddProfile(dir, "prod", false)
	require.NoError(t, err)

	_, err = AddProfile(dir, "Not Valid!", false)
	assert.ErrorIs(t, err, ErrProfileNameInvalid)

	// non profile files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(ProfilesPath(dir), "notes.txt"), []byte("x"), 0o644))

	profiles, err := ListProfiles(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "prod", profiles[0].Name)
	assert.Equal(t, "qa", profiles[1].Name)
	assert.Equal(t, ProfilePath(dir, "qa"), profiles[1].Path)
}

func TestListProfiles_NoDirectory(t *testing.T) {
	profiles, err := ListProfiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestValidateProfileName(t *testing.T) {
	assert.NoError(t, ValidateProfileName("qa_eu-1"))
	assert.Error(t, ValidateProfileName(""))
	assert.Error(t, ValidateProfileName("this-name-is-way-too-long"))
	assert.Error(t, ValidateProfileName("UPPER"))
}

func TestSuggestProfiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"production", "qa", "staging"} {
		_, err := AddProfile(dir, name, false)
		require.NoError(t, err)
	}

	suggestions := SuggestProfiles(dir, "prod")
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "production", suggestions[0])
	assert.Empty(t, SuggestProfiles(t.TempDir(), "prod"))
}
