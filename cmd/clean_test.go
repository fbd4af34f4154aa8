package cmd

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/lakshaymaurya-felt/devsweep/internal/config"
	"github.com/spf13/pflag"
)

func parseClean(t *testing.T, file *config.File, args ...string) (config.Options, error) {
	t.Helper()
	cleanFlags = cleanFlagValues{profile: "safe"}
	cleanCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	prev := fileConfig
	fileConfig = file
	t.Cleanup(func() { fileConfig = prev })

	if err := cleanCmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cleanOptions(cleanCmd)
}

func TestCleanOptionsDefaults(t *testing.T) {
	got, err := parseClean(t, &config.File{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(got, config.DefaultOptions()); diff != nil {
		t.Error(diff)
	}
}

func TestCleanOptionsFlags(t *testing.T) {
	got, err := parseClean(t, &config.File{},
		"--profile", "dev", "--apply", "--no-strict", "--interactive",
		"--include-volumes", "--only", "Node,go", "--skip", "go")
	if err != nil {
		t.Fatal(err)
	}
	want := config.Options{
		Profile:        config.ProfileDev,
		Interactive:    true,
		IncludeVolumes: true,
		Only:           []string{"node", "go"},
		Skip:           []string{"go"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestCleanOptionsFileDefaultsLoseToFlags(t *testing.T) {
	file := &config.File{}
	file.Clean.Profile = "aggressive"
	strict := false
	file.Clean.Strict = &strict
	file.Clean.Skip = []string{"docker"}

	got, err := parseClean(t, file, "--profile", "safe")
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile != config.ProfileSafe || got.Strict || len(got.Skip) != 1 {
		t.Errorf("options = %+v", got)
	}
}

func TestCleanOptionsStrictValues(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--strict"}, true},
		{[]string{"--strict=false"}, false},
		{[]string{"--no-strict"}, false},
		{[]string{"--no-strict=false"}, true},
	}
	for _, tt := range tests {
		got, err := parseClean(t, &config.File{}, tt.args...)
		if err != nil {
			t.Fatal(err)
		}
		if got.Strict != tt.want {
			t.Errorf("%v: Strict = %v, want %v", tt.args, got.Strict, tt.want)
		}
	}
}

func TestCleanOptionsInvalidProfile(t *testing.T) {
	if _, err := parseClean(t, &config.File{}, "--profile", "reckless"); err == nil {
		t.Error("invalid profile accepted")
	}
}
