package config

import (
	"testing"

	"github.com/go-test/deep"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		in      string
		want    Profile
		wantErr bool
	}{
		{"safe", ProfileSafe, false},
		{"dev", ProfileDev, false},
		{"Aggressive", ProfileAggressive, false},
		{" dev ", ProfileDev, false},
		{"reckless", ProfileSafe, true},
		{"", ProfileSafe, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProfile(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProfile(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseProfile(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProfileIncludes(t *testing.T) {
	if !ProfileSafe.Includes(ProfileSafe) || ProfileSafe.Includes(ProfileDev) {
		t.Error("safe must include only safe tasks")
	}
	if !ProfileDev.Includes(ProfileSafe) || !ProfileDev.Includes(ProfileDev) || ProfileDev.Includes(ProfileAggressive) {
		t.Error("dev must include safe and dev tasks")
	}
	if !ProfileAggressive.Includes(ProfileAggressive) || !ProfileAggressive.Includes(ProfileSafe) {
		t.Error("aggressive must include every task")
	}
}

func TestGlobalCaches(t *testing.T) {
	o := DefaultOptions()
	if o.GlobalCaches() {
		t.Error("safe defaults must not enable global caches")
	}
	o.IncludeGlobalCaches = true
	if !o.GlobalCaches() {
		t.Error("flag must enable global caches")
	}
	o = DefaultOptions()
	o.Profile = ProfileAggressive
	if !o.GlobalCaches() {
		t.Error("aggressive must imply global caches")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList([]string{"node, Go", "", "docker,,node", " cargo "})
	want := []string{"node", "go", "docker", "cargo"}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}
