package docker

import "testing"

func TestIsDangling(t *testing.T) {
	tests := []struct {
		tags []string
		want bool
	}{
		{nil, true},
		{[]string{"<none>:<none>"}, true},
		{[]string{"golang:1.25"}, false},
		{[]string{"<none>:<none>", "app:latest"}, false},
	}
	for _, tt := range tests {
		if got := isDangling(tt.tags); got != tt.want {
			t.Errorf("isDangling(%v) = %v, want %v", tt.tags, got, tt.want)
		}
	}
}
