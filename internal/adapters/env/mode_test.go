package env

import (
	"testing"

	"github.com/3-lines-studio/jamb/internal/core"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		value    string
		expected core.Mode
	}{
		{"", core.ModeProd},
		{"0", core.ModeProd},
		{"1", core.ModeDev},
		{"true", core.ModeDev},
	}

	for _, tt := range tests {
		t.Setenv(DevVar, tt.value)
		if got := DetectMode(); got != tt.expected {
			t.Errorf("%s=%q: expected %v, got %v", DevVar, tt.value, tt.expected, got)
		}
	}
}
