package version

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsNewerThan(t *testing.T) {
	tests := []struct {
		latest  string
		current string
		want    bool
	}{
		{"1.2.0", "1.1.0", true},
		{"1.1.0", "1.1.0", false},
		{"1.0.9", "1.1.0", false},
		{"2.0.0-rc.1", "1.9.9", true},
		{"garbage", "1.0.0", false},
		{"1.0.0", "garbage", false},
	}

	for _, tt := range tests {
		if got := isNewerThan(tt.latest, tt.current); got != tt.want {
			t.Errorf("isNewerThan(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
		}
	}
}

func TestUpdateCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update_check.json")

	saveUpdateCacheTo(path, "1.4.0", "1.3.0")

	latest, checked, ok := loadUpdateCacheFrom(path)
	if !ok {
		t.Fatal("Expected cache to load")
	}
	if latest != "1.4.0" || checked != "1.3.0" {
		t.Errorf("Unexpected cache contents: %q / %q", latest, checked)
	}
}

func TestUpdateCache_MissingFile(t *testing.T) {
	if _, _, ok := loadUpdateCacheFrom(filepath.Join(t.TempDir(), "nope.json")); ok {
		t.Error("Expected miss for nonexistent cache file")
	}
}

func TestUpdateCache_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update_check.json")
	writeFile(t, path, "not json")

	if _, _, ok := loadUpdateCacheFrom(path); ok {
		t.Error("Expected miss for malformed cache file")
	}
}

func TestUpdateCache_Expired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update_check.json")
	stale := `{"latest_version":"1.4.0","checked_version":"1.3.0","timestamp":"` +
		time.Now().Add(-48*time.Hour).Format(time.RFC3339) + `"}`
	writeFile(t, path, stale)

	if _, _, ok := loadUpdateCacheFrom(path); ok {
		t.Error("Expected miss for expired cache")
	}
}

func TestGetVersionString_DevBuild(t *testing.T) {
	s := GetVersionString()
	if s == "" {
		t.Fatal("Expected non-empty version string")
	}
	if s[:3] != "ghp" {
		t.Errorf("Expected version string to start with the binary name, got: %s", s)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
