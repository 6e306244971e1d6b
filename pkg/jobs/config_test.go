package jobs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "cbci.yaml")
	if err := os.WriteFile(filename, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	return filename
}

func TestLoadConfig(t *testing.T) {
	filename := writeConfigFile(t, "linuxNodeLabel: ubuntu20\nsilentOSTypes: [macos, windows]\n")

	cfg, err := LoadConfig(filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// overridden fields
	if cfg.LinuxNodeLabel != "ubuntu20" {
		t.Errorf("expected linux label override, got %q", cfg.LinuxNodeLabel)
	}
	if !cfg.Silent("windows") {
		t.Errorf("expected windows to be silent with override in place")
	}

	// everything else keeps the defaults
	if cfg.WindowsNodeLabel != DefaultWindowsNodeLabel {
		t.Errorf("expected default windows label, got %q", cfg.WindowsNodeLabel)
	}
	if cfg.GoDownloadBaseURL != DefaultGoDownloadBaseURL {
		t.Errorf("expected default download base URL, got %q", cfg.GoDownloadBaseURL)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	filename := writeConfigFile(t, "linuxNodeLabels: ubuntu20\n")

	if _, err := LoadConfig(filename); err == nil {
		t.Errorf("expected strict parsing to reject the misspelled field")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("expected error for missing config file")
	}
}
