package config

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaultsWithoutFlags(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dest != defaultDest {
		t.Fatalf("Dest = %q, want %q", cfg.Dest, defaultDest)
	}
	if cfg.Force || cfg.Verbose != 0 {
		t.Fatalf("unexpected non-default config: %+v", cfg)
	}
}

func TestLoadBindsFlagOverrides(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("dest", "d", defaultDest, "")
	fs.BoolP("force", "f", false, "")
	fs.CountP("verbose", "v", "")

	if err := fs.Set("dest", "/tmp/out"); err != nil {
		t.Fatalf("setting dest: %v", err)
	}
	if err := fs.Set("force", "true"); err != nil {
		t.Fatalf("setting force: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dest != "/tmp/out" {
		t.Fatalf("Dest = %q, want /tmp/out", cfg.Dest)
	}
	if !cfg.Force {
		t.Fatal("expected Force = true")
	}
}
