package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tvx"
	"tvx/config"
	"tvx/screen"
)

func render(t *testing.T, root tvx.View, cols, rows int) *screen.MemDriver {
	t.Helper()
	d := screen.NewMemDriver(cols, rows)
	s, err := screen.New(d)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	app := tvx.NewApp(s).SetRoot(root)
	if _, err := app.Step(false); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDemoRenders(t *testing.T) {
	root, err := buildRoot(config.Default(), "")
	if err != nil {
		t.Fatal(err)
	}
	d := render(t, root, 70, 12)
	if got := d.Line(0); !strings.Contains(got, "Settings") {
		t.Errorf("row 0 = %q, want the sidebar title", got)
	}
	if got := d.Line(11); !strings.HasPrefix(got, "Tab moves focus") {
		t.Errorf("status row = %q", got)
	}
	var trimmed bool
	for y := range 12 {
		if strings.Contains(d.Line(y), "…") {
			trimmed = true
		}
	}
	if !trimmed {
		t.Errorf("no trimmed line on screen")
	}
}

func TestBuildRootFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.yaml")
	if err := os.WriteFile(path, []byte("type: text\ntext: from file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := buildRoot(config.Default(), path)
	if err != nil {
		t.Fatal(err)
	}
	if got := render(t, root, 12, 1).Line(0); got != "from file   " {
		t.Errorf("row 0 = %q", got)
	}
	if _, err := buildRoot(config.Default(), filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Errorf("missing document not reported")
	}
}

func TestLoadConfigDriverFlag(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "tvx.toml")
	cfg, err := loadConfig(missing, "tcell")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Driver != "tcell" {
		t.Errorf("driver = %q", cfg.Driver)
	}
	if _, err := loadConfig(missing, "vt52"); err == nil || !strings.HasPrefix(err.Error(), "driver:") {
		t.Errorf("err = %v", err)
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "file", "driver", "tea"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s missing", name)
		}
	}
}
