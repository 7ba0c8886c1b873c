package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HeadRows != 5 {
		t.Fatalf("head_rows = %d", c.HeadRows)
	}
	if c.PlotWidth != 800 || c.PlotHeight != 600 {
		t.Fatalf("plot size = %dx%d", c.PlotWidth, c.PlotHeight)
	}
	if c.ServerAddr != "127.0.0.1:8050" {
		t.Fatalf("server_addr = %q", c.ServerAddr)
	}
	if !c.ClearScreen {
		t.Fatalf("clear_screen should default to true")
	}
	if want := filepath.Join(home, ".csvexplore", "plots"); c.PlotsDir != want {
		t.Fatalf("plots_dir = %q, want %q", c.PlotsDir, want)
	}
	if c.MaxUploadBytes() != 50<<20 {
		t.Fatalf("max upload = %d", c.MaxUploadBytes())
	}
	if c.DelimiterRune() != 0 {
		t.Fatalf("delimiter should be sniffed by default")
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	in := &Global{
		HeadRows:         10,
		NAValues:         []string{"n/a", "-"},
		Delimiter:        ";",
		MaxUploadMB:      5,
		PlotsDir:         filepath.Join(dir, "plots"),
		PlotWidth:        640,
		PlotHeight:       480,
		OutlierThreshold: 3,
		ServerAddr:       ":9000",
		MaxDisplayRows:   20,
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.HeadRows != 10 || out.Delimiter != ";" || out.PlotWidth != 640 || out.ServerAddr != ":9000" {
		t.Fatalf("unexpected round trip: %+v", out)
	}
	if len(out.NAValues) != 2 || out.NAValues[1] != "-" {
		t.Fatalf("na_values = %v", out.NAValues)
	}
	if out.ClearScreen {
		t.Fatalf("clear_screen false should survive the file")
	}
	if out.DelimiterRune() != ';' {
		t.Fatalf("delimiter rune = %q", out.DelimiterRune())
	}
	if out.MaxUploadBytes() != 5<<20 {
		t.Fatalf("max upload = %d", out.MaxUploadBytes())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CSVEXPLORE_HEAD_ROWS", "12")
	t.Setenv("CSVEXPLORE_SERVER_ADDR", "0.0.0.0:1234")

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HeadRows != 12 {
		t.Fatalf("head_rows = %d", c.HeadRows)
	}
	if c.ServerAddr != "0.0.0.0:1234" {
		t.Fatalf("server_addr = %q", c.ServerAddr)
	}
}

func TestDelimiterTab(t *testing.T) {
	for _, s := range []string{`\t`, "tab", "\t"} {
		c := &Global{Delimiter: s}
		if c.DelimiterRune() != '\t' {
			t.Fatalf("%q -> %q", s, c.DelimiterRune())
		}
	}
}
