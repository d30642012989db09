package main

import (
	"bytes"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/lcdtext/config"
	"github.com/gogpu/lcdtext/fontpath"
	"github.com/gogpu/lcdtext/lcd"
)

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"lcddemo", "a", "b"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "usage: lcddemo [truetype-font-dir]") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunWritesPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	var stdout, stderr bytes.Buffer
	code := run([]string{"lcddemo", "-gofont", "-o", out, "-width", "320", "-height", "240", dir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}
	if strings.Contains(stdout.String(), "Looking for") {
		t.Error("font directory hint printed although a directory was given")
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("image size = %v", b)
	}
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "lcdtext.lua")
	if err := os.WriteFile(cfg, []byte(`lcdtext = { grayscale = true, color_scheme = 0 }`), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "frame.png")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"lcddemo", "-config", cfg, "-o", out, dir}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}

	bad := filepath.Join(dir, "bad.lua")
	if err := os.WriteFile(bad, []byte(`lcdtext = {`), 0o644); err != nil {
		t.Fatal(err)
	}
	stderr.Reset()
	if code := run([]string{"lcddemo", "-config", bad, "-o", out, dir}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "bad.lua") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunDefaultDirectoryHint(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"lcddemo", "-gofont", "-o", out}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Looking for truetype fonts in") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestDemoRendererReuse(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := newDemo(options{gofont: true}, "", logger)

	s := config.Default()
	s.FontDir = "/fonts/a"
	r1 := d.rendererFor(s)
	if got := r1.Fonts().Directory(); got != "/fonts/a" {
		t.Errorf("font dir = %q, want /fonts/a", got)
	}
	if d.rendererFor(s) != r1 {
		t.Error("renderer rebuilt for unchanged settings")
	}

	s.Controls.Gamma = 1.2
	if d.rendererFor(s) != r1 {
		t.Error("renderer rebuilt for a control change")
	}

	s.ChannelOrder = lcd.BGR
	r2 := d.rendererFor(s)
	if r2 == r1 {
		t.Error("renderer kept after a channel order change")
	}
	if r2.Fonts() != r1.Fonts() {
		t.Error("font table rebuilt although the directory did not change")
	}

	s.FontDir = "/fonts/b"
	if got := d.rendererFor(s).Fonts().Directory(); got != "/fonts/b" {
		t.Errorf("reloaded font dir = %q, want /fonts/b", got)
	}
}

func TestDemoFontDirPrecedence(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := config.Default()
	s.FontDir = "/from/settings"

	if got := newDemo(options{}, "/from/args", logger).fontDir(s); got != "/from/args" {
		t.Errorf("fontDir = %q, want the argument", got)
	}
	if got := newDemo(options{}, "", logger).fontDir(s); got != "/from/settings" {
		t.Errorf("fontDir = %q, want the settings value", got)
	}
	if got := newDemo(options{}, "", logger).fontDir(config.Default()); got != fontpath.DefaultDirectory() {
		t.Errorf("fontDir = %q, want the default", got)
	}
}
