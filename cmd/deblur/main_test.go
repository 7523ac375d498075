package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-deblur/dsp/raster"
	"github.com/cwbudde/algo-deblur/imgio"
	"github.com/cwbudde/algo-deblur/internal/testutil"
)

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.png")
	if err := imgio.SaveGray(path, testutil.Scene(32, 32)); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAllMethods(t *testing.T) {
	in := writeScene(t)
	prefix := filepath.Join(t.TempDir(), "out")

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-kernel-size", "5", "-kernel-sigma", "1",
		"-iterations", "5", "-tikhonov-iterations", "10",
		"-out", prefix, in,
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"Degraded input", "Wiener", "Richardson-Lucy", "Richardson-Lucy + Tikhonov"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, suffix := range []string{"degraded", "wiener", "rl", "rl-tikhonov"} {
		if _, err := os.Stat(prefix + "-" + suffix + ".png"); err != nil {
			t.Errorf("missing output for %s: %v", suffix, err)
		}
	}
}

func TestRunColor(t *testing.T) {
	in := writeScene(t)
	var stdout bytes.Buffer
	err := run([]string{"-color", "-method", "wiener", "-kernel-size", "5", "-kernel-sigma", "1", in}, &stdout, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "3 channel(s)") {
		t.Fatalf("expected three channels:\n%s", stdout.String())
	}
}

func TestRunBlackChannels(t *testing.T) {
	red := testutil.Scene(32, 32)
	black := raster.New(32, 32)
	in := filepath.Join(t.TempDir(), "red.png")
	if err := imgio.SaveChannels(in, []*raster.Image{red, black, black}); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	err := run([]string{
		"-color", "-kernel-size", "5", "-kernel-sigma", "1",
		"-iterations", "5", "-tikhonov-iterations", "10", in,
	}, &stdout, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "Richardson-Lucy + Tikhonov") {
		t.Fatalf("report incomplete:\n%s", stdout.String())
	}
}

func TestRunConstantImageWithoutNoise(t *testing.T) {
	in := filepath.Join(t.TempDir(), "flat.png")
	if err := imgio.SaveGray(in, raster.Filled(24, 24, 0.5)); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	err := run([]string{"-method", "wiener", "-noise", "0", "-kernel-size", "5", "-kernel-sigma", "1", in}, &stdout, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "Wiener") {
		t.Fatalf("report incomplete:\n%s", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	in := writeScene(t)
	if err := run([]string{"-method", "fista", in}, &bytes.Buffer{}, &bytes.Buffer{}); err == nil || !strings.Contains(err.Error(), "unknown method") {
		t.Errorf("expected unknown method error, got %v", err)
	}
	if err := run(nil, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error without image path")
	}
	if err := run([]string{"-h"}, &bytes.Buffer{}, &bytes.Buffer{}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
	if err := run([]string{"-kernel-size", "64", in}, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for kernel larger than image")
	}
}
