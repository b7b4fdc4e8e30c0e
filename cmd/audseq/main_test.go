// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/audseq/formats/wav"
)

const testScene = `
specs: {rate: 8000, channels: 2}
fps: 25
entries:
  - sound: {tone: {frequency: 440, seconds: 0.5, amplitude: 0.5}}
    begin: 0.2
    end: -1
    keys:
      panning: [{frame: 10, value: -1}]
`

func writeScene(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunRender(t *testing.T) {
	scenePath := writeScene(t)

	tests := []struct {
		name         string
		flags        []string
		wantRate     int
		wantChannels int
		wantFrames   int
	}{
		{name: "scene defaults", wantRate: 8000, wantChannels: 2, wantFrames: 5600},
		{name: "duration", flags: []string{"-duration", "1"}, wantRate: 8000, wantChannels: 2, wantFrames: 8000},
		{name: "output override", flags: []string{"-rate", "16000", "-channels", "1", "-quality", "linear"}, wantRate: 16000, wantChannels: 1, wantFrames: 11200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.wav")
			args := append([]string{"render"}, tt.flags...)
			args = append(args, scenePath, out)

			var stdout bytes.Buffer
			if err := run(context.Background(), args, &stdout); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if !strings.HasPrefix(stdout.String(), "wrote ") {
				t.Fatalf("stdout = %q", stdout.String())
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			src, err := wav.Decoder{}.Decode(f)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != tt.wantRate || src.Channels() != tt.wantChannels {
				t.Fatalf("specs = %d/%d", src.SampleRate(), src.Channels())
			}
			if got := src.(interface{ Length() int }).Length(); got != tt.wantFrames {
				t.Fatalf("frames = %d, want %d", got, tt.wantFrames)
			}
		})
	}
}

func TestRunUsage(t *testing.T) {
	scenePath := writeScene(t)

	tests := [][]string{
		nil,
		{"render", scenePath},
		{"play"},
		{"mix", scenePath},
	}

	for _, args := range tests {
		if err := run(context.Background(), args, &bytes.Buffer{}); !errors.Is(err, errUsage) {
			t.Errorf("run(%q) error = %v, want usage", args, err)
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	if err := run(context.Background(), []string{"render", filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "o.wav")}, &bytes.Buffer{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing scene: error = %v", err)
	}

	if err := run(context.Background(), []string{"render", "-quality", "sinc", writeScene(t), filepath.Join(dir, "o.wav")}, &bytes.Buffer{}); err == nil {
		t.Error("bad quality: expected error")
	}

	t.Setenv("AUDSEQ_DURATION", "-2")
	if err := run(context.Background(), []string{"render", writeScene(t), filepath.Join(dir, "o.wav")}, &bytes.Buffer{}); err == nil {
		t.Error("bad env: expected error")
	}
}
