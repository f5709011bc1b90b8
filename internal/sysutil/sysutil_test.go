package sysutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func restoreLogging(t *testing.T) {
	t.Helper()
	level, logger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(level)
		log.Logger = logger
	})
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"debug":     zerolog.DebugLevel,
		"  DeBuG  ": zerolog.DebugLevel,
		"info":      zerolog.InfoLevel,
		"":          zerolog.InfoLevel,
		"warn":      zerolog.WarnLevel,
		"WARNING":   zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"fatal":     zerolog.FatalLevel,
		"panic":     zerolog.PanicLevel,
		"trace":     zerolog.InfoLevel,
		"disabled":  zerolog.InfoLevel,
		"loud":      zerolog.InfoLevel,
	} {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestSetupLogger_JSON(t *testing.T) {
	restoreLogging(t)

	var buf bytes.Buffer
	SetupLogger(LogOptions{Level: "warn", Out: &buf, Service: "go-news-api", Version: "v1"})
	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")

	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("global level = %v", zerolog.GlobalLevel())
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("info must be filtered at warn level, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not a JSON line: %v", err)
	}
	for k, want := range map[string]string{"k": "v", "service": "go-news-api", "version": "v1", "message": "shown"} {
		if rec[k] != want {
			t.Fatalf("%s = %v; want %q (line %s)", k, rec[k], want, lines[0])
		}
	}
	if _, ok := rec["time"]; !ok {
		t.Fatalf("missing timestamp: %s", lines[0])
	}
}

func TestSetupLogger_Pretty(t *testing.T) {
	restoreLogging(t)
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	SetupLogger(LogOptions{Level: "debug", Pretty: true, Out: &buf})
	log.Debug().Msg("pretty line")
	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") || !strings.Contains(out, "pretty line") {
		t.Fatalf("expected console output, got %s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("NO_COLOR must disable escape codes: %q", out)
	}
}

func TestSetupLogger_PrettyColour(t *testing.T) {
	cases := []struct {
		noColor string
		colour  bool
	}{
		{"", true},
		{"1", false},
		{"false", false}, // any non-empty value opts out
	}
	for _, tc := range cases {
		t.Run("NO_COLOR="+tc.noColor, func(t *testing.T) {
			restoreLogging(t)
			t.Setenv("NO_COLOR", tc.noColor)

			var buf bytes.Buffer
			SetupLogger(LogOptions{Level: "info", Pretty: true, Out: &buf})
			log.Warn().Msg("colour check")
			if got := strings.Contains(buf.String(), "\x1b["); got != tc.colour {
				t.Fatalf("escape codes present = %v; want %v: %q", got, tc.colour, buf.String())
			}
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{" ", "\t", "\n"}, ""},
		{[]string{"   ", "  hello  ", "world"}, "  hello  "},
		{[]string{"alpha", "beta"}, "alpha"},
	}
	for _, tc := range cases {
		if got := FirstNonEmpty(tc.in...); got != tc.want {
			t.Fatalf("FirstNonEmpty(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
