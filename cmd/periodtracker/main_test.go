package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/periodtracker/internal/config"
	"go.uber.org/zap"
)

func executeRoot(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_PATH", "PORT", "SECRET_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "ADVICE_PROVIDER"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "track", "reset-password"} {
		command, _, err := root.Find([]string{name})
		if err != nil || command.Name() != name {
			t.Fatalf("expected subcommand %q, got %v (%v)", name, command, err)
		}
	}
}

func TestServeRejectsInsecureSecretKey(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		secret string
		want   error
	}{
		{secret: "", want: config.ErrSecretKeyMissing},
		{secret: "change_me_in_production", want: config.ErrSecretKeyPlaceholder},
		{secret: "too-short-secret", want: config.ErrSecretKeyTooShort},
	}
	for _, test := range tests {
		t.Setenv("SECRET_KEY", test.secret)
		if _, err := executeRoot(t, "", "serve"); !errors.Is(err, test.want) {
			t.Fatalf("SECRET_KEY %q: expected %v, got %v", test.secret, test.want, err)
		}
	}
}

func TestInvalidPortFailsBeforeRunning(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "70000")

	if _, err := executeRoot(t, "", "track"); err == nil {
		t.Fatal("expected invalid port to fail configuration")
	}
}

func TestTrackCommandRunsPromptLoop(t *testing.T) {
	isolateEnv(t)
	dataFile := filepath.Join(t.TempDir(), "data.json")

	output, err := executeRoot(t, "1\n2026-01-05\nlight\nn\n\n9\n", "track", "--data-file", dataFile)
	if err != nil {
		t.Fatalf("track: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Period logged successfully!") || !strings.Contains(output, "Data saved. Goodbye!") {
		t.Fatalf("unexpected track output:\n%s", output)
	}
}

func TestResetPasswordRequiresUsername(t *testing.T) {
	isolateEnv(t)

	if _, err := executeRoot(t, "", "reset-password"); err == nil {
		t.Fatal("expected missing username to fail")
	}
}

func TestNewAdviceServiceWithoutCredential(t *testing.T) {
	service, err := newAdviceService(context.Background(), config.AdviceConfig{
		Provider:      "openai",
		Timeout:       time.Second,
		RatePerMinute: 10,
	}, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("newAdviceService: %v", err)
	}
	if service.HasProvider() {
		t.Fatal("expected no provider without an API key")
	}

	if _, err := newAdviceService(context.Background(), config.AdviceConfig{Provider: "claude"}, nil, zap.NewNop()); err == nil {
		t.Fatal("expected unknown provider to fail")
	}
}
