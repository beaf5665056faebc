package config_test

import (
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/km-arc/go-di/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func setEnv(t *testing.T, key, val string) {
	t.Helper()
	t.Setenv(key, val) // automatically restored after test
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_NAME", "APP_ENV", "LOG_LEVEL", "DI_DEFINITIONS", "DI_VALIDATE", "DI_AUTOWIRE"} {
		unsetEnv(t, k)
	}
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "go-di"},
		{"App.Env", cfg.App.Env, "local"},
		{"Log.Level", cfg.Log.Level, "info"},
		{"DI.Validate", cfg.DI.Validate, true},
		{"DI.Autowire", cfg.DI.Autowire, false},
		{"DI.Definitions", len(cfg.DI.Definitions), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	setEnv(t, "APP_NAME", "MyApp")
	setEnv(t, "APP_ENV", "production")
	setEnv(t, "LOG_LEVEL", "debug")
	setEnv(t, "DI_VALIDATE", "false")

	cfg := config.Load("testdata/empty.env")

	if cfg.App.Name != "MyApp" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "MyApp")
	}
	if cfg.App.Env != "production" {
		t.Errorf("App.Env: got %q want %q", cfg.App.Env, "production")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q want %q", cfg.Log.Level, "debug")
	}
	if cfg.DI.Validate {
		t.Error("expected DI.Validate to be false")
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	for _, k := range []string{"APP_NAME", "DI_DEFINITIONS", "DI_AUTOWIRE"} {
		unsetEnv(t, k)
	}

	cfg := config.Load("testdata/app.env")

	if cfg.App.Name != "FromFile" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "FromFile")
	}
	if !cfg.DI.Autowire {
		t.Error("expected DI.Autowire to be true")
	}
	want := []string{"defs/app.yaml", "defs/extra.json"}
	if !slices.Equal(cfg.DI.Definitions, want) {
		t.Errorf("DI.Definitions: got %v want %v", cfg.DI.Definitions, want)
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	setEnv(t, "APP_NAME", "FromEnv")
	unsetEnv(t, "DI_DEFINITIONS")
	unsetEnv(t, "DI_AUTOWIRE")
	cfg := config.Load("testdata/app.env")
	if cfg.App.Name != "FromEnv" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "FromEnv")
	}
}

func TestLoad_AppDebugFalse(t *testing.T) {
	setEnv(t, "APP_DEBUG", "false")
	cfg := config.Load("testdata/empty.env")
	if cfg.App.Debug {
		t.Error("expected App.Debug to be false")
	}
}

// ── Get / GetInt / GetBool / GetList ─────────────────────────────────────────

func TestGet_ReturnsValue(t *testing.T) {
	setEnv(t, "CUSTOM_KEY", "hello")
	if got := config.Get("CUSTOM_KEY", "default"); got != "hello" {
		t.Errorf("got %q want %q", got, "hello")
	}
}

func TestGet_ReturnsFallback(t *testing.T) {
	unsetEnv(t, "MISSING_KEY")
	if got := config.Get("MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("got %q want %q", got, "fallback")
	}
}

func TestGetInt_ReturnsFallbackOnInvalid(t *testing.T) {
	setEnv(t, "SOME_INT", "notanint")
	if got := config.GetInt("SOME_INT", 99); got != 99 {
		t.Errorf("got %d want %d", got, 99)
	}
	setEnv(t, "SOME_INT", "42")
	if got := config.GetInt("SOME_INT", 0); got != 42 {
		t.Errorf("got %d want %d", got, 42)
	}
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		setEnv(t, "BOOL_KEY", val)
		if !config.GetBool("BOOL_KEY", false) {
			t.Errorf("expected true for %q", val)
		}
	}
	setEnv(t, "BOOL_KEY", "notabool")
	if !config.GetBool("BOOL_KEY", true) {
		t.Error("expected fallback true")
	}
}

func TestGetList(t *testing.T) {
	setEnv(t, "LIST_KEY", " a.yaml, ,b.json ,")
	got := config.GetList("LIST_KEY", nil)
	if !slices.Equal(got, []string{"a.yaml", "b.json"}) {
		t.Errorf("got %v", got)
	}

	unsetEnv(t, "LIST_KEY")
	if got := config.GetList("LIST_KEY", []string{"x"}); !slices.Equal(got, []string{"x"}) {
		t.Errorf("fallback: got %v", got)
	}
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestValidate_Defaults(t *testing.T) {
	for _, k := range []string{"APP_NAME", "APP_ENV", "LOG_LEVEL", "DI_DEFINITIONS"} {
		unsetEnv(t, k)
	}
	if err := config.Load("testdata/empty.env").Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Name: "x", Env: "staging"},
		Log: config.LogConfig{Level: "loud"},
		DI:  config.DIConfig{Definitions: []string{"app.yaml", ""}},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"App.Env", `"staging"`, "Log.Level", "DI.Definitions[1] is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}
