package container_test

import (
	"testing"

	"github.com/km-arc/go-di/framework/container"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Foo", "foo"},
		{`\App\Mailer`, `app\mailer`},
		{`\\\Leading`, "leading"},
		{"already.normal", "already.normal"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := container.NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsPattern(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{`/^app\./`, true},
		{`#Mailer$#i`, true},
		{`~x~msU`, true},
		{`/a/`, true},
		{"*", false},
		{"TestClass", false},
		{"app.mailer", false},
		{`/[unclosed/`, false},
		{`/ok/x`, false},
		{`/no-end`, false},
		{`/`, false},
		{`\App`, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := container.IsPattern(tt.key); got != tt.want {
				t.Errorf("IsPattern(%q): got %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMatchPattern(t *testing.T) {
	if !container.MatchPattern(`/^svc\.(a|b)$/`, "svc.a") {
		t.Error("expected svc.a to match")
	}
	if container.MatchPattern(`/^svc\.(a|b)$/`, "svc.c") {
		t.Error("expected svc.c not to match")
	}
	if container.MatchPattern("svc.a", "svc.a") {
		t.Error("a non-pattern key must never match as a pattern")
	}
}
