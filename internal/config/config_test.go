package config

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Run("getenv default", func(t *testing.T) {
		if got := getenv("LOADBOARD_TEST_UNSET", "fallback"); got != "fallback" {
			t.Errorf("getenv() = %q, want fallback", got)
		}
	})

	t.Run("getenv set", func(t *testing.T) {
		t.Setenv("LOADBOARD_TEST_STR", "value")
		if got := getenv("LOADBOARD_TEST_STR", "fallback"); got != "value" {
			t.Errorf("getenv() = %q, want value", got)
		}
	})

	t.Run("envInt set", func(t *testing.T) {
		t.Setenv("LOADBOARD_TEST_INT", "48")
		if got := envInt("LOADBOARD_TEST_INT", 72); got != 48 {
			t.Errorf("envInt() = %d, want 48", got)
		}
	})

	t.Run("envInt default", func(t *testing.T) {
		if got := envInt("LOADBOARD_TEST_UNSET", 72); got != 72 {
			t.Errorf("envInt() = %d, want 72", got)
		}
	})

	t.Run("envDur set", func(t *testing.T) {
		t.Setenv("LOADBOARD_TEST_DUR", "90s")
		if got := envDur("LOADBOARD_TEST_DUR", time.Second); got != 90*time.Second {
			t.Errorf("envDur() = %v, want 90s", got)
		}
	})

	t.Run("envDur invalid falls back", func(t *testing.T) {
		t.Setenv("LOADBOARD_TEST_DUR", "soon")
		if got := envDur("LOADBOARD_TEST_DUR", time.Minute); got != time.Minute {
			t.Errorf("envDur() = %v, want 1m", got)
		}
	})
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"off", true, false},
		{"gibberish", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("LOADBOARD_TEST_BOOL", tt.value)
			}
			if got := envBool("LOADBOARD_TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("envBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-2")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want clamped to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("RefillTokens = %d, want clamped to 1", cfg.RefillTokens)
	}
	if want := 10 * time.Second; cfg.TTL != want {
		t.Errorf("TTL = %v, want %v (5x refill interval)", cfg.TTL, want)
	}
}

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if cfg.Capacity != 30 {
		t.Errorf("Capacity = %d, want 30", cfg.Capacity)
	}
	if cfg.Prefix != "rl" {
		t.Errorf("Prefix = %q, want rl", cfg.Prefix)
	}
}

func TestLoadCacheConfig_Defaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", cfg.TTL)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want 1MiB", cfg.MaxBodyBytes)
	}
}
