package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"bcryptCost": 10,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_BCRYPTCOST", want: "auth.bcryptCost"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyAuthDefaults(t *testing.T) {
	auth := &AuthConfig{}
	applyAuthDefaults(auth)

	if auth.BcryptCost != defaultBcryptCost {
		t.Fatalf("BcryptCost = %d, want %d", auth.BcryptCost, defaultBcryptCost)
	}
	if auth.AccessTokenTTL != defaultAccessTokenTTL {
		t.Fatalf("AccessTokenTTL = %s, want %s", auth.AccessTokenTTL, defaultAccessTokenTTL)
	}
	if auth.RefreshTokenTTL != defaultRefreshTokenTTL {
		t.Fatalf("RefreshTokenTTL = %s, want %s", auth.RefreshTokenTTL, defaultRefreshTokenTTL)
	}
	if auth.SessionCleanupInterval != defaultSessionCleanupInterval {
		t.Fatalf("SessionCleanupInterval = %s, want %s", auth.SessionCleanupInterval, defaultSessionCleanupInterval)
	}
	if auth.MinPasswordLength != defaultMinPasswordLength {
		t.Fatalf("MinPasswordLength = %d, want %d", auth.MinPasswordLength, defaultMinPasswordLength)
	}

	// Explicit values survive.
	auth = &AuthConfig{BcryptCost: 12}
	applyAuthDefaults(auth)
	if auth.BcryptCost != 12 {
		t.Fatalf("BcryptCost = %d, want 12", auth.BcryptCost)
	}
}
