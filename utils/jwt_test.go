package utils

import (
	"testing"
	"time"

	"frontdesk/config"
)

func TestAdapterTokenRoundTrip(t *testing.T) {
	config.AppConfig.AdapterJWTSecret = "test-secret"
	defer func() { config.AppConfig.AdapterJWTSecret = "" }()

	token, err := GenerateAdapterToken("t1", "sms", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tenantID, err := TenantIDFromToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if tenantID != "t1" {
		t.Fatalf("tenant id = %q, want t1", tenantID)
	}
}

func TestAdapterTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig.AdapterJWTSecret = "first-secret"
	token, err := GenerateAdapterToken("t1", "voice", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	config.AppConfig.AdapterJWTSecret = "rotated-secret"
	defer func() { config.AppConfig.AdapterJWTSecret = "" }()

	if _, err := TenantIDFromToken(token); err == nil {
		t.Fatalf("token signed under the old secret must not validate")
	}
}
