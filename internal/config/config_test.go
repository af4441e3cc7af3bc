package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TargetZip != "95054" {
		t.Errorf("TargetZip = %q, want 95054", cfg.TargetZip)
	}
	if cfg.SearchDistance != 50 {
		t.Errorf("SearchDistance = %d, want 50", cfg.SearchDistance)
	}
	if cfg.ModelCode != "MY" {
		t.Errorf("ModelCode = %q, want MY", cfg.ModelCode)
	}
	if cfg.Condition != "new" {
		t.Errorf("Condition = %q, want new", cfg.Condition)
	}
	if cfg.StorageType != "file" {
		t.Errorf("StorageType = %q, want file", cfg.StorageType)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
	if cfg.HTTPTimeout.Seconds() != 15 {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TARGET_ZIP", "10001")
	t.Setenv("SEARCH_DISTANCE", "200")
	t.Setenv("MODEL_CODE", "M3")
	t.Setenv("STORAGE_TYPE", "bbolt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TargetZip != "10001" {
		t.Errorf("TargetZip = %q, want 10001", cfg.TargetZip)
	}
	if cfg.SearchDistance != 200 {
		t.Errorf("SearchDistance = %d, want 200", cfg.SearchDistance)
	}
	if cfg.ModelCode != "M3" {
		t.Errorf("ModelCode = %q, want M3", cfg.ModelCode)
	}
	if cfg.StorageType != "bbolt" {
		t.Errorf("StorageType = %q, want bbolt", cfg.StorageType)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "empty zip", key: "TARGET_ZIP", value: "   "},
		{name: "negative distance", key: "SEARCH_DISTANCE", value: "-5"},
		{name: "zero timeout", key: "HTTP_TIMEOUT_SECONDS", value: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoadHonorsEnvSMTPCredentials(t *testing.T) {
	t.Setenv("SMTP_USER", "alerts@example.com")
	t.Setenv("SMTP_PASS", "app-password")
	t.Setenv("EMAIL_TO", "me@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SMTPUser != "alerts@example.com" {
		t.Errorf("SMTPUser = %q, env value was dropped", cfg.SMTPUser)
	}
	if cfg.SMTPPass != "app-password" {
		t.Errorf("SMTPPass = %q, env value was dropped", cfg.SMTPPass)
	}
	if cfg.EmailTo != "me@example.com" {
		t.Errorf("EmailTo = %q, env value was dropped", cfg.EmailTo)
	}
	if !cfg.NotifierConfigured() {
		t.Fatalf("full env credentials must enable real delivery")
	}
}

func TestEmailFromFallsBackToSMTPUser(t *testing.T) {
	t.Setenv("SMTP_USER", "alerts@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EmailFrom != "alerts@example.com" {
		t.Errorf("EmailFrom = %q, want smtp_user fallback", cfg.EmailFrom)
	}
}

func TestNotifierConfigured(t *testing.T) {
	cfg := &Config{}
	if cfg.NotifierConfigured() {
		t.Fatalf("empty credentials must not count as configured")
	}

	cfg = &Config{SMTPUser: "u", SMTPPass: "p", EmailTo: "to@example.com"}
	if !cfg.NotifierConfigured() {
		t.Fatalf("full credentials must count as configured")
	}
}
