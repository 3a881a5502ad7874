package app

import "testing"

func TestRefreshTestMode(t *testing.T) {
	t.Cleanup(RefreshTestMode)

	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	if !InTestMode() {
		t.Fatal("expected test mode on after refresh")
	}

	t.Setenv(testModeEnv, "0")
	if !InTestMode() {
		t.Fatal("cached flag must hold until the next refresh")
	}

	RefreshTestMode()
	if InTestMode() {
		t.Fatal("expected test mode off after refresh")
	}
}
