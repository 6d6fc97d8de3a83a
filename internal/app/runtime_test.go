package app

import (
	"os"
	"testing"

	_ "github.com/schoolhub/schoolhub/testing"
)

func TestGuardSetsTestMode(t *testing.T) {
	if os.Getenv("SCHOOLHUB_TEST_MODE") != "1" {
		t.Fatal("expected guard to set SCHOOLHUB_TEST_MODE")
	}
	RefreshTestMode()
	if !InTestMode() {
		t.Fatal("expected test mode to be active")
	}
}
