package testing

import (
	"os"
	"sync"
	stdtesting "testing"

	"github.com/palisade-authz/palisade/internal/app"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("PALISADE_TEST_MODE", "1")
		// The flag may already be cached from an earlier read.
		app.RefreshTestMode()
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
