package guard

import (
	"os"
	"sync"

	"github.com/palisade-authz/palisade/internal/app"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("PALISADE_TEST_MODE") == "" {
			_ = os.Setenv("PALISADE_TEST_MODE", "1")
			app.RefreshTestMode()
		}
	})
}
