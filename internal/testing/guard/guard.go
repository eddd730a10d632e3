// Package guard pins the test-mode flag for packages whose tests must
// never start real runtime side effects. Blank-import it from _test
// files.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("IMPRENTA_TEST_MODE") == "" {
			_ = os.Setenv("IMPRENTA_TEST_MODE", "1")
		}
	})
}
