package advanced

import (
	"os"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Stage debug logs drown out test output.
func TestMain(m *testing.M) {
	logs.SetLevel(logs.WarningLevel)
	os.Exit(m.Run())
}
