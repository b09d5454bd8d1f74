package docs

import (
	"testing"

	"github.com/okian/panelkit/pkg/logger"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}
