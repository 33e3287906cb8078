package api

import (
	"os"
	"testing"

	"github.com/zhubert/supportchat/internal/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(os.DevNull)
	code := m.Run()
	logger.Close()
	os.Exit(code)
}
