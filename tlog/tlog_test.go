package tlog_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/transitcore/tripbased/tlog"
)

func TestLBeforeInitReturnsUsableNoOpLogger(t *testing.T) {
	require.NotPanics(t, func() { tlog.L().Info("no logger installed yet") })
}

func TestInitInstallsALoggerThatAcceptsLogCalls(t *testing.T) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer devNull.Close()

	tlog.Init(devNull, zapcore.WarnLevel)
	require.NotPanics(t, func() { tlog.L().Warn("ptl label event-type mismatch") })
}
