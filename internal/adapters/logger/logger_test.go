package logger_test

import (
	"strings"
	"testing"

	"github.com/mrmachine/reqs/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"
)

func TestLogger_Info(t *testing.T) {
	var buf strings.Builder
	l := logger.NewWithWriter(&buf)

	l.Info("resolved package", "package", "django", "version", "1.3.1")

	out := buf.String()
	assert.Contains(t, out, "resolved package")
	assert.Contains(t, out, "package=django")
	assert.Contains(t, out, "version=1.3.1")
}

func TestLogger_Error_FlattensMetadata(t *testing.T) {
	var buf strings.Builder
	l := logger.NewWithWriter(&buf)

	err := zerr.With(zerr.New("lookup failed"), "package", "micawber")
	l.Error(err)

	out := buf.String()
	assert.Contains(t, out, "operation failed")
	assert.Contains(t, out, "lookup failed")
	assert.Contains(t, out, "package=micawber")
}
