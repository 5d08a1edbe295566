package logging_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"todo/internal/logging"
)

func TestLogger_DebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, false)

	l.Debug(context.Background(), "hidden", "id", 1)
	l.Error(context.Background(), "hidden too")
	l.Warn(context.Background(), "shown", "id", 2)

	assert.Equal(t, "warn: shown id=2\n", buf.String())
}

func TestLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, true)

	l.Debug(context.Background(), "task created", "id", 7, "completed", false)
	l.Error(context.Background(), "failed", "error", errors.New("disk full"))

	assert.Equal(t,
		"debug: task created id=7 completed=false\n"+
			"error: failed error=\"disk full\"\n",
		buf.String())
}

func TestLogger_OddKeysAndValues(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, true)

	l.Info(context.Background(), "msg", "a", 1, "dangling")

	assert.Equal(t, "info: msg a=1 dangling\n", buf.String())
}
