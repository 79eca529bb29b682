package logger

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextTagsCaller(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	c, _ := gin.CreateTestContext(nil)
	c.Set("user_name", "shadow")
	c.Set("user_id", uint(7))
	c.Set("request_id", "req-1")

	WithContext(c).Infof("joined team %d", 3)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "joined team 3", entry.Message)
	assert.Equal(t, "shadow", entry.Data["user"])
	assert.Equal(t, uint(7), entry.Data["user_id"])
	assert.Equal(t, "req-1", entry.Data["request_id"])
}

func TestWithContextAnonymous(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	WithContext(context.Background()).WithField("team_id", 3).Warn("no caller")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "anonymous", entry.Data["user"])
	assert.Equal(t, 3, entry.Data["team_id"])
	assert.NotContains(t, entry.Data, "user_id")
}

func TestSetupFallsBackToInfo(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	Setup("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Setup("verbose")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
