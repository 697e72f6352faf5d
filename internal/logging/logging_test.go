package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/bagdasarian/docspace-access/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json формат и уровень debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(config.LogConfig{Level: "debug", Format: "json"}, &buf)

		assert.Equal(t, logrus.DebugLevel, log.GetLevel())

		log.WithField("team_id", "t1").Info("member added")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "member added", entry["msg"])
		assert.Equal(t, "t1", entry["team_id"])
	})

	t.Run("неизвестный уровень превращается в info", func(t *testing.T) {
		log := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})

		assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	})

	t.Run("текстовый формат", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(config.LogConfig{Level: "info", Format: "text"}, &buf)

		log.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})
}
