package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestInitLogger(t *testing.T) {
	t.Run("level", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("log.level", "debug")

		Log, err := InitLogger()
		require.NoError(t, err)
		require.Equal(t, logrus.DebugLevel, Log.GetLevel())
		require.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
	})

	t.Run("unknown level", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("log.level", "loud")

		_, err := InitLogger()
		require.Error(t, err)
	})

	t.Run("plain", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("log.level", "info")
		viper.Set("log.plain", true)

		Log, err := InitLogger()
		require.NoError(t, err)

		var buf bytes.Buffer
		Log.SetOutput(&buf)
		Log.WithField("bar_index", 3).Info("Entry time!!!")
		require.Equal(t, "Entry time!!!\n", buf.String())
	})

	t.Run("files", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		dir := filepath.Join(t.TempDir(), "logs")
		viper.Set("log.level", "info")
		viper.Set("log.file", true)
		viper.Set("log.path", dir)
		viper.Set("log.flag", "rsistrat")
		viper.Set("log.suffix", "log")
		viper.Set("log.save", 3)

		Log, err := InitLogger()
		require.NoError(t, err)
		Log.SetOutput(&bytes.Buffer{})
		Log.Info("hello")

		files, err := filepath.Glob(filepath.Join(dir, "rsistrat-info-*.log"))
		require.NoError(t, err)
		require.Len(t, files, 1)

		content, err := os.ReadFile(files[0])
		require.NoError(t, err)
		require.Contains(t, string(content), "hello")
	})
}

func TestGormLogger(t *testing.T) {
	var buf bytes.Buffer
	Log := logrus.New()
	Log.SetOutput(&buf)
	Log.SetLevel(logrus.DebugLevel)

	gormLogger := NewGormLogger(Log)
	ctx := context.Background()

	gormLogger.Info(ctx, "skipped %d", 1)
	require.Zero(t, buf.Len())

	gormLogger.LogMode(logger.Info).Info(ctx, "shown %d", 2)
	require.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	gormLogger.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	require.Contains(t, buf.String(), "SELECT 1")
	require.Contains(t, buf.String(), "boom")

	buf.Reset()
	gormLogger.LogMode(logger.Silent).Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 2", 1 }, nil)
	require.Zero(t, buf.Len())
	require.Equal(t, logrus.DebugLevel, Log.GetLevel())
}
