package log

import (
	"fmt"
	"os"
	"path"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const timestampFormat = "2006-01-02 15:04:05"

// InitLogger builds the logger from the log.* configuration keys. With
// log.file set, every level is also written to a daily file under log.path.
func InitLogger() (*logrus.Logger, error) {
	var loglevel logrus.Level

	Log := logrus.New()
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})
	if viper.GetBool("log.plain") {
		Log.SetFormatter(&MessageFormatter{})
	}
	Log.Out = os.Stdout

	if err := loglevel.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		return nil, fmt.Errorf("unknown log level: %w", err)
	}
	Log.SetLevel(loglevel)

	if viper.GetBool("log.file") {
		dataPath := viper.GetString("log.path")
		if err := os.MkdirAll(dataPath, os.ModePerm); err != nil {
			return nil, fmt.Errorf("mkdir error: %w", err)
		}
		if err := NewFileHook(Log, dataPath, viper.GetUint("log.save")); err != nil {
			return nil, err
		}
	}
	return Log, nil
}

// NewFileHook writes each level to its own rotating file in logPath,
// keeping save files per level.
func NewFileHook(log *logrus.Logger, logPath string, save uint) error {
	writers := lfshook.WriterMap{}
	levels := []logrus.Level{
		logrus.TraceLevel, logrus.DebugLevel, logrus.InfoLevel, logrus.WarnLevel,
		logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel,
	}
	for _, level := range levels {
		w, err := writer(logPath, level.String(), save)
		if err != nil {
			return err
		}
		writers[level] = w
	}

	log.AddHook(lfshook.NewHook(writers, &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	}))
	return nil
}

func writer(logPath string, level string, save uint) (*rotatelogs.RotateLogs, error) {
	var tempFileFlag string
	if flag := viper.GetString("log.flag"); flag != "" {
		tempFileFlag = flag + "-"
	}

	tempFileFlag += level
	logFullPath := path.Join(logPath, tempFileFlag)

	return rotatelogs.New(
		logFullPath+"-%Y%m%d."+viper.GetString("log.suffix"),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(-1),
		rotatelogs.WithLinkName(logFullPath+".out"),
		rotatelogs.WithRotationCount(save),
	)
}
