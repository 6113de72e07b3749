package log

import (
	"github.com/sirupsen/logrus"
)

// MessageFormatter prints the bare message, for piping CLI output.
type MessageFormatter struct{}

func (f *MessageFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}
