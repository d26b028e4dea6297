package logger

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// compactFormatter renders entries as "[15:04:05] LEVEL message key=value".
type compactFormatter struct {
	disableColors bool
}

func levelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 37 // white
	case logrus.InfoLevel:
		return 36 // cyan
	case logrus.WarnLevel:
		return 33 // yellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return 31 // red
	default:
		return 37
	}
}

func (f *compactFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	fmt.Fprintf(b, "[%s] ", entry.Time.Format("15:04:05"))

	level := strings.ToUpper(entry.Level.String())
	if f.disableColors {
		fmt.Fprintf(b, "%-5s ", level)
	} else {
		fmt.Fprintf(b, "\x1b[%dm%-5s\x1b[0m ", levelColor(entry.Level), level)
	}

	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			str := fmt.Sprintf("%v", entry.Data[k])
			if strings.ContainsAny(str, " \t\n\r=") {
				str = fmt.Sprintf("%q", str)
			}
			if f.disableColors {
				fmt.Fprintf(b, " %s=%s", k, str)
			} else {
				fmt.Fprintf(b, " \x1b[36m%s\x1b[0m=%s", k, str)
			}
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New builds a logger writing to stdout. Debug enables the debug level used
// by the location and imagery tracing.
func New(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&compactFormatter{})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
