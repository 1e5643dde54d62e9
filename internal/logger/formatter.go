// internal/logger/formatter.go

package logger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the layout of the timestamp column.
const TimestampFormat = "2006-01-02 15:04:05,000"

// Column widths of the padded fields.
const (
	levelWidth    = 9
	hostnameWidth = 40
	filenameWidth = 20
	originWidth   = 20
)

// LineFormatter renders entries as pipe-separated, fixed-width columns:
//
//	LEVEL | TIMESTAMP | HOSTNAME | FILENAME | ORIGIN | MESSAGE
//
// Columns are padded, never truncated. Fields other than the ones set by the
// origin hook are appended after the message as sorted key=value pairs.
type LineFormatter struct{}

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-*s | %s | %-*s | %-*s | %-*s | %s",
		levelWidth, levelLabel(entry.Level),
		entry.Time.Format(TimestampFormat),
		hostnameWidth, stringField(entry.Data, FieldHostname),
		filenameWidth, stringField(entry.Data, FieldFilename),
		originWidth, stringField(entry.Data, FieldOrigin),
		entry.Message,
	)

	// Other fields (sorted for consistency)
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == FieldHostname || k == FieldFilename || k == FieldOrigin {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(formatValue(entry.Data[k]))
	}
	sb.WriteByte('\n')

	return []byte(sb.String()), nil
}

func stringField(data logrus.Fields, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// formatValue converts different types to string for text logging.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		if strings.Contains(v, " ") {
			return strconv.Quote(v)
		}
		return v
	case error:
		return strconv.Quote(v.Error())
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "<nil>"
	default:
		jsonBytes, err := json.Marshal(v)
		if err == nil {
			return string(jsonBytes)
		}
		return fmt.Sprintf("%v", v)
	}
}

// Ensure LineFormatter implements the logrus.Formatter interface.
var _ logrus.Formatter = (*LineFormatter)(nil)
