package mysql

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// FormatValue renders a scanned cell value as display text for the given
// column. The second result is false when the cell is NULL or the kind has
// no textual rendering.
func FormatValue(f Field, v any) (string, bool) {
	if v == nil {
		return "", false
	}
	switch v := v.(type) {
	case time.Time:
		switch f.Meta().Kind {
		case KindDate:
			return v.Format(dateLayout), true
		case KindTime:
			return v.Format(timeLayout), true
		default:
			return v.Format(dateTimeLayout), true
		}
	case []byte:
		return string(v), true
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true
	case float32, float64:
		return fmt.Sprint(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}
