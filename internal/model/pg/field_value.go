package pg

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// FormatValue renders a scanned cell for display according to the column
// kind. The second return is false for SQL NULL.
func FormatValue(f *Field, v any) (string, bool) {
	if v == nil {
		return "", false
	}
	switch x := v.(type) {
	case time.Time:
		switch f.Kind {
		case KindDate:
			return x.Format(dateLayout), true
		case KindTime, KindTimeTz:
			return x.Format(timeLayout), true
		default:
			return x.Format(dateTimeLayout), true
		}
	case []byte:
		return string(x), true
	case bool:
		if x {
			return "t", true
		}
		return "f", true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}
