package codec

import (
	"github.com/mcncl/canonjson/internal/value"
	"github.com/sirupsen/logrus"
)

// ParseDates returns a copy of v in which every string value and every
// string object key that denotes a date or datetime is replaced by its typed
// form. Children are rewritten before their parent is rebuilt, and objects
// are rebuilt rather than edited in place.
//
// When two keys of one object resolve to the same typed key, the entry that
// comes later in the object wins and a warning is logged.
func ParseDates(v value.Value, log logrus.FieldLogger) value.Value {
	switch t := v.(type) {
	case string:
		if typed, ok := value.RecognizeDate(t); ok {
			return typed
		}
		return t
	case value.Array:
		out := make(value.Array, len(t))
		for i := range t {
			out[i] = ParseDates(t[i], log)
		}
		return out
	case *value.Object:
		out := value.NewObjectSize(t.Len())
		t.Range(func(key, val value.Value) bool {
			walked := ParseDates(val, log)
			if s, ok := key.(string); ok {
				if typed, ok := value.RecognizeDate(s); ok {
					if out.Set(typed, walked) {
						if log == nil {
							log = logrus.StandardLogger()
						}
						log.WithFields(logrus.Fields{
							"key":   s,
							"typed": typed,
						}).Warn("date key collides with an earlier key, keeping the later value")
					}
					return true
				}
			}
			out.Set(key, walked)
			return true
		})
		return out
	default:
		return v
	}
}
