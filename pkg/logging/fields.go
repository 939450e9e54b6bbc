package logging

import "fmt"

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Error creates an error field.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field with an arbitrary value.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component tags the subsystem a log line comes from.
func Component(name string) Field {
	return Field{Key: "component", Value: name}
}

// ScheduleID tags a log line with a schedule identifier.
func ScheduleID(id int) Field {
	return Field{Key: "schedule_id", Value: id}
}

// SheetID tags a log line with a generated exercise sheet identifier.
func SheetID(id fmt.Stringer) Field {
	return Field{Key: "sheet_id", Value: id.String()}
}

// Count creates a count field.
func Count(n int) Field {
	return Field{Key: "count", Value: n}
}

// Attempts creates an attempts field.
func Attempts(n int) Field {
	return Field{Key: "attempts", Value: n}
}

// Duration tags a log line with an elapsed-time string.
func Duration(key string, d fmt.Stringer) Field {
	return Field{Key: key, Value: d.String()}
}
