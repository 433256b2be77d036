package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Traversal field helpers

func Component(name string) Field {
	return String("component", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Variant(name string) Field {
	return String("variant", name)
}

func Layout(name string) Field {
	return String("layout", name)
}

func Graph(index int) Field {
	return Int("graph", index)
}

func Graphs(n int) Field {
	return Int("graphs", n)
}

func GroupWidth(w int) Field {
	return Int("group_width", w)
}

// Micros renders a duration as integer microseconds, the unit the run
// reports use.
func Micros(key string, d time.Duration) Field {
	return Int64(key, d.Microseconds())
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Path(p string) Field {
	return String("path", p)
}

func Count(n int) Field {
	return Int("count", n)
}
