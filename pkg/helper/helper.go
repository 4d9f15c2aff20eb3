package helper

import (
	"runtime"
	"strings"
)

// GetFuncName returns the short name of the calling function, e.g. "(*Page).Click".
func GetFuncName() string {
	pcs := make([]uintptr, 1)
	if runtime.Callers(2, pcs) == 0 {
		return "unknown"
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	if frame.Function == "" {
		return "unknown"
	}
	return shortName(frame.Function)
}

// shortName strips the import path and package from a fully qualified function name.
func shortName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
