package helper

import (
	"path"
	"runtime"
)

// GetFuncName returns the name of the calling function without its import path,
// e.g. "userservice.(*UserService).RegisterUser".
func GetFuncName() string {
	return funcName(2)
}

// GetCallerFuncName returns the name of the function that called the caller.
func GetCallerFuncName() string {
	return funcName(3)
}

func funcName(skip int) string {
	pc := make([]uintptr, 1)
	if runtime.Callers(skip+1, pc) == 0 {
		return "unknown"
	}
	frame, _ := runtime.CallersFrames(pc).Next()
	if frame.Function == "" {
		return "unknown"
	}
	return path.Base(frame.Function)
}
