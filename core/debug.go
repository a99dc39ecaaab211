package core

// DebugWriter emits one line of diagnostic text.
type DebugWriter func(string)

// ParamErrorHook is called when a driver detects an invalid argument.
// op names the call, detail describes the offending argument.
type ParamErrorHook func(op, detail string)

var (
	debugWriter    DebugWriter    = func(string) {}
	debugEnabled   bool
	paramErrorHook ParamErrorHook = func(op, detail string) {}

	// debugQueue feeds the background writer started by InitAsyncDebug
	debugQueue chan string
)

// SetDebugWriter routes debug lines to a UART, USB CDC or a host logger.
func SetDebugWriter(writer DebugWriter) {
	debugWriter = writer
}

// SetDebugEnabled turns debug output on or off.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled reports whether debug output is on.
func IsDebugEnabled() bool {
	return debugEnabled
}

// SetParamErrorHook installs the handler for driver argument errors.
// Passing nil restores the silent default.
func SetParamErrorHook(hook ParamErrorHook) {
	if hook == nil {
		hook = func(op, detail string) {}
	}
	paramErrorHook = hook
}

// ParamError reports an invalid argument passed to a driver call. The
// caller carries on regardless.
func ParamError(op, detail string) {
	paramErrorHook(op, detail)
}

// InitAsyncDebug starts the goroutine that drains DebugAsync. Call it once,
// after SetDebugWriter.
func InitAsyncDebug() {
	debugQueue = make(chan string, 16)
	go func() {
		for msg := range debugQueue {
			if debugWriter != nil {
				debugWriter(msg)
			}
		}
	}()
}

// DebugPrintln writes msg synchronously when debug output is on.
func DebugPrintln(msg string) {
	if debugEnabled && debugWriter != nil {
		debugWriter(msg)
	}
}

// DebugAsync queues msg without blocking. It is dropped if the queue is
// full or InitAsyncDebug was never called.
func DebugAsync(msg string) {
	if !debugEnabled || debugQueue == nil {
		return
	}
	select {
	case debugQueue <- msg:
	default:
	}
}
