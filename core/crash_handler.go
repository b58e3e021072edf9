package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// crashHandler receives the recovered panic value. Installed by the binary so
// the screen can be restored before the stack trace is printed
var crashHandler atomic.Pointer[func(r any)]

// SetCrashHandler installs fn as the panic handler for goroutines started with Go
// Passing nil restores the default handler
func SetCrashHandler(fn func(r any)) {
	if fn == nil {
		crashHandler.Store(nil)
		return
	}
	crashHandler.Store(&fn)
}

// HandleCrash runs the installed handler, or prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := crashHandler.Load(); fn != nil {
		(*fn)(r)
		return
	}

	Logger().Error("goroutine crashed", "panic", r)
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword for host loops and producers
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
