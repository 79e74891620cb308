package aaslib

import "fmt"

// PrintLevel mirrors the reduced botlib's PRT_ levels.
type PrintLevel int

const (
	PrintMessage PrintLevel = iota + 1
	PrintWarning
	PrintError
	PrintFatal
	PrintExit
)

func (l PrintLevel) String() string {
	switch l {
	case PrintMessage:
		return "message"
	case PrintWarning:
		return "warning"
	case PrintError:
		return "error"
	case PrintFatal:
		return "fatal"
	case PrintExit:
		return "exit"
	default:
		return fmt.Sprintf("printlevel(%d)", int(l))
	}
}

// Printer is the host's logging sink, the Go shape of botimport.Print's
// variadic C function pointer.
type Printer interface {
	Print(level PrintLevel, format string, args ...interface{})
}

// StdPrinter writes to an fmt.Stringer-free io.Writer-like sink via a
// plain func, letting a host wire this straight to a logger's method
// value without an adapter type.
type StdPrinter struct {
	Write func(line string)
}

func (p StdPrinter) Print(level PrintLevel, format string, args ...interface{}) {
	if p.Write == nil {
		return
	}
	p.Write(fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...)))
}
