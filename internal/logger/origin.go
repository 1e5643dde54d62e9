// internal/logger/origin.go

package logger

//go:generate mockgen -source=origin.go -destination=mocks/mock_host_resolver.go -package=mocks HostResolver

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Keys under which the origin hook stores derived fields in the entry data.
const (
	FieldHostname = "hostname"
	FieldOrigin   = "origin"
	FieldFilename = "filename"
)

// UnknownHostname is used when the hostname cannot be resolved.
const UnknownHostname = "unknown"

const maximumCallerDepth = 32

// HostResolver looks up the name of the local host.
type HostResolver interface {
	Hostname() (string, error)
}

// OSHostResolver implements HostResolver using the os package.
type OSHostResolver struct{}

// Hostname returns the host name reported by the kernel.
func (OSHostResolver) Hostname() (string, error) {
	return os.Hostname()
}

// Record holds the fields derived for a single log call.
type Record struct {
	Hostname string
	Filename string
	Function string
	Line     int
}

// Origin renders the function name and line number as "<function>: <line>".
func (r Record) Origin() string {
	return fmt.Sprintf("%s: %d", r.Function, r.Line)
}

// Enrich builds the derived fields for a call site. The hostname is looked up
// on every call and falls back to UnknownHostname on failure.
func Enrich(frame runtime.Frame, resolver HostResolver) Record {
	hostName, err := resolver.Hostname()
	if err != nil || hostName == "" {
		hostName = UnknownHostname
	}
	return Record{
		Hostname: hostName,
		Filename: filepath.Base(frame.File),
		Function: shortFunctionName(frame.Function),
		Line:     frame.Line,
	}
}

// originHook attaches hostname and origin to every entry before any sink fires.
type originHook struct {
	resolver HostResolver
}

func (h *originHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *originHook) Fire(entry *logrus.Entry) error {
	rec := Enrich(callerFrame(), h.resolver)
	entry.Data[FieldHostname] = rec.Hostname
	entry.Data[FieldFilename] = rec.Filename
	entry.Data[FieldOrigin] = rec.Origin()
	return nil
}

var (
	logrusPackage = reflect.TypeOf(logrus.Entry{}).PkgPath()
	loggerMethods = reflect.TypeOf(Logger{}).PkgPath() + ".(*Logger)."
)

// callerFrame returns the first frame outside logrus and outside the
// *Logger wrapper methods, i.e. the code that issued the log call.
func callerFrame() runtime.Frame {
	pcs := make([]uintptr, maximumCallerDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	inLogrus := false
	for {
		frame, more := frames.Next()
		pkg := packageName(frame.Function)
		switch {
		case pkg == logrusPackage:
			inLogrus = true
		case !inLogrus:
			// hook machinery in this package, below logrus
		case strings.HasPrefix(frame.Function, loggerMethods):
			// Warning, Critical and promoted-method wrappers
		default:
			return frame
		}
		if !more {
			return runtime.Frame{Function: "?", File: "?"}
		}
	}
}

// packageName strips the symbol part from a fully qualified function or type name.
// "github.com/sirupsen/logrus.(*Entry).log" -> "github.com/sirupsen/logrus"
func packageName(f string) string {
	slash := strings.LastIndex(f, "/")
	dot := strings.Index(f[slash+1:], ".")
	if dot < 0 {
		return f
	}
	return f[:slash+1+dot]
}

// shortFunctionName drops the package path: "example.com/app.(*Server).Run" -> "(*Server).Run".
func shortFunctionName(f string) string {
	pkg := packageName(f)
	if pkg == f {
		return f
	}
	return f[len(pkg)+1:]
}
