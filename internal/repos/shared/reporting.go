package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter emits formatted lifecycle outcomes to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
	Success(format string, args ...any)
	Warning(format string, args ...any)
}

type writerReporter struct {
	writer       io.Writer
	successColor *color.Color
	warningColor *color.Color
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer.
// Colors follow github.com/fatih/color, which disables them for non-terminals.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil || writer == io.Discard {
		writer = os.Stdout
	}
	return writerReporter{
		writer:       writer,
		successColor: color.New(color.FgGreen),
		warningColor: color.New(color.FgYellow),
	}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	if reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, args...)
}

func (reporter writerReporter) Success(format string, args ...any) {
	if reporter.writer == nil {
		return
	}
	reporter.successColor.Fprintf(reporter.writer, format, args...)
}

func (reporter writerReporter) Warning(format string, args ...any) {
	if reporter.writer == nil {
		return
	}
	reporter.warningColor.Fprintf(reporter.writer, format, args...)
}
