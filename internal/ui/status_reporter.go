package ui

import (
	"fmt"
	"io"
)

const (
	progressPrefixConstant      = "[*]"
	successPrefixConstant       = "[OK]"
	informationPrefixConstant   = "[INFO]"
	warningPrefixConstant       = "[!]"
	statusLineTemplateConstant  = "%s %s\n"
	plainLineTemplateConstant   = "%s\n"
	indentedLineIndentationUnit = "    "
)

// StatusReporter writes prefixed, human-readable status lines to an output stream.
type StatusReporter struct {
	output io.Writer
}

// NewStatusReporter constructs a reporter over the provided writer.
func NewStatusReporter(output io.Writer) *StatusReporter {
	return &StatusReporter{output: output}
}

// Progress reports an in-progress step with the [*] prefix.
func (reporter *StatusReporter) Progress(format string, arguments ...any) {
	reporter.writeLine(progressPrefixConstant, format, arguments...)
}

// Success reports a completed step with the [OK] prefix.
func (reporter *StatusReporter) Success(format string, arguments ...any) {
	reporter.writeLine(successPrefixConstant, format, arguments...)
}

// Information reports an expected skip or follow-up notice with the [INFO] prefix.
func (reporter *StatusReporter) Information(format string, arguments ...any) {
	reporter.writeLine(informationPrefixConstant, format, arguments...)
}

// Warning reports a recoverable problem with the [!] prefix.
func (reporter *StatusReporter) Warning(format string, arguments ...any) {
	reporter.writeLine(warningPrefixConstant, format, arguments...)
}

// Detail reports an indented continuation line without a prefix.
func (reporter *StatusReporter) Detail(format string, arguments ...any) {
	if reporter == nil || reporter.output == nil {
		return
	}
	fmt.Fprintf(reporter.output, plainLineTemplateConstant, indentedLineIndentationUnit+fmt.Sprintf(format, arguments...))
}

func (reporter *StatusReporter) writeLine(prefix string, format string, arguments ...any) {
	if reporter == nil || reporter.output == nil {
		return
	}
	fmt.Fprintf(reporter.output, statusLineTemplateConstant, prefix, fmt.Sprintf(format, arguments...))
}
