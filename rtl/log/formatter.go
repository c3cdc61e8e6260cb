package log

import (
	"fmt"
	"strings"
	"time"
)

// LineTerm selects a formatter's line terminator.
type LineTerm int

const (
	LF LineTerm = iota
	CRLF
	NoTerm
)

// FormatterOptions configures the built-in formatter.
type FormatterOptions struct {
	IncludeDate      bool
	IncludeTime      bool
	IncludeLevel     bool
	IncludeTID       bool
	UTC              bool
	IncludeComponent bool
	LineTerm         LineTerm
	IndentWidth      int // spaces per indent level, 1..64
}

// DefaultFormatterOptions matches the spec's description of a typical
// console/file formatter: date+time, level letter, component, LF.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		IncludeDate:      true,
		IncludeTime:      true,
		IncludeLevel:     true,
		IncludeTID:       false,
		UTC:              false,
		IncludeComponent: true,
		LineTerm:         LF,
		IndentWidth:      2,
	}
}

// Formatter maps a Record to its display string.
type Formatter interface {
	Format(r Record) string
}

// SimpleFormatter is the built-in formatter, grounded on
// original_source/src/rtl-lib/logger/simple_formatter.cxx.
type SimpleFormatter struct {
	Opts FormatterOptions
}

// NewSimpleFormatter constructs a SimpleFormatter with opts, clamping
// IndentWidth to [1, 64].
func NewSimpleFormatter(opts FormatterOptions) *SimpleFormatter {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 1
	} else if opts.IndentWidth > 64 {
		opts.IndentWidth = 64
	}
	return &SimpleFormatter{Opts: opts}
}

func (f *SimpleFormatter) Format(r Record) string {
	var sb strings.Builder

	t := time.UnixMicro(int64(r.TimeMicros))
	if f.Opts.UTC {
		t = t.UTC()
	} else {
		t = t.Local()
	}

	if f.Opts.IncludeDate {
		sb.WriteString(t.Format("2006-01-02"))
		sb.WriteByte(' ')
	}
	if f.Opts.IncludeTime {
		sb.WriteString(t.Format("15:04:05.000000"))
		sb.WriteByte(' ')
	}
	if f.Opts.IncludeLevel {
		sb.WriteByte(r.Level.Letter())
		sb.WriteByte(' ')
	}
	if f.Opts.IncludeTID {
		fmt.Fprintf(&sb, "[%d] ", r.ScopeID)
	}
	if f.Opts.IncludeComponent && r.Component != "" {
		sb.WriteByte('[')
		sb.WriteString(r.Component)
		sb.WriteString("] ")
	}
	if r.Indent > 0 {
		sb.WriteString(strings.Repeat(" ", int(r.Indent)*f.Opts.IndentWidth))
	}
	sb.WriteString(r.Message)

	switch f.Opts.LineTerm {
	case LF:
		sb.WriteByte('\n')
	case CRLF:
		sb.WriteString("\r\n")
	case NoTerm:
	}
	return sb.String()
}
