package property

import (
	"fmt"
	"strconv"
	"time"
)

// formatterFunc renders a Property to its display string. Formatters are
// total functions: unrepresentable (type, semantic) combinations fall back
// to defaultString rather than erroring or panicking.
type formatterFunc func(Property) string

var formatters = map[Semantic]formatterFunc{
	Default:       defaultString,
	Hex:           formatHex,
	Address:       formatAddress,
	Scientific:    formatDouble,
	Fixed:         formatDouble,
	Fixed3:        formatDouble,
	UtcDate:       formatDateTime,
	LocalDate:     formatDateTime,
	UtcTime:       formatDateTime,
	LocalTime:     formatDateTime,
	UtcDateTime:   formatDateTime,
	LocalDateTime: formatDateTime,
	Microseconds:  formatDuration,
	Milliseconds:  formatDuration,
	Seconds:       formatDuration,
	Percent:       formatPercent,
}

// Format renders prop via the formatter table, dispatching on its semantic
// tag. This is the single formatting path in this implementation (see
// DESIGN.md, Open Question #1): both standalone Properties and reflected
// record fields (rtl/reflect) go through this same table.
func Format(prop Property) string {
	f, ok := formatters[prop.semantic]
	if !ok {
		return defaultString(prop)
	}
	return f(prop)
}

func defaultString(p Property) string {
	switch p.kind {
	case Empty:
		return ""
	case Bool:
		if p.b {
			return "true"
		}
		return "false"
	case Int32:
		return strconv.FormatInt(int64(p.i32), 10)
	case UInt32:
		return strconv.FormatUint(uint64(p.u32), 10)
	case Int64:
		return strconv.FormatInt(p.i64, 10)
	case UInt64:
		return strconv.FormatUint(p.u64, 10)
	case Double:
		return strconv.FormatFloat(p.f64, 'g', -1, 64)
	case String:
		return p.str
	case Binary:
		return fmt.Sprintf("<binary (%d bytes)>", len(p.bin))
	case Map:
		return fmt.Sprintf("<map (%d entries)>", len(p.mp))
	case Vector:
		return fmt.Sprintf("<vector (%d entries)>", len(p.vec))
	default:
		return ""
	}
}

func formatHex(p Property) string {
	switch p.kind {
	case Int32:
		return fmt.Sprintf("%x", p.i32)
	case UInt32:
		return fmt.Sprintf("%x", p.u32)
	case Int64:
		return fmt.Sprintf("%x", p.i64)
	case UInt64:
		return fmt.Sprintf("%x", p.u64)
	case Binary:
		return fmt.Sprintf("% x", p.bin)
	default:
		return defaultString(p)
	}
}

func formatAddress(p Property) string {
	switch p.kind {
	case UInt32:
		return fmt.Sprintf("%08X", p.u32)
	case UInt64:
		return fmt.Sprintf("%016X", p.u64)
	default:
		return defaultString(p)
	}
}

func formatDouble(p Property) string {
	if p.kind != Double {
		return defaultString(p)
	}
	switch p.semantic {
	case Scientific:
		return strconv.FormatFloat(p.f64, 'e', -1, 64)
	case Fixed:
		return strconv.FormatFloat(p.f64, 'f', -1, 64)
	case Fixed3:
		return strconv.FormatFloat(p.f64, 'f', 3, 64)
	default:
		return defaultString(p)
	}
}

// epochMicros interprets a UInt64 property as microseconds since the Unix
// epoch, the same packed-time convention the spec's Log Record uses.
func epochMicros(v uint64) time.Time {
	return time.UnixMicro(int64(v))
}

func formatDateTime(p Property) string {
	if p.kind != UInt64 {
		return defaultString(p)
	}
	t := epochMicros(p.u64)
	switch p.semantic {
	case UtcDate:
		return t.UTC().Format("02/01/2006")
	case LocalDate:
		return t.Local().Format("02/01/2006")
	case UtcTime:
		return t.UTC().Format("15:04:05.000")
	case LocalTime:
		return t.Local().Format("15:04:05.000")
	case UtcDateTime:
		return t.UTC().Format("02/01/2006 15:04:05")
	case LocalDateTime:
		return t.Local().Format("02/01/2006 15:04:05")
	default:
		return defaultString(p)
	}
}

func formatDuration(p Property) string {
	if p.kind != UInt64 {
		return defaultString(p)
	}
	switch p.semantic {
	case Microseconds:
		return fmt.Sprintf("%d μs", p.u64)
	case Milliseconds:
		return fmt.Sprintf("%d ms", p.u64/1000)
	case Seconds:
		return fmt.Sprintf("%d s", p.u64/1000000)
	default:
		return defaultString(p)
	}
}

func formatPercent(p Property) string {
	switch p.kind {
	case Double:
		return fmt.Sprintf("%.2f%%", p.f64*100)
	case Int32:
		return fmt.Sprintf("%d%%", p.i32)
	case UInt32:
		return fmt.Sprintf("%d%%", p.u32)
	default:
		return defaultString(p)
	}
}
