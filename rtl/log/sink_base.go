package log

// baseSink factors the "optional formatter + optional filter" behavior
// every concrete Sink needs, grounded on
// original_source/src/rtl-lib/logger/sink_base.hxx.
type baseSink struct {
	formatter Formatter
	filter    Filter
}

func newBaseSink(formatter Formatter, filter Filter) baseSink {
	if formatter == nil {
		formatter = NewSimpleFormatter(DefaultFormatterOptions())
	}
	return baseSink{formatter: formatter, filter: filter}
}

func (b *baseSink) allow(r Record) bool {
	return b.filter == nil || b.filter.Allow(r)
}

func (b *baseSink) format(r Record) string {
	return b.formatter.Format(r)
}
