// Date built-ins. date_parse leans on github.com/araddon/dateparse to
// accept the wide variety of timestamp layouts real-world text uses
// without the caller naming a layout; date_format reconstructs a
// time.Time from the parsed fields and renders it with
// github.com/goodsign/monday for locale-aware month/weekday names —
// both direct teacher dependencies, used there for the same pairing.
package builtins

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"

	"github.com/stuncs69/vexel/internal/object"
)

func init() {
	register("date_parse", dateParseBuiltin)
	register("date_format", dateFormatBuiltin)
}

func dateParseBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("date_parse")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("date_parse")
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil, nil
	}
	o := object.NewObject()
	o.Set("year", numberResult(int32(t.Year())))
	o.Set("month", numberResult(int32(t.Month())))
	o.Set("day", numberResult(int32(t.Day())))
	o.Set("hour", numberResult(int32(t.Hour())))
	o.Set("minute", numberResult(int32(t.Minute())))
	o.Set("second", numberResult(int32(t.Second())))
	return o, nil
}

func dateFormatBuiltin(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("date_format")
	}
	o, ok := obj(args[0])
	layout, lok := str(args[1])
	if !ok || !lok {
		return argError("date_format")
	}
	year, y1 := fieldNum(o, "year")
	month, y2 := fieldNum(o, "month")
	day, y3 := fieldNum(o, "day")
	hour, y4 := fieldNum(o, "hour")
	minute, y5 := fieldNum(o, "minute")
	second, y6 := fieldNum(o, "second")
	if !(y1 && y2 && y3 && y4 && y5 && y6) {
		return nil, nil
	}
	t := time.Date(int(year), time.Month(month), int(day), int(hour), int(minute), int(second), 0, time.UTC)
	return stringResult(monday.Format(t, layout, monday.LocaleEnUS)), nil
}

func fieldNum(o *object.Object, key string) (int32, bool) {
	v, ok := o.Get(key)
	if !ok {
		return 0, false
	}
	return num(v)
}
