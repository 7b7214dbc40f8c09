package shred

import (
	"strconv"
	"time"

	"github.com/pachadata/shred/deprecated"
)

// Date is a date without a time of day, stored as the number of days from
// the Unix epoch, 1 January 1970.
type Date int32

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Time is a time of day, stored as the number of microseconds from
// midnight.
type Time int64

// TimeFromMillis converts a millisecond-of-day count to a Time.
func TimeFromMillis(millis int32) Time {
	return Time(int64(millis) * microsPerMilli)
}

// TimeFromMicros converts a microsecond-of-day count to a Time.
func TimeFromMicros(micros int64) Time {
	return Time(micros)
}

// Millis returns the time as milliseconds from midnight, truncating
// sub-millisecond precision.
func (t Time) Millis() int64 {
	return int64(t) / microsPerMilli
}

// Micros returns the time as microseconds from midnight.
func (t Time) Micros() int64 {
	return int64(t)
}

// Duration returns the time as an offset from midnight.
func (t Time) Duration() time.Duration {
	return time.Duration(t) * time.Microsecond
}

func (t Time) String() string {
	return t.Duration().String()
}

const (
	// Julian day number of the Unix epoch, 1 January 1970.
	julianDayOfEpoch = 2_440_588

	secondsPerDay  = 86_400
	millisPerDay   = secondsPerDay * 1000
	microsPerMilli = 1000
	nanosPerMicro  = 1000
	nanosPerMilli  = microsPerMilli * nanosPerMicro
	nanosPerDay    = secondsPerDay * 1_000_000_000
)

// Timestamp is an instant, stored in the INT96 layout: the Julian day
// number and the nanoseconds elapsed within that day.
type Timestamp struct {
	raw deprecated.Int96
}

// TimestampFromInt96 wraps a raw INT96 column value.
func TimestampFromInt96(raw deprecated.Int96) Timestamp {
	return Timestamp{raw: raw}
}

// TimestampFromMillis converts epoch milliseconds to a Timestamp.
func TimestampFromMillis(millis int64) Timestamp {
	day := floorDiv(millis, millisPerDay)
	rem := millis - day*millisPerDay
	return Timestamp{raw: deprecated.FromDayNanos(uint32(day+julianDayOfEpoch), uint64(rem)*nanosPerMilli)}
}

// TimestampFromMicros converts epoch microseconds to a Timestamp.
func TimestampFromMicros(micros int64) Timestamp {
	day := floorDiv(micros, millisPerDay*microsPerMilli)
	rem := micros - day*millisPerDay*microsPerMilli
	return Timestamp{raw: deprecated.FromDayNanos(uint32(day+julianDayOfEpoch), uint64(rem)*nanosPerMicro)}
}

// Int96 returns the raw INT96 representation.
func (t Timestamp) Int96() deprecated.Int96 {
	return t.raw
}

// DayNanos returns the Julian day number and the nanoseconds within the
// day.
func (t Timestamp) DayNanos() (day int32, nanos int64) {
	return int32(t.raw.JulianDay()), int64(t.raw.Nanos())
}

// Millis returns the timestamp as epoch milliseconds. The second result
// is false if the value does not fit in an int64.
func (t Timestamp) Millis() (int64, bool) {
	day, nanos := t.DayNanos()
	return checkedEpoch(day, nanos, nanosPerMilli)
}

// Micros returns the timestamp as epoch microseconds. The second result
// is false if the value does not fit in an int64.
func (t Timestamp) Micros() (int64, bool) {
	day, nanos := t.DayNanos()
	return checkedEpoch(day, nanos, nanosPerMicro)
}

// Time returns the timestamp as a time.Time in UTC. The second result is
// false if the value does not fit.
func (t Timestamp) Time() (time.Time, bool) {
	micros, ok := t.Micros()
	if !ok {
		return time.Time{}, false
	}
	sec := floorDiv(micros, 1_000_000)
	rem := micros - sec*1_000_000
	return time.Unix(sec, rem*nanosPerMicro).UTC(), true
}

func (t Timestamp) String() string {
	if ts, ok := t.Time(); ok {
		return ts.Format(time.RFC3339Nano)
	}
	return "int96(" + t.raw.String() + ")"
}

func checkedEpoch(day int32, nanos, div int64) (int64, bool) {
	const maxInt64 = 1<<63 - 1
	const minInt64 = -1 << 63
	days := int64(day) - julianDayOfEpoch
	perDay := int64(nanosPerDay) / div
	if days > maxInt64/perDay || days < minInt64/perDay {
		return 0, false
	}
	base := days * perDay
	off := nanos / div
	if base > 0 && off > maxInt64-base {
		return 0, false
	}
	return base + off, true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Bson is a BSON binary value.
type Bson []byte

// Json is a JSON document held as its string form.
type Json string

// Enum is an enum string value.
type Enum string

func (b Bson) String() string {
	return "bson(" + strconv.Itoa(len(b)) + " bytes)"
}
