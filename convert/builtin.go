package convert

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// String returns the identity converter.
func String() Converter {
	return Typed("string", func(s string) (string, error) { return s, nil })
}

// Bool accepts the strconv.ParseBool forms (1/0, t/f, true/false, ...).
func Bool() Converter {
	return Typed("bool", func(s string) (bool, error) {
		v, err := strconv.ParseBool(s)
		return v, numCause(err)
	})
}

// Int converts to the platform int.
func Int() Converter {
	return Typed("int", func(s string) (int, error) {
		v, err := strconv.Atoi(s)
		return v, numCause(err)
	})
}

// Int64 converts to int64.
func Int64() Converter {
	return Typed("int64", func(s string) (int64, error) {
		v, err := strconv.ParseInt(s, 10, 64)
		return v, numCause(err)
	})
}

// Uint converts to the platform uint.
func Uint() Converter {
	return Typed("uint", func(s string) (uint, error) {
		v, err := strconv.ParseUint(s, 10, strconv.IntSize)
		return uint(v), numCause(err)
	})
}

// Uint8 converts to uint8; handy for log levels and similar small ranges.
func Uint8() Converter {
	return Typed("uint8", func(s string) (uint8, error) {
		v, err := strconv.ParseUint(s, 10, 8)
		return uint8(v), numCause(err)
	})
}

// Uint64 converts to uint64.
func Uint64() Converter {
	return Typed("uint64", func(s string) (uint64, error) {
		v, err := strconv.ParseUint(s, 10, 64)
		return v, numCause(err)
	})
}

// Float64 converts to float64.
func Float64() Converter {
	return Typed("float64", func(s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		return v, numCause(err)
	})
}

// Duration converts via time.ParseDuration ("300ms", "1h30m").
func Duration() Converter {
	return Typed("duration", time.ParseDuration)
}

// TimeRFC3339 converts an RFC3339 timestamp into time.Time.
func TimeRFC3339() Converter {
	return Typed("rfc3339", func(s string) (time.Time, error) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, errors.New("not a valid RFC3339 time")
		}
		return t, nil
	})
}

// UUID converts to uuid.UUID, accepting the forms uuid.Parse accepts.
func UUID() Converter {
	return Typed("uuid", uuid.Parse)
}

// Semver converts to *semver.Version (strict semantic-version form).
func Semver() Converter {
	return Typed("semver", func(s string) (*semver.Version, error) {
		v, err := semver.StrictNewVersion(s)
		if err != nil {
			return nil, errors.New("not a valid semantic version")
		}
		return v, nil
	})
}

// Enum accepts only the listed values and yields the matched string. The
// returned converter exposes its values so schema exporters can round-trip
// the declaration.
func Enum(values ...string) EnumConverter {
	return EnumConverter{values: values}
}

// EnumConverter is the Converter returned by Enum.
type EnumConverter struct {
	values []string
}

func (e EnumConverter) Name() string { return "enum" }

func (e EnumConverter) Convert(text string) (any, error) {
	for _, v := range e.values {
		if text == v {
			return text, nil
		}
	}
	return nil, errors.New("must be one of: " + strings.Join(e.values, ", "))
}

// Values returns the accepted values in declaration order.
func (e EnumConverter) Values() []string {
	return append([]string(nil), e.values...)
}

// numCause strips the strconv wrapper so diagnostics read
// "cannot parse argument 'x': invalid syntax".
func numCause(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
