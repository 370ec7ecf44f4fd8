/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package size provides a binary byte-count type with human-readable
// parsing and formatting, plus a viper decoder hook so config structs can
// declare buffer sizes and rotation thresholds as plain strings like "32KB".
package size

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Size is a count of bytes using binary (1024-based) multiples.
type Size uint64

const (
	SizeNul  Size = 0
	SizeUnit Size = 1
	SizeKilo Size = SizeUnit << 10
	SizeMega Size = SizeKilo << 10
	SizeGiga Size = SizeMega << 10
	SizeTera Size = SizeGiga << 10
	SizePeta Size = SizeTera << 10
	SizeExa  Size = SizePeta << 10
)

var units = []struct {
	suffix string
	unit   Size
}{
	{"EB", SizeExa},
	{"E", SizeExa},
	{"PB", SizePeta},
	{"P", SizePeta},
	{"TB", SizeTera},
	{"T", SizeTera},
	{"GB", SizeGiga},
	{"G", SizeGiga},
	{"MB", SizeMega},
	{"M", SizeMega},
	{"KB", SizeKilo},
	{"K", SizeKilo},
	{"B", SizeUnit},
}

// Parse decodes a human-readable size string such as "10MB" or "1.5GiB"-style
// ("1.5GB") into a Size. A bare number is interpreted as a byte count.
func Parse(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("size: empty value")
	}

	up := strings.ToUpper(s)

	for _, u := range units {
		if strings.HasSuffix(up, u.suffix) {
			num := strings.TrimSpace(up[:len(up)-len(u.suffix)])
			if num == "" {
				continue
			}

			f, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("size: invalid numeric value %q: %w", s, err)
			}

			return Size(f * float64(u.unit)), nil
		}
	}

	f, err := strconv.ParseFloat(up, 64)
	if err != nil {
		return 0, fmt.Errorf("size: cannot parse %q", s)
	}

	return Size(f), nil
}

// String renders the size using the largest unit that keeps the mantissa >= 1.
func (s Size) String() string {
	switch {
	case s >= SizeExa:
		return fmt.Sprintf("%.2fEB", float64(s)/float64(SizeExa))
	case s >= SizePeta:
		return fmt.Sprintf("%.2fPB", float64(s)/float64(SizePeta))
	case s >= SizeTera:
		return fmt.Sprintf("%.2fTB", float64(s)/float64(SizeTera))
	case s >= SizeGiga:
		return fmt.Sprintf("%.2fGB", float64(s)/float64(SizeGiga))
	case s >= SizeMega:
		return fmt.Sprintf("%.2fMB", float64(s)/float64(SizeMega))
	case s >= SizeKilo:
		return fmt.Sprintf("%.2fKB", float64(s)/float64(SizeKilo))
	default:
		return fmt.Sprintf("%dB", uint64(s))
	}
}

// Uint64 returns the size as a plain byte count.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// Int64 returns the size as a signed byte count.
func (s Size) Int64() int64 {
	return int64(s)
}

// ViperDecoderHook returns a mapstructure-compatible decode hook that
// converts a source string into a Size, so viper-backed config structs can
// embed Size fields directly.
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	return func(src reflect.Type, dst reflect.Type, data interface{}) (interface{}, error) {
		if dst != reflect.TypeOf(Size(0)) {
			return data, nil
		}

		if src.Kind() != reflect.String {
			return data, nil
		}

		return Parse(data.(string))
	}
}
