package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

const (
	keySeparator = '|'
	keyEscape    = '\\'
)

// Key is an ordered tuple of dimension values, e.g. (season, program, grade).
// Two keys are equal iff every dimension matches by value; Key is comparable
// and can be used directly as a map key.
type Key struct {
	encoded string
	size    int
}

// NewKey builds a key from dimension values. Strings, integers, booleans and
// fmt.Stringer values are rendered canonically; anything else uses fmt.Sprint.
func NewKey(dims ...any) Key {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, dim := range dims {
		if i > 0 {
			_ = buf.WriteByte(keySeparator)
		}
		writeEscaped(buf, renderDimension(dim))
	}

	return Key{encoded: buf.String(), size: len(dims)}
}

func (k Key) String() string {
	return k.encoded
}

func (k Key) IsZero() bool {
	return k.size == 0
}

// Len returns the number of dimensions.
func (k Key) Len() int {
	return k.size
}

// Dimensions returns the rendered dimension values in order.
func (k Key) Dimensions() []string {
	if k.size == 0 {
		return nil
	}

	out := make([]string, 0, k.size)
	var current strings.Builder
	escaped := false
	for i := 0; i < len(k.encoded); i++ {
		ch := k.encoded[i]
		switch {
		case escaped:
			current.WriteByte(ch)
			escaped = false
		case ch == keyEscape:
			escaped = true
		case ch == keySeparator:
			out = append(out, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	return append(out, current.String())
}

// Compare orders keys by dimension count, then dimension by dimension.
func (k Key) Compare(other Key) int {
	if k.size != other.size {
		if k.size < other.size {
			return -1
		}
		return 1
	}

	left := k.Dimensions()
	right := other.Dimensions()
	for i := range left {
		if c := strings.Compare(left[i], right[i]); c != 0 {
			return c
		}
	}
	return 0
}

func renderDimension(dim any) string {
	switch v := dim.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func writeEscaped(buf *bytebufferpool.ByteBuffer, value string) {
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch == keySeparator || ch == keyEscape {
			_ = buf.WriteByte(keyEscape)
		}
		_ = buf.WriteByte(ch)
	}
}
