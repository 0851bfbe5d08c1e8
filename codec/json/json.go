// Package json implements the JSON front-end: parsing JSON text into a
// heap.Value tree via the standard library's token-based decoder, and
// emitting heap.Value trees back out as JSON text.
//
// Parsing drives heap.Builder one token at a time off
// encoding/json.Decoder.Token(), the standard library's own streaming
// tokenizer, rather than reimplementing a JSON scanner.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/heap"
)

// Options configures the parser's tolerance for non-standard JSON
// extensions.
type Options struct {
	// PermitNaNInfinity allows the bare identifiers NaN, Infinity, and
	// -Infinity to parse as decimal values, rather than failing with a
	// parse error as strict JSON requires.
	PermitNaNInfinity bool

	// EmitNaNInfinity controls whether Marshal writes NaN/Infinity as the
	// bare identifiers (non-standard) or as the string "null"-shaped
	// fallback strict JSON requires when it cannot represent them.
	EmitNaNInfinity bool
}

// Parse decodes JSON text into a heap.Value tree.
func Parse(data []byte, opts Options) (heap.Value, error) {
	if opts.PermitNaNInfinity {
		data = substituteNaNInfinity(data)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	b := heap.NewBuilder()
	if err := parseValue(dec, b, opts); err != nil {
		return heap.Value{}, errs.Parse("json.Parse", err.Error())
	}

	v, err := b.Build()
	if err != nil {
		return heap.Value{}, errs.Parse("json.Parse", err.Error())
	}

	return v, nil
}

func parseValue(dec *json.Decoder, b *heap.Builder, opts Options) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	return pushToken(dec, b, tok, opts)
}

func pushToken(dec *json.Decoder, b *heap.Builder, tok json.Token, opts Options) error {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			if err := b.BeginObject(); err != nil {
				return err
			}

			return parseObjectBody(dec, b, opts)
		case '[':
			if err := b.BeginArray(); err != nil {
				return err
			}

			return parseArrayBody(dec, b, opts)
		default:
			return errs.Parse("json.pushToken", "unexpected closing delimiter")
		}
	case json.Number:
		return b.Scalar(numberValue(t))
	case string:
		return b.Scalar(heap.NewString(t))
	case bool:
		return b.Scalar(heap.NewBoolean(t))
	case nil:
		return b.Scalar(heap.NewNull())
	default:
		return errs.Parse("json.pushToken", "unsupported token type")
	}
}

func parseObjectBody(dec *json.Decoder, b *heap.Builder, opts Options) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errs.Parse("json.parseObjectBody", "object key is not a string")
		}
		if err := b.Key(key); err != nil {
			return err
		}
		if err := parseValue(dec, b, opts); err != nil {
			return err
		}
	}

	// consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return err
	}

	return b.EndObject()
}

func parseArrayBody(dec *json.Decoder, b *heap.Builder, opts Options) error {
	for dec.More() {
		if err := parseValue(dec, b, opts); err != nil {
			return err
		}
	}

	// consume the closing ']'
	if _, err := dec.Token(); err != nil {
		return err
	}

	return b.EndArray()
}

func numberValue(n json.Number) heap.Value {
	switch n {
	case nanSentinel:
		return heap.NewDecimal(math.NaN())
	case infSentinel:
		return heap.NewDecimal(math.Inf(1))
	case negInfSentinel:
		return heap.NewDecimal(math.Inf(-1))
	}

	if i, err := n.Int64(); err == nil {
		return heap.NewInteger(i)
	}
	f, _ := n.Float64()

	return heap.NewDecimal(f)
}

// Sentinel numeric literals substituted in for the bare NaN/Infinity/
// -Infinity identifiers a permissive parse accepts, since encoding/json's
// decoder only tokenizes standard JSON number grammar.
const (
	nanSentinel    json.Number = "9.0009e999"
	infSentinel    json.Number = "9.0019e999"
	negInfSentinel json.Number = "-9.0019e999"
)

// substituteNaNInfinity rewrites bare NaN/Infinity/-Infinity identifiers
// outside of string literals into the sentinel numeric tokens above, so
// the standard decoder's strict number grammar can still tokenize them;
// numberValue recognizes the sentinels and maps them back to the real
// non-finite values.
func substituteNaNInfinity(data []byte) []byte {
	var out bytes.Buffer
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}

			continue
		}

		switch {
		case c == '"':
			inString = true
			out.WriteByte(c)
		case matchesAt(data, i, "-Infinity"):
			out.WriteString(string(negInfSentinel))
			i += len("-Infinity") - 1
		case matchesAt(data, i, "Infinity"):
			out.WriteString(string(infSentinel))
			i += len("Infinity") - 1
		case matchesAt(data, i, "NaN"):
			out.WriteString(string(nanSentinel))
			i += len("NaN") - 1
		default:
			out.WriteByte(c)
		}
	}

	return out.Bytes()
}

func matchesAt(data []byte, i int, lit string) bool {
	if i+len(lit) > len(data) {
		return false
	}

	return string(data[i:i+len(lit)]) == lit
}

// Marshal serializes a heap.Value tree as JSON text.
func Marshal(v heap.Value, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v, opts); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeValue(w io.Writer, v heap.Value, opts Options) error {
	switch {
	case v.IsObject():
		return writeObject(w, v, opts)
	case v.IsArray():
		return writeArray(w, v, opts)
	case v.IsStr():
		s, _ := v.Str()
		b, _ := json.Marshal(s)
		_, err := w.Write(b)

		return err
	case v.IsInteger():
		n, _ := v.Integer()
		_, err := io.WriteString(w, strconv.FormatInt(n, 10))

		return err
	case v.IsDecimal():
		f, _ := v.Decimal()

		return writeDecimal(w, f, opts)
	case v.IsBoolean():
		b, _ := v.Boolean()
		_, err := io.WriteString(w, strconv.FormatBool(b))

		return err
	case v.IsNull():
		_, err := io.WriteString(w, "null")

		return err
	default:
		return errs.Type("json.writeValue", "", -1, "unknown value kind")
	}
}

func writeDecimal(w io.Writer, f float64, opts Options) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if opts.EmitNaNInfinity {
			switch {
			case math.IsNaN(f):
				_, err := io.WriteString(w, "NaN")

				return err
			case math.IsInf(f, 1):
				_, err := io.WriteString(w, "Infinity")

				return err
			default:
				_, err := io.WriteString(w, "-Infinity")

				return err
			}
		}
		// Strict JSON has no representation for NaN/Infinity; fall back to
		// null rather than emitting invalid JSON.
		_, err := io.WriteString(w, "null")

		return err
	}

	_, err := io.WriteString(w, strconv.FormatFloat(f, 'g', -1, 64))

	return err
}

func writeObject(w io.Writer, v heap.Value, opts Options) error {
	obj, err := v.Object()
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}

	for i := 0; i < obj.Len(); i++ {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}

		key, val, atErr := obj.At(i)
		if atErr != nil {
			return atErr
		}

		keyBytes, _ := json.Marshal(key)
		if _, err := w.Write(keyBytes); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ":"); err != nil {
			return err
		}
		if err := writeValue(w, val, opts); err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, "}")

	return err
}

func writeArray(w io.Writer, v heap.Value, opts Options) error {
	arr, err := v.Array()
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}

	for i := 0; i < arr.Len(); i++ {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}

		val, idxErr := arr.Index(i)
		if idxErr != nil {
			return idxErr
		}
		if err := writeValue(w, val, opts); err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, "]")

	return err
}
