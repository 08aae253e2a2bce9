package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Field names of the book payload
const (
	FieldISBN      = "isbn"
	FieldAmazonURL = "amazon_url"
	FieldAuthor    = "author"
	FieldLanguage  = "language"
	FieldPages     = "pages"
	FieldPublisher = "publisher"
	FieldTitle     = "title"
	FieldYear      = "year"
)

// Document is a decoded JSON object before validation.
// Numbers are kept as json.Number so integer checks are exact.
type Document map[string]any

// Mode chọn bộ rule: create cần đủ field, update cho phép subset
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInteger
)

type field struct {
	name  string
	kind  fieldKind
	key   bool // immutable after create
	exact bool // không cho phép whitespace đầu/cuối
	rules []validation.Rule
}

var httpScheme = regexp.MustCompile(`^https?://`)

// bookSchema order is the order validation messages are reported in
var bookSchema = []field{
	{name: FieldISBN, kind: kindString, key: true, exact: true, rules: []validation.Rule{validation.Required, validation.Length(1, 32)}},
	{name: FieldAmazonURL, kind: kindString, exact: true, rules: []validation.Rule{
		validation.Required,
		is.URL,
		validation.Match(httpScheme).Error("must start with http:// or https://"),
	}},
	{name: FieldAuthor, kind: kindString, rules: []validation.Rule{validation.Required}},
	{name: FieldLanguage, kind: kindString, rules: []validation.Rule{validation.Required}},
	// ozzo threshold rules bỏ qua zero value nên cần Required để chặn pages = 0
	{name: FieldPages, kind: kindInteger, rules: []validation.Rule{
		validation.Required.Error("must be no less than 1"),
		validation.Min(1),
	}},
	{name: FieldPublisher, kind: kindString, rules: []validation.Rule{validation.Required}},
	{name: FieldTitle, kind: kindString, rules: []validation.Rule{validation.Required}},
	{name: FieldYear, kind: kindInteger},
}

var errNotJSONObject = &ValidationError{Messages: []string{"request body must be a JSON object"}}

// DecodeDocument parse request body thành Document.
// Body rỗng, không phải object hoặc có dữ liệu thừa sau object đều là ValidationError.
func DecodeDocument(raw []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil || doc == nil {
		return nil, errNotJSONObject
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errNotJSONObject
	}

	return doc, nil
}

// check trả về message lỗi đầu tiên của value, "" nếu hợp lệ
func (f field) check(value any) string {
	switch f.kind {
	case kindString:
		s, ok := value.(string)
		if !ok {
			return f.name + " must be a string"
		}
		// isbn nằm trong path/cache key, url phải dùng được nguyên văn
		if f.exact && s != strings.TrimSpace(s) {
			return f.name + " must not have leading or trailing whitespace"
		}
		if err := validation.Validate(strings.TrimSpace(s), f.rules...); err != nil {
			return f.name + " " + err.Error()
		}
	case kindInteger:
		n, ok := toInt(value)
		if !ok {
			return f.name + " must be an integer"
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return f.name + " is out of range"
		}
		if err := validation.Validate(int(n), f.rules...); err != nil {
			return f.name + " " + err.Error()
		}
	}
	return ""
}

// toInt chỉ nhận số nguyên thật sự, "2023" (string) không được coerce
func toInt(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	}
	return 0, false
}
