package model

import (
	"fmt"
	"sort"
)

// Validate kiểm tra doc theo bookSchema và trả về mọi vi phạm.
//   - create: đủ 8 field, đúng kiểu, không có field lạ
//   - update: field nào có mặt thì phải đúng kiểu; isbn và field lạ bị từ chối
//
// Thứ tự message: theo bookSchema, sau đó các field lạ theo alphabet.
func Validate(doc Document, mode Mode) []string {
	var messages []string

	known := make(map[string]struct{}, len(bookSchema))
	for _, f := range bookSchema {
		known[f.name] = struct{}{}

		value, present := doc[f.name]
		if f.key && mode == ModeUpdate {
			if present {
				messages = append(messages, fmt.Sprintf("%s cannot be updated", f.name))
			}
			continue
		}
		if !present {
			if mode == ModeCreate {
				messages = append(messages, fmt.Sprintf("%s is required", f.name))
			}
			continue
		}
		if msg := f.check(value); msg != "" {
			messages = append(messages, msg)
		}
	}

	var unknown []string
	for name := range doc {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		messages = append(messages, fmt.Sprintf("%s is not allowed", name))
	}

	return messages
}

// ParseCreate validate doc ở create mode và build Book
func ParseCreate(doc Document) (*Book, error) {
	if messages := Validate(doc, ModeCreate); len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	return &Book{
		ISBN:      *stringField(doc, FieldISBN),
		AmazonURL: *stringField(doc, FieldAmazonURL),
		Author:    *stringField(doc, FieldAuthor),
		Language:  *stringField(doc, FieldLanguage),
		Pages:     *intField(doc, FieldPages),
		Publisher: *stringField(doc, FieldPublisher),
		Title:     *stringField(doc, FieldTitle),
		Year:      *intField(doc, FieldYear),
	}, nil
}

// ParseUpdate validate doc ở update mode, chỉ các field có mặt được set
func ParseUpdate(doc Document) (*BookUpdate, error) {
	if messages := Validate(doc, ModeUpdate); len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	return &BookUpdate{
		AmazonURL: stringField(doc, FieldAmazonURL),
		Author:    stringField(doc, FieldAuthor),
		Language:  stringField(doc, FieldLanguage),
		Pages:     intField(doc, FieldPages),
		Publisher: stringField(doc, FieldPublisher),
		Title:     stringField(doc, FieldTitle),
		Year:      intField(doc, FieldYear),
	}, nil
}

// stringField/intField assume doc đã qua Validate
func stringField(doc Document, name string) *string {
	v, ok := doc[name].(string)
	if !ok {
		return nil
	}
	return &v
}

func intField(doc Document, name string) *int {
	value, present := doc[name]
	if !present {
		return nil
	}
	n, ok := toInt(value)
	if !ok {
		return nil
	}
	v := int(n)
	return &v
}
