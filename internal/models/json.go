package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonValue serializes v into a JSON column value. Nil slices are stored as [].
func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dest any, src any) error {
	if src == nil {
		return nil
	}
	switch s := src.(type) {
	case []byte:
		return json.Unmarshal(s, dest)
	case string:
		return json.Unmarshal([]byte(s), dest)
	default:
		return fmt.Errorf("unsupported JSON column source %T", src)
	}
}

type SectionList []Section

func (l SectionList) Value() (driver.Value, error) {
	if l == nil {
		l = SectionList{}
	}
	return jsonValue(l)
}

func (l *SectionList) Scan(src any) error { return jsonScan(l, src) }

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsonValue(l)
}

func (l *StringList) Scan(src any) error { return jsonScan(l, src) }

type CommentList []Comment

func (l CommentList) Value() (driver.Value, error) {
	if l == nil {
		l = CommentList{}
	}
	return jsonValue(l)
}

func (l *CommentList) Scan(src any) error { return jsonScan(l, src) }

type AuditEntryList []AuditEntry

func (l AuditEntryList) Value() (driver.Value, error) {
	if l == nil {
		l = AuditEntryList{}
	}
	return jsonValue(l)
}

func (l *AuditEntryList) Scan(src any) error { return jsonScan(l, src) }

type DocumentList []VendorDocument

func (l DocumentList) Value() (driver.Value, error) {
	if l == nil {
		l = DocumentList{}
	}
	return jsonValue(l)
}

func (l *DocumentList) Scan(src any) error { return jsonScan(l, src) }
