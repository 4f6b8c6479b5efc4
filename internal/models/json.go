package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON document column types. Problems keep their tags, examples, testcases
// and per-language code maps as JSON columns rather than separate tables.

type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) { return jsonValue(s) }
func (s *StringSlice) Scan(src interface{}) error  { return jsonScan(src, s) }

type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

type ExampleList []Example

func (e ExampleList) Value() (driver.Value, error) { return jsonValue(e) }
func (e *ExampleList) Scan(src interface{}) error  { return jsonScan(src, e) }

type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type TestCaseList []TestCase

func (t TestCaseList) Value() (driver.Value, error) { return jsonValue(t) }
func (t *TestCaseList) Scan(src interface{}) error  { return jsonScan(src, t) }

// StringMap maps a language name to a source snippet.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) { return jsonValue(m) }
func (m *StringMap) Scan(src interface{}) error  { return jsonScan(src, m) }

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(src, dest interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
}
