package table

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"sigs.k8s.io/yaml"
)

var (
	FuncMap = map[string]any{
		"ago":         FormatCreated,
		"json":        FormatJSON,
		"jsoncompact": FormatJSONCompact,
		"yaml":        FormatYAML,
		"first":       FormatFirst,
		"toJson":      ToJSON,
		"boolToStar":  BoolToStar,
		"array":       ToArray,
		"arrayFirst":  ToArrayFirst,
		"pointer":     Pointer,
		"fullID":      FormatID,
		"name":        Name,
		"trunc":       Trunc,
		"size":        FormatSize,
		"alias":       Noop,
	}

	digestPattern = regexp.MustCompile("^[a-f0-9]{32,}$")
)

// Name pulls the Name field out of any of the API structs.
func Name(obj any) (string, error) {
	if s, ok := stringField(obj, "Name"); ok {
		return s, nil
	}
	return "", fmt.Errorf("invalid obj %T", obj)
}

// FormatID prefers the stored file name over the short name, so quiet
// output can feed straight back into other commands.
func FormatID(obj any) (string, error) {
	if s, ok := stringField(obj, "FileName"); ok && s != "" {
		return s, nil
	}
	if s, ok := stringField(obj, "Name"); ok {
		return s, nil
	}
	if s, ok := stringField(obj, "Path"); ok {
		return s, nil
	}
	return "", fmt.Errorf("invalid obj %T", obj)
}

func stringField(obj any, name string) (string, bool) {
	v := reflect.Indirect(reflect.ValueOf(obj))
	if v.Kind() != reflect.Struct {
		return "", false
	}
	f := v.FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.String {
		return "", false
	}
	return f.String(), true
}

func Noop(obj any) string {
	return ""
}

func Trunc(s string) string {
	if digestPattern.MatchString(s) && len(s) > 12 {
		return s[:12]
	}
	return s
}

func ToArray(s []string) (string, error) {
	return strings.Join(s, ", "), nil
}

func ToArrayFirst(s []string) (string, error) {
	if len(s) > 0 {
		return s[0], nil
	}
	return "", nil
}

func Pointer(data any) string {
	if reflect.ValueOf(data).IsNil() {
		return ""
	}
	return fmt.Sprint(data)
}

func FormatCreated(data time.Time) string {
	if data.IsZero() {
		return ""
	}
	return humanize.Time(data)
}

func FormatSize(size int64) string {
	return humanize.IBytes(uint64(size))
}

func FormatJSON(data any) (string, error) {
	bytes, err := json.MarshalIndent(data, "", "    ")
	return string(bytes) + "\n", err
}

func FormatJSONCompact(data any) (string, error) {
	bytes, err := json.Marshal(data)
	return string(bytes) + "\n", err
}

func FormatYAML(data any) (string, error) {
	bytes, err := yaml.Marshal(data)
	return string(bytes) + "\n", err
}

func FormatFirst(data, data2 any) (string, error) {
	str := toString(data)
	if str != "" {
		return str, nil
	}

	str = toString(data2)
	if str != "" {
		return str, nil
	}

	return "", nil
}

func toString(data any) string {
	if data == nil {
		return ""
	}
	return fmt.Sprint(data)
}

func ToJSON(data any) (map[string]any, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	result := map[string]any{}
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func BoolToStar(obj any) (string, error) {
	if b, ok := obj.(bool); ok && b {
		return "*", nil
	}
	if b, ok := obj.(*bool); ok && b != nil && *b {
		return "*", nil
	}
	return "", nil
}
