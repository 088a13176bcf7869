// Package validate implements struct-tag validation for request input.
//
// Rules are comma-separated in the `validate` tag:
//
//	type Input struct {
//	    Name  string `json:"name"  validate:"required,alpha_dash,min=2,max=100"`
//	    Email string `json:"email" validate:"required,email"`
//	    Age   int    `json:"age"   validate:"gte=18,lte=120"`
//	    Role  string `json:"role"  validate:"required,in=admin,user"`
//	    Site  string `json:"site"  validate:"nullable,url"`
//	}
//
// Supported rules: required, nullable, email, url, uuid, boolean, numeric,
// integer, alpha, alpha_num, alpha_dash, min=N, max=N, size=N, gte=N, lte=N,
// between=a,b, in=..., not_in=..., regex=pattern, confirmed.
//
// `nullable` skips the remaining rules when the field is empty. `in` and
// `not_in` consume every remaining segment, so listed values may contain
// commas-free strings only.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Struct validates every exported field of v carrying a `validate` tag and
// returns fieldName → message. An empty map means valid. Field names come
// from the json tag when present.
func Struct(v any) map[string]string {
	errs := map[string]string{}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := fieldName(field)
		value := rv.Field(i)
		rules := parseRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule.key == "nullable" {
				continue
			}
			if msg := apply(rule, name, value, rv); msg != "" {
				errs[name] = msg
				break // report the first failing rule per field
			}
		}
	}
	return errs
}

type rule struct {
	key   string
	param string
}

// parseRules splits the tag, gluing trailing segments back onto list-valued
// rules (in=, not_in=, between=) whose params themselves contain commas.
func parseRules(tag string) []rule {
	parts := strings.Split(tag, ",")
	var out []rule
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key, param, _ := strings.Cut(p, "=")
		if len(out) > 0 && !strings.Contains(p, "=") {
			switch out[len(out)-1].key {
			case "in", "not_in", "between":
				out[len(out)-1].param += "," + p
				continue
			}
		}
		out = append(out, rule{key: key, param: param})
	}
	return out
}

func hasRule(rules []rule, key string) bool {
	for _, r := range rules {
		if r.key == key {
			return true
		}
	}
	return false
}

func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func apply(r rule, field string, v reflect.Value, parent reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())

	switch r.key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if _, err := mail.ParseAddress(raw); err != nil {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "url":
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Sprintf("The %s field must be a valid URL.", field)
		}

	case "uuid":
		if !uuidRe.MatchString(raw) {
			return fmt.Sprintf("The %s field must be a valid UUID.", field)
		}

	case "boolean":
		switch strings.ToLower(raw) {
		case "true", "false", "1", "0":
		default:
			return fmt.Sprintf("The %s field must be a boolean.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "alpha":
		if !lettersOnly(raw, false, false) {
			return fmt.Sprintf("The %s field may only contain letters.", field)
		}

	case "alpha_num":
		if !lettersOnly(raw, true, false) {
			return fmt.Sprintf("The %s field may only contain letters and numbers.", field)
		}

	case "alpha_dash":
		if !lettersOnly(raw, true, true) {
			return fmt.Sprintf("The %s field may only contain letters, numbers, dashes and underscores.", field)
		}

	case "min":
		if size(v) < mustFloat(r.param) {
			return fmt.Sprintf("The %s field must be at least %s.", field, r.param)
		}

	case "max":
		if size(v) > mustFloat(r.param) {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, r.param)
		}

	case "size":
		if size(v) != mustFloat(r.param) {
			return fmt.Sprintf("The %s field must be exactly %s.", field, r.param)
		}

	case "gte":
		if num(v) < mustFloat(r.param) {
			return fmt.Sprintf("The %s field must be at least %s.", field, r.param)
		}

	case "lte":
		if num(v) > mustFloat(r.param) {
			return fmt.Sprintf("The %s field may not be greater than %s.", field, r.param)
		}

	case "between":
		lo, hi, ok := strings.Cut(r.param, ",")
		if ok {
			s := size(v)
			if s < mustFloat(lo) || s > mustFloat(hi) {
				return fmt.Sprintf("The %s field must be between %s and %s.", field, lo, hi)
			}
		}

	case "in":
		if !contains(strings.Split(r.param, ","), raw) {
			return fmt.Sprintf("The selected %s is invalid.", field)
		}

	case "not_in":
		if contains(strings.Split(r.param, ","), raw) {
			return fmt.Sprintf("The selected %s is invalid.", field)
		}

	case "regex":
		re, err := regexp.Compile(r.param)
		if err != nil || !re.MatchString(raw) {
			return fmt.Sprintf("The %s field format is invalid.", field)
		}

	case "confirmed":
		if conf := confirmation(parent, field); conf != raw {
			return fmt.Sprintf("The %s confirmation does not match.", field)
		}
	}
	return ""
}

// confirmation finds the value of the sibling field whose json name is
// "<field>_confirmation".
func confirmation(parent reflect.Value, field string) string {
	rt := parent.Type()
	want := field + "_confirmation"
	for i := 0; i < rt.NumField(); i++ {
		if fieldName(rt.Field(i)) == want {
			return fmt.Sprintf("%v", parent.Field(i).Interface())
		}
	}
	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return v.IsZero()
}

// size is the comparable magnitude: string/slice length, numeric value.
func size(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.String:
		return float64(len([]rune(v.String())))
	case reflect.Slice, reflect.Map, reflect.Array:
		return float64(v.Len())
	}
	return num(v)
}

func num(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		f, _ := strconv.ParseFloat(v.String(), 64)
		return f
	}
	return 0
}

func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func lettersOnly(s string, digits, dashes bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
		case digits && unicode.IsDigit(r):
		case dashes && (r == '-' || r == '_'):
		default:
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if strings.TrimSpace(item) == s {
			return true
		}
	}
	return false
}
