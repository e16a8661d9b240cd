package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/mo"
)

type ArgType int

const (
	ArgString ArgType = iota
	ArgInteger
	ArgNumber
	ArgBoolean
	ArgUser
)

func (t ArgType) String() string {
	switch t {
	case ArgString:
		return "text"
	case ArgInteger:
		return "whole number"
	case ArgNumber:
		return "number"
	case ArgBoolean:
		return "true/false"
	case ArgUser:
		return "user"
	default:
		return "unknown"
	}
}

// Param declares one argument of a command.
type Param struct {
	Name        string
	Description string
	Type        ArgType
	Required    bool
	// Choices restricts string arguments to a closed, lower-case vocabulary.
	Choices []string
	// Verbatim keeps surrounding and repeated whitespace, for payloads such as text to hash.
	Verbatim  bool
	MinLength int
	MaxLength int
	Min       mo.Option[float64]
	Max       mo.Option[float64]
}

// CommandSpec is the registration record of a command: its name, help text and argument schema.
type CommandSpec struct {
	Name        string
	Description string
	Params      []Param
}

// Args holds typed argument values after binding.
type Args struct {
	values map[string]any
}

func NewArgs(values map[string]any) Args {
	return Args{values: values}
}

func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

func (a Args) String(name string) (string, bool) {
	v, ok := a.values[name].(string)
	return v, ok
}

func (a Args) Int(name string) (int, bool) {
	v, ok := a.values[name].(int)
	return v, ok
}

func (a Args) Float(name string) (float64, bool) {
	v, ok := a.values[name].(float64)
	return v, ok
}

func (a Args) Bool(name string) (bool, bool) {
	v, ok := a.values[name].(bool)
	return v, ok
}

func (a Args) User(name string) (User, bool) {
	v, ok := a.values[name].(User)
	return v, ok
}

// Bind validates a raw argument bag against the schema and returns typed values.
// Nothing is partially bound: the first problem is returned as a ValidationError.
func (s CommandSpec) Bind(raw map[string]any) (Args, error) {
	values := make(map[string]any, len(s.Params))

	known := make(map[string]struct{}, len(s.Params))
	for _, p := range s.Params {
		known[p.Name] = struct{}{}
	}

	for name := range raw {
		if _, ok := known[name]; !ok {
			return Args{}, NewValidationError("/%s doesn't take an argument called %q", s.Name, name)
		}
	}

	for _, p := range s.Params {
		rv, present := raw[p.Name]
		if present {
			if str, ok := rv.(string); ok && strings.TrimSpace(str) == "" && p.Type != ArgString {
				present = false
			}
		}

		if !present || rv == nil {
			if p.Required {
				return Args{}, NewValidationError("/%s needs a value for %q (%s)", s.Name, p.Name, p.Type)
			}
			continue
		}

		v, err := p.coerce(rv)
		if err != nil {
			return Args{}, err
		}

		if str, ok := v.(string); ok && str == "" {
			if p.Required {
				return Args{}, NewValidationError("/%s needs a value for %q (%s)", s.Name, p.Name, p.Type)
			}
			continue
		}

		values[p.Name] = v
	}

	return NewArgs(values), nil
}

func (p Param) coerce(raw any) (any, error) {
	switch p.Type {
	case ArgString:
		return p.coerceString(raw)
	case ArgInteger:
		n, err := toInt(raw)
		if err != nil {
			return nil, NewValidationError("%q must be a whole number", p.Name)
		}
		if err := p.checkRange(float64(n)); err != nil {
			return nil, err
		}
		return n, nil
	case ArgNumber:
		f, err := toFloat(raw)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, NewValidationError("%q must be a number", p.Name)
		}
		if err := p.checkRange(f); err != nil {
			return nil, err
		}
		return f, nil
	case ArgBoolean:
		b, err := toBool(raw)
		if err != nil {
			return nil, NewValidationError("%q must be true or false", p.Name)
		}
		return b, nil
	case ArgUser:
		u, err := toUser(raw)
		if err != nil {
			return nil, NewValidationError("%q must be a user mention", p.Name)
		}
		return u, nil
	default:
		return nil, fmt.Errorf("unsupported argument type %d", p.Type)
	}
}

func (p Param) coerceString(raw any) (any, error) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}

	if strings.TrimSpace(s) == "" {
		return "", nil
	}

	if !p.Verbatim {
		s = strings.TrimSpace(s)
	}

	if len(p.Choices) > 0 {
		lower := strings.ToLower(s)
		for _, c := range p.Choices {
			if lower == c {
				return c, nil
			}
		}
		return nil, NewValidationError("%q must be one of: %s", p.Name, strings.Join(p.Choices, ", "))
	}

	length := utf8.RuneCountInString(s)
	if p.MinLength > 0 && length < p.MinLength {
		return nil, NewValidationError("%q must be at least %d characters long", p.Name, p.MinLength)
	}

	if p.MaxLength > 0 && length > p.MaxLength {
		return nil, NewValidationError("%q must be at most %d characters long", p.Name, p.MaxLength)
	}

	return s, nil
}

func (p Param) checkRange(f float64) error {
	if lo, ok := p.Min.Get(); ok && f < lo {
		return NewValidationError("%q must be at least %s", p.Name, strconv.FormatFloat(lo, 'f', -1, 64))
	}

	if hi, ok := p.Max.Get(); ok && f > hi {
		return NewValidationError("%q must be at most %s", p.Name, strconv.FormatFloat(hi, 'f', -1, 64))
	}

	return nil
}

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not integral: %v", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		return 0, fmt.Errorf("unsupported integer value %T", raw)
	}
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("unsupported number value %T", raw)
	}
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1", "on":
			return true, nil
		case "false", "no", "n", "0", "off":
			return false, nil
		}
	}

	return false, fmt.Errorf("unsupported boolean value %v", raw)
}

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

func toUser(raw any) (User, error) {
	switch v := raw.(type) {
	case User:
		if v.ID == "" {
			return User{}, errors.New("user without id")
		}
		return v, nil
	case *User:
		if v == nil || v.ID == "" {
			return User{}, errors.New("user without id")
		}
		return *v, nil
	case string:
		s := strings.TrimSpace(v)
		if m := mentionPattern.FindStringSubmatch(s); m != nil {
			return User{ID: m[1]}, nil
		}
		if strings.HasPrefix(s, "@") && len(s) > 1 {
			name := strings.TrimPrefix(s, "@")
			return User{ID: strings.ToLower(name), Username: name}, nil
		}
		if _, err := strconv.ParseUint(s, 10, 64); err == nil {
			return User{ID: s}, nil
		}
	}

	return User{}, fmt.Errorf("unsupported user value %v", raw)
}
