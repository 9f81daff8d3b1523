// Package validation checks flat key/value settings against pipe-separated
// rule strings.
//
//	v := validation.Make(map[string]string{
//	    "scan.root":     cfg.Scan.Root,
//	    "app.log_level": cfg.App.LogLevel,
//	}, validation.Rules{
//	    "scan.root":     "required",
//	    "app.log_level": "required|in:trace,debug,info,warn,error",
//	})
//	if v.Fails() {
//	    return v.Errors()
//	}
//
// Rules run left to right and stop at the first failure for a field.
// Available rules:
//
//   - required: present and not blank
//   - integer, boolean
//   - in:a,b,c
//   - gte:n and lte:n (numeric)
//   - identifier: a letter or underscore followed by letters, digits, underscores
//   - regex:pattern
//   - sometimes: skip the remaining rules when the value is empty
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors maps each failing key to its messages. It is an error so a failed
// validation can be returned and wrapped directly.
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has reports whether any rule failed.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first message for field.
func (e *Errors) First(field string) string {
	if msgs := e.Bag[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the failing keys in sorted order.
func (e *Errors) Fields() []string {
	out := make([]string, 0, len(e.Bag))
	for f := range e.Bag {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Error joins every message, ordered by key.
func (e *Errors) Error() string {
	var msgs []string
	for _, f := range e.Fields() {
		msgs = append(msgs, e.Bag[f]...)
	}
	return strings.Join(msgs, " ")
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules maps a key to its pipe-separated rules.
type Rules map[string]string

// Validator validates a flat map of settings.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make returns a validator for data.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{data: data, rules: rules, errors: &Errors{}}
}

// Fails runs the rules once and reports whether any failed.
func (v *Validator) Fails() bool {
	if !v.ran {
		v.validate()
		v.ran = true
	}
	return v.errors.Has()
}

// Passes is the negation of Fails.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the error bag.
func (v *Validator) Errors() *Errors { return v.errors }

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (v *Validator) validate() {
	fields := make([]string, 0, len(v.rules))
	for f := range v.rules {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := v.data[field]
		for _, rule := range strings.Split(v.rules[field], "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			name, param, _ := strings.Cut(rule, ":")
			if !v.applyRule(field, value, name, param) {
				break
			}
		}
	}
}

// applyRule returns false when the rule fails or stops the chain.
func (v *Validator) applyRule(field, value, rule, param string) bool {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			v.errors.add(field, fmt.Sprintf("The %s field is required.", field))
			return false
		}

	case "sometimes":
		if value == "" {
			return false
		}

	case "integer":
		if _, err := strconv.Atoi(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be an integer.", field))
			return false
		}

	case "boolean":
		if _, err := strconv.ParseBool(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s field must be true or false.", field))
			return false
		}

	case "in":
		found := false
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				found = true
				break
			}
		}
		if !found {
			v.errors.add(field, fmt.Sprintf("The selected %s is invalid.", field))
			return false
		}

	case "gte", "lte":
		f, err := strconv.ParseFloat(value, 64)
		t, _ := strconv.ParseFloat(param, 64)
		if err != nil || (rule == "gte" && f < t) || (rule == "lte" && f > t) {
			cmp := "greater"
			if rule == "lte" {
				cmp = "less"
			}
			v.errors.add(field, fmt.Sprintf("The %s must be %s than or equal to %s.", field, cmp, param))
			return false
		}

	case "identifier":
		if !identifier.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s must be a valid identifier.", field))
			return false
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s format is invalid.", field))
			return false
		}
	}

	return true
}
