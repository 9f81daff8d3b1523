package scan

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Component marks a struct as a managed component. Embed it anonymously and
// put the component and scope tags on the embedded field.
//
// The padding byte keeps every component non-zero-size, so each allocation
// of a prototype gets its own address.
type Component struct{ _ byte }

var componentType = reflect.TypeOf(Component{})

// Mode selects how an injection point is resolved.
type Mode int

const (
	// ByType resolves the field by its declared type.
	ByType Mode = iota
	// ByName resolves the field by bean name.
	ByName
)

func (m Mode) String() string {
	if m == ByName {
		return "byName"
	}
	return "byType"
}

// InjectionPoint describes one field that asks for a dependency.
type InjectionPoint struct {
	Index  int          // field index in the struct
	Field  string       // Go field name
	Type   reflect.Type // declared field type
	Mode   Mode
	Target string // bean name, ByName only
}

// Metadata is what a component declares about itself. Empty Name and Scope
// mean "use the default".
type Metadata struct {
	Name   string
	Scope  string
	Fields []InjectionPoint
}

// Describe reads the component metadata of struct type t. ok is false when
// t does not embed the Component marker.
func Describe(t reflect.Type) (meta Metadata, ok bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return Metadata{}, false
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		if f.Anonymous && f.Type == componentType {
			ok = true
			meta.Name = f.Tag.Get("component")
			meta.Scope = f.Tag.Get("scope")
			continue
		}

		if v, has := f.Tag.Lookup("autowired"); has && v != "false" {
			meta.Fields = append(meta.Fields, InjectionPoint{
				Index: i,
				Field: f.Name,
				Type:  f.Type,
				Mode:  ByType,
			})
			continue
		}

		if v, has := f.Tag.Lookup("resource"); has {
			if v == "" {
				v = Uncapitalize(f.Name)
			}
			meta.Fields = append(meta.Fields, InjectionPoint{
				Index:  i,
				Field:  f.Name,
				Type:   f.Type,
				Mode:   ByName,
				Target: v,
			})
		}
	}
	if !ok {
		return Metadata{}, false
	}
	return meta, true
}

// DefaultName is the bean name used when a component does not declare one:
// the simple type name with its first letter lower-cased.
func DefaultName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return Uncapitalize(t.Name())
}

// Uncapitalize lower-cases the first letter of s and leaves the rest alone.
func Uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
