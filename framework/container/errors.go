package container

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrConfiguration is returned when a component declares an unknown scope.
	// Construction aborts; no partial container is returned.
	ErrConfiguration = errors.New("container: configuration error")

	// ErrNotFound is returned by GetBean for names the container does not serve.
	ErrNotFound = errors.New("container: bean not found")

	// ErrInstantiation is returned when a bean cannot be constructed.
	ErrInstantiation = errors.New("container: instantiation failed")

	// ErrInjection is returned when a field cannot be bound. Unresolved
	// candidates only produce it in strict mode.
	ErrInjection = errors.New("container: injection failed")

	// ErrLifecycle is returned when AfterPropertiesSet fails.
	ErrLifecycle = errors.New("container: lifecycle callback failed")

	// ErrTypeMismatch is returned by Resolve when the bean is not a T.
	ErrTypeMismatch = errors.New("container: bean has unexpected type")
)

// ConfigurationError reports an unrecognised scope value on a component.
type ConfigurationError struct {
	Type  reflect.Type
	Scope string
}

func (e *ConfigurationError) Error() string {
	// Example: container: configuration error: unknown scope "foo" on dao.UserDAO
	return ErrConfiguration.Error() + ": unknown scope " + strconv.Quote(e.Scope) + " on " + e.Type.String()
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NotFoundError is returned when a bean name is absent from the container.
type NotFoundError struct{ Name string }

func (e *NotFoundError) Error() string {
	// Example: container: bean "doesNotExist" does not exist
	return "container: bean " + strconv.Quote(e.Name) + " does not exist"
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InstantiationError wraps any failure while producing a bean.
type InstantiationError struct {
	Name string
	Type reflect.Type
	Err  error
}

func (e *InstantiationError) Error() string {
	msg := "container: cannot create bean " + strconv.Quote(e.Name)
	if e.Type != nil {
		msg += " (" + e.Type.String() + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InstantiationError) Unwrap() error { return e.Err }

func (e *InstantiationError) Is(target error) bool { return target == ErrInstantiation }

// InjectionError reports a field that could not be bound.
type InjectionError struct {
	Bean   string
	Field  string
	Target string // bean name or type the field asked for
	Reason string
}

func (e *InjectionError) Error() string {
	// Example: container: injection failed: userService.userDAO (*dao.UserDAO): no candidate
	return ErrInjection.Error() + ": " + e.Bean + "." + e.Field + " (" + e.Target + "): " + e.Reason
}

func (e *InjectionError) Is(target error) bool { return target == ErrInjection }

// LifecycleError wraps an error returned by AfterPropertiesSet.
type LifecycleError struct {
	Name string
	Err  error
}

func (e *LifecycleError) Error() string {
	return ErrLifecycle.Error() + ": " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

func (e *LifecycleError) Unwrap() error { return e.Err }

func (e *LifecycleError) Is(target error) bool { return target == ErrLifecycle }
