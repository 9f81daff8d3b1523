package container

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/scan"
)

// create produces a fully initialised bean for d. The steps always run in
// this order:
//
//  1. construct the zero value of *d.Type
//  2. bind autowired (by type) and resource (by name) fields
//  3. run BeforeInit on every processor, in registry order
//  4. call AfterPropertiesSet if the working instance is an InitializingBean
//  5. run AfterInit on every processor, in registry order
//
// A processor returning nil leaves the working instance unchanged; anything
// else replaces it. Panics are recovered into an *InstantiationError.
func (c *Container) create(d *Descriptor) (bean any, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = errors.Errorf("%v", r)
			}
			bean = nil
			err = &InstantiationError{Name: d.Name, Type: d.Type, Err: errors.WithMessage(cause, "panic")}
		}
	}()

	log := c.log.WithField("bean", d.Name)

	if d.Type == nil || d.Type.Kind() != reflect.Struct {
		return nil, &InstantiationError{Name: d.Name, Type: d.Type, Err: errors.New("not a struct type")}
	}
	v := reflect.New(d.Type)

	if err := c.inject(d, v.Elem(), log); err != nil {
		return nil, err
	}

	bean = v.Interface()
	for _, p := range c.processors {
		if next := p.BeforeInit(bean, d.Name); next != nil {
			bean = next
		}
	}

	if ib, ok := bean.(InitializingBean); ok {
		log.Debug("calling AfterPropertiesSet")
		if err := ib.AfterPropertiesSet(); err != nil {
			return nil, &LifecycleError{Name: d.Name, Err: err}
		}
	}

	for _, p := range c.processors {
		if next := p.AfterInit(bean, d.Name); next != nil {
			bean = next
		}
	}

	log.WithField("type", reflect.TypeOf(bean).String()).Debug("bean created")
	return bean, nil
}

// inject binds every injection point of d into the struct value v.
//
// A by-type field with no candidate, or a by-name field whose target does
// not exist, is left at its zero value with a warning unless the container
// runs with StrictInjection. A candidate of the wrong type is always an error.
func (c *Container) inject(d *Descriptor, v reflect.Value, log *logrus.Entry) error {
	for _, ip := range d.Fields {
		fv := v.Field(ip.Index)
		if !fv.CanSet() {
			// unexported field
			fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
		}

		var (
			dep    any
			found  bool
			err    error
			target string
		)
		switch ip.Mode {
		case scan.ByName:
			target = ip.Target
			dep, err = c.GetBean(ip.Target)
			var nf *NotFoundError
			if errors.As(err, &nf) && nf.Name == ip.Target {
				err = nil
			} else {
				found = err == nil
			}
		default:
			target = string(KeyOf(ip.Type))
			dep, found, err = c.getBeanByType(ip.Type)
		}
		if err != nil {
			return errors.WithMessagef(err, "inject %s.%s", d.Name, ip.Field)
		}

		if !found {
			if c.cfg.StrictInjection {
				return &InjectionError{Bean: d.Name, Field: ip.Field, Target: target, Reason: "no candidate"}
			}
			log.WithFields(logrus.Fields{
				"field":  ip.Field,
				"mode":   ip.Mode,
				"target": target,
			}).Warn("no candidate for injection, field left unset")
			continue
		}

		dv := reflect.ValueOf(dep)
		if !dv.Type().AssignableTo(fv.Type()) {
			return &InjectionError{
				Bean:   d.Name,
				Field:  ip.Field,
				Target: target,
				Reason: dv.Type().String() + " is not assignable to " + fv.Type().String(),
			}
		}
		fv.Set(dv)
	}
	return nil
}
