package container

import (
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/scan"
)

// BuildDefinitions turns discovered units into a DescriptorStore.
//
// Names default to scan.DefaultName, scopes to Singleton. An unknown scope
// aborts the whole pass with a *ConfigurationError. Two units resolving to
// the same name are not rejected: the later one wins and a warning is logged.
func BuildDefinitions(units []scan.Unit, log *logrus.Entry) (*DescriptorStore, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	store := NewDescriptorStore()

	for _, u := range units {
		d, err := describe(u)
		if err != nil {
			return nil, err
		}
		if prev, replaced := store.Put(d); replaced {
			log.WithFields(logrus.Fields{
				"bean":     d.Name,
				"previous": prev.Type.String(),
				"current":  d.Type.String(),
			}).Warn("duplicate bean name, later definition wins")
		}
		log.WithFields(logrus.Fields{
			"bean":  d.Name,
			"scope": d.Scope,
			"type":  d.Type.String(),
		}).Debug("bean definition registered")
	}
	return store, nil
}

func describe(u scan.Unit) (*Descriptor, error) {
	scope, ok := ParseScope(u.Meta.Scope)
	if !ok {
		return nil, &ConfigurationError{Type: u.Type, Scope: u.Meta.Scope}
	}

	name := u.Meta.Name
	if name == "" {
		name = scan.DefaultName(u.Type)
	}

	ptr := reflect.PointerTo(u.Type)
	return &Descriptor{
		Name:         name,
		Scope:        scope,
		Type:         u.Type,
		Key:          KeyOf(ptr),
		Fields:       u.Meta.Fields,
		Processor:    ptr.Implements(processorType),
		Initializing: ptr.Implements(initializingType),
	}, nil
}
