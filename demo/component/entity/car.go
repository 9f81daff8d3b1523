// Package entity holds sample components with lifecycle callbacks.
package entity

import (
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/scan"
)

// Car is initialised by the container once its fields are set.
type Car struct {
	scan.Component

	initialized bool
}

func (c *Car) AfterPropertiesSet() error {
	c.initialized = true
	log.WithField("bean", "car").Info("car initialised")
	return nil
}

// Initialized reports whether AfterPropertiesSet ran.
func (c *Car) Initialized() bool { return c.initialized }

func init() {
	scan.Register((*Car)(nil))
}
