// Package dao holds the data-access sample components.
package dao

import (
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/scan"
)

// UserDAO is a prototype: every bean that asks for one gets its own.
type UserDAO struct {
	scan.Component `component:"userDAO" scope:"prototype"`

	calls int
}

func (d *UserDAO) SayHi() string {
	d.calls++
	log.WithFields(log.Fields{"bean": "userDAO", "calls": d.calls}).Info("hi from UserDAO")
	return "hi from UserDAO"
}

// Calls returns how many times SayHi ran on this instance.
func (d *UserDAO) Calls() int { return d.calls }

func init() {
	scan.Register((*UserDAO)(nil))
}
