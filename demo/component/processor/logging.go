// Package processor holds a post-processor discovered like any component.
package processor

import (
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/scan"
)

// Logging logs every bean passing through the container.
type Logging struct {
	scan.Component `component:"loggingProcessor"`
}

func (*Logging) BeforeInit(bean any, name string) any {
	log.WithField("bean", name).Debug("before init")
	return bean
}

func (*Logging) AfterInit(bean any, name string) any {
	log.WithField("bean", name).Info("after init")
	return bean
}

func init() {
	scan.Register((*Logging)(nil))
}
