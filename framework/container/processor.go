package container

import (
	"reflect"

	"github.com/sirupsen/logrus"
)

// CollectProcessors instantiates every descriptor whose type implements
// BeanPostProcessor, in store order. That order is the order in which the
// hooks run for every bean.
//
// Processors are built with their zero value: they get no field injection,
// no lifecycle callback and are not run through other processors.
func CollectProcessors(store *DescriptorStore, log *logrus.Entry) []BeanPostProcessor {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	var out []BeanPostProcessor
	for _, d := range store.All() {
		if !d.Processor {
			continue
		}
		p := reflect.New(d.Type).Interface().(BeanPostProcessor)
		out = append(out, p)
		log.WithFields(logrus.Fields{
			"bean":     d.Name,
			"position": len(out) - 1,
		}).Debug("post-processor registered")
	}
	return out
}
