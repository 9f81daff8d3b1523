package container

import "reflect"

//go:generate mockgen -destination=mock_container/processor_mock.go -package=mock_container github.com/km-arc/beans/framework/container BeanPostProcessor,InitializingBean

// BeanPostProcessor is invoked around the initialisation of every bean the
// container builds. A non-nil result replaces the instance for the rest of
// the construction; returning nil keeps the current one.
//
// Components that implement it are collected into the extension registry,
// never cached as beans and never returned by GetBean.
type BeanPostProcessor interface {
	BeforeInit(bean any, name string) any
	AfterInit(bean any, name string) any
}

// BaseProcessor is an embeddable struct with identity hooks.
// Embed it and override only the hook you need.
//
//	type AuditProcessor struct{ container.BaseProcessor }
//	func (p *AuditProcessor) AfterInit(bean any, name string) any { ...; return bean }
type BaseProcessor struct{}

func (BaseProcessor) BeforeInit(bean any, _ string) any { return bean }
func (BaseProcessor) AfterInit(bean any, _ string) any  { return bean }

// InitializingBean is implemented by beans that need a callback once their
// fields are injected and the BeforeInit hooks have run.
type InitializingBean interface {
	AfterPropertiesSet() error
}

var (
	processorType    = reflect.TypeOf((*BeanPostProcessor)(nil)).Elem()
	initializingType = reflect.TypeOf((*InitializingBean)(nil)).Elem()
)
