// Package container provides a small reflection-based IoC (Inversion of
// Control) container.
//
// # Overview
//
// The container discovers component types below a scan root, turns each one
// into a Descriptor (name, scope, type), builds every singleton eagerly and
// serves beans by name. Beans are pointers to the component structs; their
// fields are injected by type or by name, and every bean passes through the
// registered BeanPostProcessors, which may replace it (see package aop).
//
// # Container Lifecycle
//
//  1. Register: component packages call scan.Register from init()
//  2. Create: c, err := container.New(container.Config{ScanRoot: root})
//     builds definitions, then post-processors, then eager singletons
//  3. Serve: c.GetBean(name) from any goroutine
//
// # Components
//
//	type UserDAO struct {
//	    scan.Component `component:"userDAO"`
//	}
//
//	type UserService struct {
//	    scan.Component `component:"userService"`
//
//	    userDAO *UserDAO `autowired:"true"`
//	}
//
//	func init() {
//	    scan.Register((*UserDAO)(nil))
//	    scan.Register((*UserService)(nil))
//	}
//
// # Scopes
//
//	// singleton (default): built once during New, same instance on every GetBean
//	scan.Component `scope:"singleton"`
//
//	// prototype: built on every GetBean, never cached
//	scan.Component `scope:"prototype"`
//
// Any other value makes New fail with ErrConfiguration.
//
// # Resolving
//
//	// Untyped
//	raw, err := c.GetBean("userService")
//
//	// Generic
//	svc, err := container.Resolve[*UserService](c, "userService")
//
// # Bean construction
//
// For every bean the container
//
//  1. allocates the zero value of the struct
//  2. injects `autowired` fields by exact type and `resource` fields by name
//  3. calls BeforeInit on each post-processor
//  4. calls AfterPropertiesSet when the bean is an InitializingBean
//  5. calls AfterInit on each post-processor
//
// # Post-processors
//
//	type AuditProcessor struct {
//	    scan.Component
//	    container.BaseProcessor
//	}
//
//	func (p *AuditProcessor) AfterInit(bean any, name string) any {
//	    log.Infof("%s ready", name)
//	    return bean
//	}
//
// Discovered processors run in discovery order, after any passed through
// WithProcessors. They are never served by GetBean.
//
// # Injection gaps
//
// A by-type field matching no bean, or a by-name field naming an unknown
// bean, is left at its zero value and logged. Config.StrictInjection turns
// both cases into ErrInjection.
package container
