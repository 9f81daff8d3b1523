package aop

import (
	"reflect"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Rule applies one aspect to one bean.
type Rule struct {
	Aspect  string
	Bean    string
	Methods []string
}

type binding struct {
	aspect     Aspect
	dispatcher *Dispatcher
}

// Weaver substitutes proxies for beans in AfterInit. Rules for the same bean
// are applied in the order given, so the last one is outermost.
type Weaver struct {
	bindings map[string][]binding
	rules    []Rule
}

// NewWeaver resolves every rule against reg, or Default when reg is nil.
func NewWeaver(reg *Registry, rules ...Rule) (*Weaver, error) {
	if reg == nil {
		reg = Default
	}
	w := &Weaver{bindings: make(map[string][]binding)}
	for i, r := range rules {
		if r.Aspect == "" || r.Bean == "" {
			return nil, errors.Wrapf(ErrInvalidRule, "rule %d needs both aspect and bean", i)
		}
		a, ok := reg.Lookup(r.Aspect)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownAspect, "rule %d: %q (registered: %v)", i, r.Aspect, reg.Names())
		}
		w.bindings[r.Bean] = append(w.bindings[r.Bean], binding{
			aspect:     a,
			dispatcher: NewDispatcher(r.Bean, a.Advice, r.Methods...),
		})
		w.rules = append(w.rules, r)
	}
	return w, nil
}

// Rules returns the rules the weaver was built with.
func (w *Weaver) Rules() []Rule {
	out := make([]Rule, len(w.rules))
	copy(out, w.rules)
	return out
}

func (w *Weaver) BeforeInit(bean any, _ string) any { return bean }

// AfterInit wraps bean in the proxy of every aspect bound to name. A target
// the proxy factory rejects is left as it is.
func (w *Weaver) AfterInit(bean any, name string) any {
	for _, b := range w.bindings[name] {
		proxy, ok := b.aspect.Proxy(bean, b.dispatcher)
		if !ok {
			log.WithFields(log.Fields{
				"bean":   name,
				"aspect": b.aspect.Name,
				"type":   reflect.TypeOf(bean).String(),
			}).Warn("aspect does not apply to bean, left unproxied")
			continue
		}
		log.WithFields(log.Fields{
			"bean":   name,
			"aspect": b.aspect.Name,
		}).Debug("bean proxied")
		bean = proxy
	}
	return bean
}
