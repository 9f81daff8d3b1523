// Package aspect holds the proxy-substitution sample: a SmartAnimal
// component and the aspect that logs around its advised methods.
package aspect

import (
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/aop"
	"github.com/km-arc/beans/framework/scan"
)

// AspectName is the name the smartAnimal aspect is registered under.
const AspectName = "smartAnimal"

// SmartAnimal is the shape the smartAnimal proxy knows how to wrap.
type SmartAnimal interface {
	GetSum(a, b float64) float64
	GetSub(a, b float64) float64
}

// SmartDog is the bean "smartDog".
type SmartDog struct {
	scan.Component
}

func (*SmartDog) GetSum(a, b float64) float64 {
	r := a + b
	log.WithField("result", r).Info("SmartDog.GetSum")
	return r
}

func (*SmartDog) GetSub(a, b float64) float64 {
	r := a - b
	log.WithField("result", r).Info("SmartDog.GetSub")
	return r
}

// ── Advice ────────────────────────────────────────────────────────────────────

// Logging is the advice of the smartAnimal aspect.
type Logging struct{}

func (Logging) Before(jp aop.JoinPoint) {
	log.WithFields(log.Fields{"bean": jp.Bean, "method": jp.Method, "args": jp.Args}).Info("before advice")
}

func (Logging) After(jp aop.JoinPoint) {
	log.WithFields(log.Fields{"bean": jp.Bean, "method": jp.Method}).Info("after advice")
}

// ── Proxy ─────────────────────────────────────────────────────────────────────

type smartAnimalProxy struct {
	target SmartAnimal
	d      *aop.Dispatcher
}

// NewSmartAnimalProxy is the aop.ProxyFactory for SmartAnimal. Methods are
// dispatched as "getSum" and "getSub".
func NewSmartAnimalProxy(target any, d *aop.Dispatcher) (any, bool) {
	sa, ok := target.(SmartAnimal)
	if !ok {
		return nil, false
	}
	return &smartAnimalProxy{target: sa, d: d}, true
}

func (p *smartAnimalProxy) GetSum(a, b float64) (r float64) {
	p.d.Invoke("getSum", []any{a, b}, func() { r = p.target.GetSum(a, b) })
	return r
}

func (p *smartAnimalProxy) GetSub(a, b float64) (r float64) {
	p.d.Invoke("getSub", []any{a, b}, func() { r = p.target.GetSub(a, b) })
	return r
}

func init() {
	scan.Register((*SmartDog)(nil))
	aop.Register(aop.Aspect{Name: AspectName, Advice: Logging{}, Proxy: NewSmartAnimalProxy})
}
