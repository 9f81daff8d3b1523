package aop

// JoinPoint describes one intercepted call.
type JoinPoint struct {
	Bean   string
	Method string
	Args   []any
}

// Advice is run around advised calls. After only runs when the call returns
// normally.
type Advice interface {
	Before(jp JoinPoint)
	After(jp JoinPoint)
}

// AdviceFuncs adapts plain functions to Advice. Nil functions are skipped.
type AdviceFuncs struct {
	BeforeFunc func(JoinPoint)
	AfterFunc  func(JoinPoint)
}

func (a AdviceFuncs) Before(jp JoinPoint) {
	if a.BeforeFunc != nil {
		a.BeforeFunc(jp)
	}
}

func (a AdviceFuncs) After(jp JoinPoint) {
	if a.AfterFunc != nil {
		a.AfterFunc(jp)
	}
}
