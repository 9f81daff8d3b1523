package aop

// Dispatcher routes the calls of one proxy. It is immutable after
// NewDispatcher and safe for concurrent use as long as its Advice is.
type Dispatcher struct {
	bean    string
	advice  Advice
	advised map[string]struct{}
}

// NewDispatcher returns a dispatcher for bean that runs advice around the
// given method names.
func NewDispatcher(bean string, advice Advice, methods ...string) *Dispatcher {
	d := &Dispatcher{
		bean:    bean,
		advice:  advice,
		advised: make(map[string]struct{}, len(methods)),
	}
	for _, m := range methods {
		d.advised[m] = struct{}{}
	}
	return d
}

// Bean returns the name of the bean being proxied.
func (d *Dispatcher) Bean() string { return d.bean }

// Advised reports whether calls to method are wrapped in advice.
func (d *Dispatcher) Advised(method string) bool {
	_, ok := d.advised[method]
	return ok
}

// Invoke performs call, surrounded by Before and After when method is
// advised.
//
//	func (p *proxy) GetSum(a, b float64) (r float64) {
//	    p.d.Invoke("getSum", []any{a, b}, func() { r = p.target.GetSum(a, b) })
//	    return r
//	}
func (d *Dispatcher) Invoke(method string, args []any, call func()) {
	if d.advice == nil || !d.Advised(method) {
		call()
		return
	}
	jp := JoinPoint{Bean: d.bean, Method: method, Args: args}
	d.advice.Before(jp)
	call()
	d.advice.After(jp)
}
