// Package aop adds cross-cutting behaviour to beans by substitution.
//
// An Aspect pairs an Advice with a ProxyFactory. The factory knows one
// interface shape and wraps a target of that shape in a proxy whose methods
// all go through a Dispatcher. The Dispatcher runs the advice around the
// methods it was told to advise and calls everything else straight through.
//
// The Weaver is a container.BeanPostProcessor that applies aspects to beans
// by name in AfterInit:
//
//	aop.Register(aop.Aspect{
//	    Name:   "smartAnimal",
//	    Advice: aspect.Logging{},
//	    Proxy:  aspect.NewSmartAnimalProxy,
//	})
//
//	w, err := aop.NewWeaver(nil, aop.Rule{Aspect: "smartAnimal", Bean: "smartDog", Methods: []string{"getSum"}})
//	c, err := container.New(cfg, container.WithProcessors(w))
//
// Advised method names are configuration, compared verbatim with the names
// a proxy passes to Invoke.
package aop
