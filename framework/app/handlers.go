package app

import (
	"net/http"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/km-arc/beans/framework/container"
	"github.com/km-arc/beans/framework/scan"
	"github.com/km-arc/beans/framework/validation"
	gohttp "github.com/km-arc/beans/http"
	"github.com/km-arc/beans/routing"
)

// ── Views ─────────────────────────────────────────────────────────────────────

// FieldView is one injection point as served by the API.
type FieldView struct {
	Field  string `json:"field"`
	Mode   string `json:"mode"`
	Target string `json:"target"`
}

// BeanView is a descriptor as served by the API. Instance and Proxied are
// only set by GET /beans/{name}.
type BeanView struct {
	Name         string      `json:"name"`
	Scope        string      `json:"scope"`
	Type         string      `json:"type"`
	Processor    bool        `json:"processor"`
	Initializing bool        `json:"initializing"`
	Fields       []FieldView `json:"fields"`
	Instance     string      `json:"instance,omitempty"`
	Proxied      bool        `json:"proxied,omitempty"`
}

// NewBeanView describes d.
func NewBeanView(d *container.Descriptor) BeanView {
	v := BeanView{
		Name:         d.Name,
		Scope:        d.Scope.String(),
		Type:         reflect.PointerTo(d.Type).String(),
		Processor:    d.Processor,
		Initializing: d.Initializing,
		Fields:       make([]FieldView, 0, len(d.Fields)),
	}
	for _, ip := range d.Fields {
		target := ip.Target
		if ip.Mode == scan.ByType {
			target = string(container.KeyOf(ip.Type))
		}
		v.Fields = append(v.Fields, FieldView{Field: ip.Field, Mode: ip.Mode.String(), Target: target})
	}
	return v
}

// Summary is served by GET /.
type Summary struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	ScanRoot   string `json:"scan_root"`
	Beans      int    `json:"beans"`
	Processors int    `json:"processors"`
	Version    string `json:"version"`
}

// Dump renders bean with go-spew, without pointer addresses so the output
// is stable.
func Dump(bean any) string {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	return cfg.Sdump(bean)
}

// ── Routes ────────────────────────────────────────────────────────────────────

// beanQuery lists the query parameters GET /beans/{name} accepts.
var beanQuery = validation.Rules{
	"dump":   "sometimes|boolean",
	"format": "sometimes|in:json,text",
}

func (a *Application) routes() {
	r := a.Router
	r.NotFound(func(w http.ResponseWriter, hr *http.Request) {
		req := gohttp.NewRequest(hr)
		gohttp.NewResponse(w).NotFound("no route for " + req.Method() + " " + req.Path())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, hr *http.Request) {
		req := gohttp.NewRequest(hr)
		gohttp.NewResponse(w).MethodNotAllowed(req.Method() + " is not allowed on " + req.Path())
	})

	r.Head("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/", a.summary)
	r.Prefix("/beans", func(b *routing.Router) {
		b.Get("/", a.listBeans)
		b.Group(func(g *routing.Router) {
			g.Middleware(checkQuery(beanQuery))
			g.Get("/{name}", a.showBean)
		})
	})
	r.Get("/metrics", a.showMetrics)
}

// checkQuery rejects requests whose query parameters fail rules with 422
// and the error bag.
func checkQuery(rules validation.Rules) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := gohttp.NewRequest(r)
			data := make(map[string]string, len(rules))
			for key := range rules {
				data[key] = req.Query(key)
			}
			if v := validation.Make(data, rules); v.Fails() {
				gohttp.NewResponse(w).JSON(http.StatusUnprocessableEntity, v.Errors())
				return
			}
			next.ServeHTTP(w, req.Raw())
		})
	}
}

func (a *Application) summary(w http.ResponseWriter, _ *http.Request) {
	c := a.Container
	gohttp.NewResponse(w).Success(Summary{
		ID:         c.ID(),
		State:      c.State().String(),
		ScanRoot:   c.Config().ScanRoot,
		Beans:      len(c.Names()),
		Processors: len(c.Processors()),
		Version:    Version,
	})
}

// listBeans serves every descriptor, post-processors included, in discovery
// order.
func (a *Application) listBeans(w http.ResponseWriter, _ *http.Request) {
	all := a.Container.Descriptors()
	views := make([]BeanView, 0, len(all))
	for _, d := range all {
		views = append(views, NewBeanView(d))
	}
	gohttp.NewResponse(w).Success(views)
}

// showBean serves one descriptor plus the type of the instance GetBean
// returns. Asking for a prototype builds a new instance. ?dump, ?format=text
// and Accept: text/plain return a go-spew dump of the instance as text.
func (a *Application) showBean(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	name := req.RouteParam("name")

	d, ok := a.Container.Descriptor(name)
	if !ok {
		res.NotFound((&container.NotFoundError{Name: name}).Error())
		return
	}
	view := NewBeanView(d)
	if d.Processor {
		res.Success(view)
		return
	}

	bean, err := a.Container.GetBean(name)
	if err != nil {
		a.Log.WithError(err).WithField("bean", name).Warn("bean retrieval failed")
		if errors.Is(err, container.ErrNotFound) {
			res.NotFound(err.Error())
			return
		}
		res.ServerError(err.Error())
		return
	}

	format := "json"
	if req.WantsText() {
		format = "text"
	}
	if req.Bool("dump") || req.Query("format", format) == "text" {
		res.Text(http.StatusOK, Dump(bean))
		return
	}
	bt := reflect.TypeOf(bean)
	view.Instance = bt.String()
	view.Proxied = bt != reflect.PointerTo(d.Type)
	res.Success(view)
}

func (a *Application) showMetrics(w http.ResponseWriter, _ *http.Request) {
	res := gohttp.NewResponse(w)
	rec := a.Metrics()
	if rec == nil {
		res.NotFound("metrics are disabled")
		return
	}
	res.Success(rec.Snapshot())
}
