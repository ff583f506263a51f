// Package module wires leads into the API using modkit
package module

import (
	"net/http"

	modkit "prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	str "prospector/internal/platform/strings"
	"prospector/internal/services/api/leads/domain"
	leadshttp "prospector/internal/services/api/leads/http"
	leadsrepo "prospector/internal/services/api/leads/repo"
	leadssvc "prospector/internal/services/api/leads/service"
)

// Module implements the leads module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc leadssvc.Service
}

// Providers carries the ordered provider list injected by main
type Providers struct {
	Ordered []domain.Provider
	Policy  leadssvc.SelectionPolicy
}

// New constructs the leads module; it panics when no provider is configured
// since a router without adapters is a fatal configuration error
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("leads"), modkit.WithPrefix("/leads")}, opts...)...)

	provs, ok := b.Ports.(Providers)
	if !ok {
		panic("leads module requires Providers injected via modkit.WithPorts")
	}
	router, err := leadssvc.NewRouter(provs.Ordered, provs.Policy)
	if err != nil {
		panic(err)
	}

	repo := leadsrepo.NewPG()
	svc := leadssvc.New(deps.PG, repo, router)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptLeadsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		leadshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
