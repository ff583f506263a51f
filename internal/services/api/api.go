// Package api provides the HTTP API for the application
package api

import (
	"prospector/internal/platform/config"
	"prospector/internal/platform/logger"
	phttp "prospector/internal/platform/net/http"
	"prospector/internal/platform/store"

	"prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	"prospector/internal/modkit/module"
	"prospector/internal/modkit/swaggerkit"

	"prospector/internal/adapters/provider/apollo"
	exportsmod "prospector/internal/services/api/exports/module"
	importsmod "prospector/internal/services/api/imports/module"
	leadsdomain "prospector/internal/services/api/leads/domain"
	leadsmod "prospector/internal/services/api/leads/module"
	leadssvc "prospector/internal/services/api/leads/service"
	listsmod "prospector/internal/services/api/lists/module"
	metamod "prospector/internal/services/api/meta/module"
	sequencesmod "prospector/internal/services/api/sequences/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	ProviderConfig config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// the provider list is ordered: the first non-empty result wins
	apolloClient := apollo.New(apollo.FromConfig(opt.ProviderConfig))

	leads := leadsmod.New(
		deps,
		modkit.WithPorts(leadsmod.Providers{
			Ordered: []leadsdomain.Provider{apolloClient},
			Policy:  leadssvc.FirstMatch{},
		}),
	)

	// imports and exports orchestrate through the leads port
	leadsPort := module.MustPortsOf[leadsdomain.ServicePort](leads)

	mods := []module.Module{
		metamod.New(deps),
		leads,
		listsmod.New(deps),
		sequencesmod.New(deps),
		importsmod.New(deps, modkit.WithPorts(leadsPort)),
		exportsmod.New(deps, modkit.WithPorts(leadsPort)),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})
}
