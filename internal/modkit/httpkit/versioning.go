package httpkit

import "net/http"

// APIV1 is the prefix every module is mounted under
const APIV1 = "/api/v1"

// MountAPIV1 mounts a subrouter under /api/v1 with the shared middleware stack
//
//	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
//	  cattery.MountRoutes(api)
//	})
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(APIV1, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
