// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "cattery/internal/platform/net/http"
)

// Module is what api.Mount needs from every module
// sibling of modkit so ports types can import it without cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
