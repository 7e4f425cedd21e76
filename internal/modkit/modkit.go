package modkit

import "cattery/internal/modkit/module"

// Module is the surface api.Mount wires: routes, ports, and a name
type Module = module.Module
