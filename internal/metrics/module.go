package metrics

import "go.uber.org/fx"

// Module provides the process wide metrics registry.
var Module = fx.Provide(NewRegistry)
