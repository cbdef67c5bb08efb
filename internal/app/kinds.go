package app

import "github.com/vk/waitgate/internal/probe"

// coreKinds is the definitive list of waiter kinds compiled into the
// waitgate binary.
var coreKinds = map[string]probe.Factory{
	"countdown": probe.NewCountdown,
	"http":      probe.NewHTTP,
	"socketio":  probe.NewSocketIO,
}
