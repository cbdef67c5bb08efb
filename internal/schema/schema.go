package schema

import "github.com/hashicorp/hcl/v2"

// Settings represents the optional scenario-wide `settings` block.
type Settings struct {
	// PollInterval and DefaultTimeout are Go duration strings, e.g. "25ms".
	PollInterval   string `hcl:"poll_interval,optional"`
	DefaultTimeout string `hcl:"default_timeout,optional"`
}

// Waiter represents a `waiter` block inside a step. The kind label selects
// the probe implementation; everything inside the block is kind-specific
// and decoded later, so the body stays open here.
type Waiter struct {
	Kind    string   `hcl:"kind,label"`
	Name    string   `hcl:"name,label"`
	Options hcl.Body `hcl:",remain"`
}

// Step represents a `step` block from a scenario file: one asynchronous
// test step and the waiters that gate its completion.
type Step struct {
	Name    string    `hcl:"name,label"`
	Timeout string    `hcl:"timeout,optional"`
	Waiters []*Waiter `hcl:"waiter,block"`
}

// Scenario represents the top-level structure of a scenario file.
type Scenario struct {
	Settings *Settings `hcl:"settings,block"`
	Steps    []*Step   `hcl:"step,block"`
	Body     hcl.Body  `hcl:",remain"`
}
