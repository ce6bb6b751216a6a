package config

import "time"

// Fixed operational limits. MaxSteps/Headless/Timeout/Provider live on
// Config because they're user-overridable; these are not exposed as
// flags — they bound internal retry/loop behavior the spec treats as
// constants.
const (
	ActionTimeout     = 8 * time.Second
	NavigationTimeout = 15 * time.Second
	RetryWait         = 1000 * time.Millisecond
	LoginMaxSteps     = 6
	AgentLoopMaxSteps = 20
	MaxConsoleErrors  = 20
	MaxNetworkErrors  = 20
)
