// Package msgs provides L1 protocol support and all message schemas.
package msgs

// L1 protocol is communicated between the RC link controller and
// telemetry consumers, and uses hardware-agnostic primitives.
//
// Producer: rcdrive
// Consumer: rcmon, dashboards
