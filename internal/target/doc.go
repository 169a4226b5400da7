// Package target defines the simulated model targets compared by the
// dashboard: their results and metrics, the Generator contract that produces
// a result for one target, the simulated generator used by default, and the
// ordered registry of configured targets.
package target
