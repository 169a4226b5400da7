// Package orchestration coordinates the simulated multi-model response
// generation. A submission fans a prompt out to every configured target,
// joins the results as one batch and publishes immutable State snapshots to
// the presentation layer through StateObserver and subscription channels.
//
// The Orchestrator does not guard against overlapping submissions: callers
// disable their submit action while a submission is Running.
package orchestration
