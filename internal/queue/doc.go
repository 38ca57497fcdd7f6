// Package queue drives catalog items through the generate-and-upload
// pipeline one at a time.
//
// The Scheduler owns the run state (running, paused, item-in-flight) and a
// drain loop that picks the first pending item in list order, runs the
// pipeline for it, and waits a fixed delay before the next pickup. The
// in-flight guard is held through both the pipeline call and the delay, so
// at most one automatically scheduled call is active at any instant; the
// image backend's rate limit is the reason for the pacing. Manual
// regeneration bypasses the guard and the delay but is serialized per item
// id, so two pipeline calls never target the same record at once.
package queue
