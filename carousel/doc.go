// Package carousel is the step state of the feature walkthrough: four
// 1-based steps that wrap around, advanced automatically on a Scheduler.
//
// Auto-advance ticks every Interval. Pause and Resume follow pointer
// hover. Select and Key (ArrowLeft/ArrowRight) move immediately, stop
// auto-advance and re-arm it after ResumeDelay. At most one interval and
// one deferred resume are ever pending.
//
// The Scheduler is injected so tests drive time by hand; RealScheduler
// uses the time package.
package carousel
