// Package services provides domain services that orchestrate business operations
// spanning the component aggregate and the notification model. They are pure:
// no I/O, no locks, clock reads through kernel.Clock.
//
// The package includes:
//   - LifecycleEngine: the single entry point for component status changes
//   - NotificationRules: the rule table deciding who hears about a transition
package services
