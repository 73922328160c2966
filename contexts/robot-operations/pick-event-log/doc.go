// Package pickeventlog contains the pick event log: a bounded, process-local
// record of the most recent robot pick events.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package pickeventlog
