// Package log defines the logging interface and typed logging fields.
//
// Adapters (such as the zap package) implement Logger so the compiler can
// emit debug tracing without binding to a concrete backend.
package log
