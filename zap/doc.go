// Package zap provides adapters and helpers around zap-based logging.
//
// It bridges the log abstraction to go.uber.org/zap while preserving
// structured fields, so the schedule compiler's debug tracing can be wired
// to a production logging backend.
package zap
