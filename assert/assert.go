// Package assert provides invariant checks for internal use. Failed
// assertions return rich errors and log through the module's log facade;
// they never panic.
package assert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rossipedia/sch/log"
)

// Logger defines the minimal logging interface required by assertions.
// This interface is satisfied by log.Logger.
type Logger interface {
	Log(ctx context.Context, level log.Level, msg string, fields ...log.Field)
}

// ErrAssertionFailed is the sentinel error for failed assertions.
var ErrAssertionFailed = errors.New("assertion failed")

// AssertionError represents a failed assertion with rich context.
type AssertionError struct {
	Assertion string
	Message   string
	Component string
	Operation string
	Details   string
}

// Error returns the formatted assertion failure message.
func (entry *AssertionError) Error() string {
	if entry == nil {
		return ErrAssertionFailed.Error()
	}

	if entry.Details == "" {
		return "assertion failed: " + entry.Message
	}

	return "assertion failed: " + entry.Message + "\n" + entry.Details
}

// Unwrap returns the sentinel assertion error for errors.Is.
func (entry *AssertionError) Unwrap() error {
	return ErrAssertionFailed
}

// Asserter evaluates invariants and logs failures.
type Asserter struct {
	logger    Logger
	component string
	operation string
}

// New creates an Asserter. component and operation label every failure.
func New(logger Logger, component, operation string) *Asserter {
	return &Asserter{
		logger:    logger,
		component: component,
		operation: operation,
	}
}

// That returns an error if ok is false. Use for general-purpose assertions.
//
// Example:
//
//	if err := asserter.That(ctx, len(items) > 0, "items must not be empty", "count", len(items)); err != nil {
//		return err
//	}
func (asserter *Asserter) That(ctx context.Context, ok bool, msg string, kv ...any) error {
	if ok {
		return nil
	}

	return asserter.fail(ctx, "That", msg, kv...)
}

// NoError returns an error if err is not nil. The error message and type
// are automatically included in the assertion context for debugging.
func (asserter *Asserter) NoError(ctx context.Context, err error, msg string, kv ...any) error {
	if err == nil {
		return nil
	}

	// 2 pairs added (error + error_type), each pair = 2 elements
	const errorKVPairs = 4

	kvWithError := make([]any, 0, len(kv)+errorKVPairs)
	kvWithError = append(kvWithError, "error", err.Error())
	kvWithError = append(kvWithError, "error_type", fmt.Sprintf("%T", err))
	kvWithError = append(kvWithError, kv...)

	return asserter.fail(ctx, "NoError", msg, kvWithError...)
}

// Never always returns an error. Use for code paths that should be
// unreachable.
//
// Example:
//
//	return asserter.Never(ctx, "unhandled status", "status", status)
func (asserter *Asserter) Never(ctx context.Context, msg string, kv ...any) error {
	return asserter.fail(ctx, "Never", msg, kv...)
}

const maxValueLength = 200 // Truncate values longer than this

// truncateValue truncates long values for logging safety.
func truncateValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) <= maxValueLength {
		return s
	}

	return s[:maxValueLength] + "... (truncated " + strconv.Itoa(len(s)-maxValueLength) + " chars)"
}

func (asserter *Asserter) fail(ctx context.Context, assertion, msg string, kv ...any) error {
	logger, component, operation := asserter.values()
	contextPairs := withContextPairs(assertion, component, operation, kv)
	details := formatKeyValueLines(contextPairs)

	logAssertion(ctx, logger, formatLogMessage(msg, details))

	return &AssertionError{
		Assertion: assertion,
		Message:   msg,
		Component: component,
		Operation: operation,
		Details:   details,
	}
}

func (asserter *Asserter) values() (Logger, string, string) {
	if asserter == nil {
		return nil, "", ""
	}

	return asserter.logger, asserter.component, asserter.operation
}

// contextPairsCapacity covers the fixed context pairs (assertion, component, operation).
const contextPairsCapacity = 6

func withContextPairs(assertion, component, operation string, kv []any) []any {
	contextPairs := make([]any, 0, len(kv)+contextPairsCapacity)
	contextPairs = append(contextPairs, "assertion", assertion)

	if component != "" {
		contextPairs = append(contextPairs, "component", component)
	}

	if operation != "" {
		contextPairs = append(contextPairs, "operation", operation)
	}

	contextPairs = append(contextPairs, kv...)

	return contextPairs
}

func formatKeyValueLines(kv []any) string {
	if len(kv) == 0 {
		return ""
	}

	var sb strings.Builder

	for i := 0; i < len(kv); i += 2 {
		if i > 0 {
			sb.WriteString("\n")
		}

		var value any
		if i+1 < len(kv) {
			value = kv[i+1]
		} else {
			value = "MISSING_VALUE"
		}

		fmt.Fprintf(&sb, "    %v=%v", kv[i], truncateValue(value))
	}

	return sb.String()
}

func formatLogMessage(msg, details string) string {
	var sb strings.Builder

	sb.WriteString("ASSERTION FAILED: ")
	sb.WriteString(msg)

	if details != "" {
		sb.WriteString("\n")
		sb.WriteString(details)
	}

	return sb.String()
}

func logAssertion(ctx context.Context, logger Logger, message string) {
	if logger != nil {
		logger.Log(ctx, log.LevelError, message)
		return
	}

	fmt.Fprintln(os.Stderr, message)
}
