package ssa

import (
	"fmt"
	"strings"
)

// ConfigurationError marks a fatal misconfiguration: a dependency graph
// missing for a system that needs one, a graph with the wrong node
// count, or a bracketed rate with lrate > urate. Configuration errors
// are fail-fast: the aggregator must not continue stepping.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "configuration error: " + e.Msg }

func newConfigurationError(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// DomainError marks an out-of-domain value supplied by the caller, such
// as a negative priority inserted into the priority table.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return "domain error: " + e.Msg }

func newDomainError(format string, args ...any) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}

// ExhaustionError marks a locally recoverable condition: the priority
// time table's sliding window has run out of headroom and needs
// rebuild. Callers should call Rebuild and retry rather than treat this
// as fatal.
type ExhaustionError struct {
	Msg string
}

func (e *ExhaustionError) Error() string { return "exhaustion error: " + e.Msg }

func newExhaustionError(format string, args ...any) error {
	return &ExhaustionError{Msg: fmt.Sprintf(format, args...)}
}

// InvariantError marks a statistically-impossible-but-checked condition,
// e.g. a bracket envelope violated after a refresh.
// BracketEngine.CheckInvariants returns it to the caller; nothing in this
// package recomputes brackets or retries in response to it.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "invariant error: " + e.Msg }

func newInvariantError(format string, args ...any) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError collects multiple validation issues found while
// checking a JumpProblemConfig, so a caller sees every problem at once
// instead of one-at-a-time.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid jump problem: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "jump problem validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}
