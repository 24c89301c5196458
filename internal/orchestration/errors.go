package orchestration

import "fmt"

// ValidationError indicates a name failed its format check before any
// network call was made.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// OperationError is the generic wrapper for a failed workflow step.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// ClusterOperationError wraps any failure inside a cluster workflow. The
// wrapped cause does not say which step failed; callers that need to
// distinguish a PCE failure from a secret-store failure must inspect the
// chain.
type ClusterOperationError struct {
	Op      string
	Cluster string
	Err     error
}

func (e *ClusterOperationError) Error() string {
	return fmt.Sprintf("failed to %s cluster %s: %v", e.Op, e.Cluster, e.Err)
}

func (e *ClusterOperationError) Unwrap() error {
	return e.Err
}

// LabelOperationError wraps any failure inside a label workflow.
type LabelOperationError struct {
	Key   string
	Value string
	Err   error
}

func (e *LabelOperationError) Error() string {
	return fmt.Sprintf("failed to get/create label %s=%s: %v", e.Key, e.Value, e.Err)
}

func (e *LabelOperationError) Unwrap() error {
	return e.Err
}
