// Package errors provides structured error handling for the treesync library.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindRegistry indicates a type-handler registration error.
	KindRegistry
	// KindHandler indicates a failure inside a type handler callback.
	KindHandler
	// KindState indicates an inconsistency in the state tree.
	KindState
	// KindDecode indicates a document or resource decoding failure.
	KindDecode
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindRegistry:
		return "registry"
	case KindHandler:
		return "handler"
	case KindState:
		return "state"
	case KindDecode:
		return "decode"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// TreeError represents a structured error in the treesync library.
type TreeError struct {
	// Op is the operation that failed (e.g., "build.RegisterHandler").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// NodeKind is the state node kind tag involved, if applicable.
	NodeKind string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TreeError) Error() string {
	if e.NodeKind != "" {
		return fmt.Sprintf("%s [%s] kind=%s: %v", e.Op, e.Kind, e.NodeKind, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "build.reconcile").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Handler receives errors reported by the library.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *TreeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
