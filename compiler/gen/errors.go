package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cowgen/cowgen/compiler/decl"
)

// Sentinel errors for the classifier's fatal failure cases. All of them
// abort expansion for the offending record: no partial output is emitted.
var (
	// ErrNotARecord indicates the annotation was applied to a
	// declaration that is not a record type.
	ErrNotARecord = errors.New("cowgen: not a record type")
	// ErrNoStorableFields indicates the record has no stored fields
	// eligible for generation.
	ErrNoStorableFields = errors.New("cowgen: no storable fields")
	// ErrNoMutableFields indicates the record has stored fields but
	// none of them is mutable.
	ErrNoMutableFields = errors.New("cowgen: no mutable fields")
	// ErrFieldRedeclared indicates two stored fields share a name.
	ErrFieldRedeclared = errors.New("cowgen: field redeclared")
	// ErrGenerationFailed indicates a failure while emitting output.
	ErrGenerationFailed = errors.New("cowgen: code generation failed")
	// ErrInvalidConfig indicates an invalid engine configuration.
	ErrInvalidConfig = errors.New("cowgen: invalid configuration")
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("cowgen: invalid configuration for %s (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("cowgen: invalid configuration for %s: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// NotARecordError is returned when the annotated declaration is a class,
// enum, or actor rather than a record.
type NotARecordError struct {
	Record string
	Kind   decl.Kind
}

// Error implements the error interface.
func (e *NotARecordError) Error() string {
	return fmt.Sprintf("cowgen: %q is declared as %s; copy-on-write storage can only be generated for a struct",
		e.Record, e.Kind)
}

// Is reports whether the target matches the sentinel error for NotARecordError.
func (e *NotARecordError) Is(target error) bool {
	return target == ErrNotARecord
}

// NoStorableFieldsError is returned when classification leaves the
// descriptor sequence empty.
type NoStorableFieldsError struct {
	Record string
}

// Error implements the error interface.
func (e *NoStorableFieldsError) Error() string {
	return fmt.Sprintf("cowgen: %q declares no stored fields; declare at least one non-computed, non-static field",
		e.Record)
}

// Is reports whether the target matches the sentinel error for NoStorableFieldsError.
func (e *NoStorableFieldsError) Is(target error) bool {
	return target == ErrNoStorableFields
}

// NoMutableFieldsError is returned when every classified field is
// immutable and shared storage would have nothing to hold.
type NoMutableFieldsError struct {
	Record string
}

// Error implements the error interface.
func (e *NoMutableFieldsError) Error() string {
	return fmt.Sprintf("cowgen: every stored field of %q is immutable; change at least one let binding to var",
		e.Record)
}

// Is reports whether the target matches the sentinel error for NoMutableFieldsError.
func (e *NoMutableFieldsError) Is(target error) bool {
	return target == ErrNoMutableFields
}

// FieldRedeclaredError is returned when a record declares two stored
// fields with the same name.
type FieldRedeclaredError struct {
	Record string
	Field  string
}

// Error implements the error interface.
func (e *FieldRedeclaredError) Error() string {
	return fmt.Sprintf("cowgen: field %q redeclared for record %q", e.Field, e.Record)
}

// Is reports whether the target matches the sentinel error for FieldRedeclaredError.
func (e *FieldRedeclaredError) Is(target error) bool {
	return target == ErrFieldRedeclared
}

// GenerationError represents a failure while rendering or writing a
// generated artifact.
type GenerationError struct {
	Record   string
	Artifact string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("cowgen: generation error")
	if e.Record != "" {
		b.WriteString(" for record ")
		b.WriteString(e.Record)
	}
	if e.Artifact != "" {
		b.WriteString(" (artifact: ")
		b.WriteString(e.Artifact)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(record, artifact, message string, cause error) *GenerationError {
	return &GenerationError{
		Record:   record,
		Artifact: artifact,
		Message:  message,
		Cause:    cause,
	}
}

// IsNotARecord reports whether the error is a NotARecordError.
func IsNotARecord(err error) bool {
	var e *NotARecordError
	return errors.As(err, &e)
}

// IsNoStorableFields reports whether the error is a NoStorableFieldsError.
func IsNoStorableFields(err error) bool {
	var e *NoStorableFieldsError
	return errors.As(err, &e)
}

// IsNoMutableFields reports whether the error is a NoMutableFieldsError.
func IsNoMutableFields(err error) bool {
	var e *NoMutableFieldsError
	return errors.As(err, &e)
}

// IsFieldRedeclared reports whether the error is a FieldRedeclaredError.
func IsFieldRedeclared(err error) bool {
	var e *FieldRedeclaredError
	return errors.As(err, &e)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}
