// Package gen expands annotated record declarations into copy-on-write
// storage code for the host language.
//
// # Architecture
//
// The expansion pipeline follows this flow:
//
//	Record declaration (decl.Record)
//	        ↓
//	   Record / Field descriptors (classification)
//	        ↓
//	   Synthesizers (storage, accessors, capabilities)
//	        ↓
//	   Expansion (three output channels)
//	        ↓
//	   Generated source ({Record}+CoW.swift)
//
// # Key Types
//
// The package provides several key types:
//
//   - Record: Classified record with its ordered field descriptors
//   - Field: Stored-field descriptor with type, default, mutability
//   - CapabilitySet: Requested behaviors and declared contracts
//   - Expansion: The three output channels of one expanded record
//   - Config: Global configuration for code generation
//
// # Output Channels
//
// An expansion splits into the three channels a host front-end consumes:
//
//   - Members: declarations spliced into the record body (storage
//     container, storage field, uniqueness guard, constructor,
//     identity comparison)
//   - Attributes: the marker attached to each mutable field, later
//     expanded into its accessor pair via ExpandAccessor
//   - Extensions: one block per requested capability (equality,
//     hashing, serialization, description)
//
// # Error Handling
//
// The package uses structured error types for better error handling:
//
//   - NotARecordError: Annotation applied to a non-record declaration
//   - NoStorableFieldsError: Record without stored fields
//   - NoMutableFieldsError: Record whose stored fields are all immutable
//   - ConfigError: Configuration errors
//   - GenerationError: Rendering or write failures
//
// Example error handling:
//
//	x, err := gen.Expand(cfg, record)
//	if err != nil {
//	    if gen.IsNoMutableFields(err) {
//	        // Nothing to route through shared storage
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./Generated"),
//	    gen.WithHeader("// Custom header"),
//	)
//	err = gen.NewGenerator(cfg).Generate(ctx, records)
package gen
