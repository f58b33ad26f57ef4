package gen

// DefaultHeader is the comment placed at the top of every generated file.
const DefaultHeader = "// Code generated by cowgen. DO NOT EDIT."

// Reserved names injected into every expanded record. They use a leading
// underscore so they sort apart from user fields and never collide with
// idiomatic member names.
const (
	DefaultStorageType  = "Storage"
	DefaultStorageField = "_storage"
	DefaultGuard        = "_ensureUniqueStorage"
	DefaultFileSuffix   = "+CoW.swift"
)

// Config holds the engine configuration shared by every synthesizer.
type Config struct {
	// Header is the comment placed at the top of each generated file.
	Header string
	// StorageType is the name of the nested storage container class.
	StorageType string
	// StorageField is the name of the injected storage field.
	StorageField string
	// Guard is the name of the injected uniqueness-guard routine.
	Guard string
	// Target is the directory generated files are written to.
	Target string
	// FileSuffix is appended to the record name to form the output
	// file name.
	FileSuffix string
	// SnakeCaseKeys emits snake_case raw values for the generated
	// coding keys instead of the field names themselves.
	SnakeCaseKeys bool
	// Workers bounds the number of records expanded concurrently.
	Workers int
}

// DefaultConfig returns the configuration the engine runs with when the
// caller supplies none.
func DefaultConfig() *Config {
	return &Config{
		Header:       DefaultHeader,
		StorageType:  DefaultStorageType,
		StorageField: derivedStorageField(DefaultStorageType),
		Guard:        derivedGuard(DefaultStorageType),
		FileSuffix:   DefaultFileSuffix,
	}
}

// derivedGuard names the uniqueness-guard routine after the storage
// type, so a renamed container gets a matching guard without a second
// option.
func derivedGuard(storageType string) string {
	return "_ensureUnique" + Pascal(storageType)
}

// derivedStorageField names the injected field after the storage type.
func derivedStorageField(storageType string) string {
	return "_" + Camel(storageType)
}

// NewConfig builds a configuration from the defaults and the given
// options, validating each as it is applied.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
