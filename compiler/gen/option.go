package gen

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithStorageType sets the name of the nested storage container class.
// The storage field and uniqueness guard follow the new name unless
// they were renamed themselves.
func WithStorageType(name string) Option {
	return func(c *Config) error {
		if !IsIdentifier(name) {
			return NewConfigError("StorageType", name, "storage type must be a valid identifier")
		}
		if c.Guard == derivedGuard(c.StorageType) {
			c.Guard = derivedGuard(name)
		}
		if c.StorageField == derivedStorageField(c.StorageType) {
			c.StorageField = derivedStorageField(name)
		}
		c.StorageType = name
		return nil
	}
}

// WithStorageField sets the name of the injected storage field.
func WithStorageField(name string) Option {
	return func(c *Config) error {
		if !IsIdentifier(name) {
			return NewConfigError("StorageField", name, "storage field must be a valid identifier")
		}
		c.StorageField = name
		return nil
	}
}

// WithGuard sets the name of the injected uniqueness-guard routine.
func WithGuard(name string) Option {
	return func(c *Config) error {
		if !IsIdentifier(name) {
			return NewConfigError("Guard", name, "guard must be a valid identifier")
		}
		c.Guard = name
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithFileSuffix sets the suffix appended to the record name to form the
// generated file name.
func WithFileSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewConfigError("FileSuffix", nil, "file suffix cannot be empty")
		}
		c.FileSuffix = suffix
		return nil
	}
}

// WithSnakeCaseKeys makes the generated coding keys carry snake_case
// raw values, for payloads whose wire format uses snake_case keys.
func WithSnakeCaseKeys() Option {
	return func(c *Config) error {
		c.SnakeCaseKeys = true
		return nil
	}
}

// WithWorkers bounds the number of records expanded concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "worker count must be positive")
		}
		c.Workers = n
		return nil
	}
}
