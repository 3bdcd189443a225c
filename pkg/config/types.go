package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/getshelfd/shelfd/pkg/logging"
	"github.com/getshelfd/shelfd/pkg/resource"
)

// Config is the top-level shelfd configuration.
type Config struct {
	// Version is the config schema version. Must be "1".
	Version string `json:"version" yaml:"version"`

	// BaseURL is the backend root, e.g. "https://api.example.com".
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// TokenFile optionally points at a file holding the bearer token.
	TokenFile string `json:"tokenFile,omitempty" yaml:"tokenFile,omitempty"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`

	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`

	// Resources declares the catalog.
	Resources []ResourceConfig `json:"resources" yaml:"resources"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ResourceConfig declares one backend resource.
type ResourceConfig struct {
	Name       string           `json:"name" yaml:"name"`
	Path       string           `json:"path,omitempty" yaml:"path,omitempty"`
	IDField    string           `json:"idField,omitempty" yaml:"idField,omitempty"`
	Operations []string         `json:"operations,omitempty" yaml:"operations,omitempty"`
	Schema     map[string]any   `json:"schema,omitempty" yaml:"schema,omitempty"`
	Seed       []map[string]any `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// ValidationError is a single config validation error located by its
// config path, e.g. "resources[0].name".
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult accumulates every validation error found in a Config so
// a user can fix the whole file in one pass.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

// Validate checks the whole configuration and returns every error found.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	if c.Version == "" {
		result.AddError("version", "required")
	} else if c.Version != "1" {
		result.AddError("version", fmt.Sprintf("unsupported version %q, expected \"1\"", c.Version))
	}

	if c.BaseURL == "" {
		result.AddError("baseUrl", "required")
	} else {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			result.AddError("baseUrl", fmt.Sprintf("invalid URL %q, expected http(s)://host", c.BaseURL))
		}
	}

	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			result.AddError("logging.level", err.Error())
		}
	}
	if c.Logging.Format != "" {
		if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
			result.AddError("logging.format", err.Error())
		}
	}

	if len(c.Resources) == 0 {
		result.AddError("resources", "at least one resource is required")
	}
	names := make(map[string]bool, len(c.Resources))
	for i, rc := range c.Resources {
		validateResource(&rc, fmt.Sprintf("resources[%d]", i), names, result)
	}

	return result
}

func validateResource(rc *ResourceConfig, path string, names map[string]bool, result *ValidationResult) {
	if rc.Name == "" {
		result.AddError(path+".name", "required")
	} else {
		if names[rc.Name] {
			result.AddError(path+".name", fmt.Sprintf("duplicate resource name %q", rc.Name))
		}
		names[rc.Name] = true
		if strings.ContainsAny(rc.Name, "/ \t") {
			result.AddError(path+".name", "must not contain slashes or whitespace")
		}
	}

	if strings.Contains(rc.Path, "/") {
		result.AddError(path+".path", "must be a single path segment")
	}

	seenOps := make(map[string]bool, len(rc.Operations))
	for j, op := range rc.Operations {
		opPath := fmt.Sprintf("%s.operations[%d]", path, j)
		if _, err := resource.ParseOperation(op); err != nil {
			result.AddError(opPath, err.Error())
			continue
		}
		if seenOps[op] {
			result.AddError(opPath, fmt.Sprintf("duplicate operation %q", op))
		}
		seenOps[op] = true
	}

	if rc.Schema != nil {
		if _, err := compileSchema(rc.Name, rc.Schema); err != nil {
			result.AddError(path+".schema", err.Error())
		}
	}

	idField := rc.IDField
	if idField == "" {
		idField = "id"
	}
	for j, entity := range rc.Seed {
		if _, ok := resource.IDKey(entity[idField]); !ok {
			result.AddError(fmt.Sprintf("%s.seed[%d]", path, j),
				fmt.Sprintf("missing or unusable %q field", idField))
		}
	}
}

// Catalog materializes the validated resource declarations, compiling any
// schema blocks. Call Validate first; Catalog repeats only the checks the
// catalog itself enforces.
func (c *Config) Catalog() (*resource.Catalog, error) {
	cat := resource.NewCatalog()
	for i, rc := range c.Resources {
		ops := make([]resource.Operation, 0, len(rc.Operations))
		for _, op := range rc.Operations {
			parsed, err := resource.ParseOperation(op)
			if err != nil {
				return nil, fmt.Errorf("resources[%d]: %w", i, err)
			}
			ops = append(ops, parsed)
		}

		r := &resource.Resource{
			Name:       rc.Name,
			Path:       rc.Path,
			IDField:    rc.IDField,
			Operations: ops,
			Seed:       rc.Seed,
		}
		if rc.Schema != nil {
			schema, err := compileSchema(rc.Name, rc.Schema)
			if err != nil {
				return nil, fmt.Errorf("resources[%d].schema: %w", i, err)
			}
			r.Schema = schema
		}

		if err := cat.Register(r); err != nil {
			return nil, err
		}
	}
	return cat, nil
}
