// Package catalog holds the named validator definitions the engine evaluates
// field rules against. The built-in catalog is read-only after construction;
// sessions work on clones so per-form custom validators never leak across
// forms.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/terrafusion/go-formval/pkg/model"
)

// RuleContext gives a validator visibility into the form it is evaluating
// within. It exists for cross-field rules such as equalTo; value-only
// validators ignore it.
type RuleContext interface {
	// Peer resolves another field's current value within the same form scope.
	Peer(name string) (model.Value, bool)
}

// Definition is one named validator: a predicate over (value, param) plus the
// default message surfaced when the predicate fails. Message is used as-is;
// MessageFunc, when set, wins and may interpolate the rule parameter.
type Definition struct {
	Name        string
	Validate    func(ctx RuleContext, value model.Value, param string) bool
	Message     string
	MessageFunc func(param string) string
}

// MessageFor resolves the failure message for the given rule parameter.
func (d Definition) MessageFor(param string) string {
	if d.MessageFunc != nil {
		return d.MessageFunc(param)
	}
	if d.Message != "" {
		return d.Message
	}
	return GenericMessage
}

// GenericMessage is the fallback surfaced when a validator declares no
// message of its own, and for custom predicates that fail (or panic) without
// one.
const GenericMessage = "This field is invalid."

// Catalog stores validator definitions by name, providing discovery and
// duplication safeguards.
type Catalog struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// New creates an empty catalog instance.
func New() *Catalog {
	return &Catalog{definitions: make(map[string]Definition)}
}

// Register adds a definition by its Name. Duplicate names return an error.
func (c *Catalog) Register(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("catalog: validator name is required")
	}
	if def.Validate == nil {
		return fmt.Errorf("catalog: validator %q has no predicate", name)
	}
	def.Name = name

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.definitions[name]; exists {
		return fmt.Errorf("catalog: validator %q already registered", name)
	}
	c.definitions[name] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (c *Catalog) MustRegister(def Definition) {
	if err := c.Register(def); err != nil {
		panic(err)
	}
}

// Replace installs a definition regardless of whether the name is taken.
// Sessions use it to let a form-scoped validator shadow a built-in.
func (c *Catalog) Replace(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("catalog: validator name is required")
	}
	if def.Validate == nil {
		return fmt.Errorf("catalog: validator %q has no predicate", name)
	}
	def.Name = name

	c.mu.Lock()
	defer c.mu.Unlock()
	c.definitions[name] = def
	return nil
}

// Lookup retrieves a definition by name.
func (c *Catalog) Lookup(name string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.definitions[name]
	return def, ok
}

// Has reports whether a validator is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.definitions[name]
	return ok
}

// Names returns a sorted list of registered validator names.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.definitions))
	for name := range c.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy. Mutating the clone never affects the
// source catalog.
func (c *Catalog) Clone() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := &Catalog{definitions: make(map[string]Definition, len(c.definitions))}
	for name, def := range c.definitions {
		out.definitions[name] = def
	}
	return out
}
