package viewhelper

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Factory constructs a fresh, unattached helper instance.
type Factory func() Helper

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for recovered render failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecoveryPolicy sets how recoverable Render failures are handled.
func WithRecoveryPolicy(policy RecoveryPolicy) Option {
	return func(r *Registry) {
		r.recovery = policy
	}
}

// WithObserver installs an invocation observer.
func WithObserver(observer Observer) Option {
	return func(r *Registry) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// WithParameterSource replaces the render parameter source.
func WithParameterSource(source ParameterSource) Option {
	return func(r *Registry) {
		if source != nil {
			r.parameters = source
		}
	}
}

// WithDefinitionCache shares an argument definition cache, and the tag
// attribute names recorded with it, between registries.
func WithDefinitionCache(cache *DefinitionCache) Option {
	return func(r *Registry) {
		if cache != nil {
			r.definitions = cache
		}
	}
}

// WithTypeRegistry shares a type registry between registries.
func WithTypeRegistry(types *TypeRegistry) Option {
	return func(r *Registry) {
		if types != nil {
			r.types = types
		}
	}
}

// Registry stores helper factories by name and owns the per-type metadata
// caches every instance it creates shares.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory

	definitions *DefinitionCache
	types       *TypeRegistry
	parameters  ParameterSource

	logger   *slog.Logger
	recovery RecoveryPolicy
	observer Observer
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		factories:   make(map[string]Factory),
		definitions: NewDefinitionCache(),
		types:       NewTypeRegistry(),
		parameters:  DeclaredParameters,
		logger:      slog.Default(),
		recovery:    RecoverWithMessage,
		observer:    noopObserver{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Register adds a factory under name. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("viewhelper: helper name is required")
	}
	if factory == nil {
		return fmt.Errorf("viewhelper: factory for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("viewhelper: helper %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New instantiates and attaches the helper registered under name.
func (r *Registry) New(name string) (Helper, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("viewhelper: %q: %w", name, ErrHelperNotFound)
	}
	helper := factory()
	if helper == nil {
		return nil, fmt.Errorf("viewhelper: factory for %q returned nil", name)
	}
	return r.Attach(name, helper), nil
}

// Attach binds an instance constructed outside the registry so it shares the
// registry's caches and policies.
func (r *Registry) Attach(name string, helper Helper) Helper {
	helper.Core().attach(helper, r, name)
	return helper
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// List returns the sorted registered names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions exposes the argument definition cache.
func (r *Registry) Definitions() *DefinitionCache { return r.definitions }

// TagAttributes exposes the tag attribute registry.
func (r *Registry) TagAttributes() *TagAttributeRegistry { return r.definitions.TagAttributes() }

// Types exposes the type registry used for class/interface type tags.
func (r *Registry) Types() *TypeRegistry { return r.types }

// RecoveryPolicy returns the configured policy.
func (r *Registry) RecoveryPolicy() RecoveryPolicy { return r.recovery }

// Logger returns the configured logger.
func (r *Registry) Logger() *slog.Logger { return r.logger }

// resolve maps a render result to the node output according to the policy.
func (r *Registry) resolve(ctx context.Context, helper string, result RenderResult) (any, Outcome, error) {
	if !result.Failed() {
		return result.Output, OutcomeOK, nil
	}
	if !IsRecoverable(result.Failure) || r.recovery == Propagate {
		return nil, OutcomeFailed, result.Failure
	}

	r.logger.LogAttrs(ctx, slog.LevelWarn, "view helper render failed",
		slog.String("helper", helper),
		slog.String("policy", r.recovery.String()),
		slog.Any("error", result.Failure),
	)
	if r.recovery == RecoverSilently {
		return "", OutcomeRecovered, nil
	}
	return failureMessage(result.Failure), OutcomeRecovered, nil
}

func (r *Registry) observe(helper string, start time.Time, outcome Outcome) {
	r.observer.ObserveRender(helper, time.Since(start), outcome)
}
