// Package eval wraps github.com/expr-lang/expr into the three operations an
// expression evaluator needs: Bind (mutating), EvalBool (guard evaluation)
// and Iter (profile snapshots). Uses a compiled-program cache guarded by a
// mutex, with expr.Compile attempted first against a map[string]interface{}
// environment and retried without an Env on failure, plus permissive
// handling of "variable not found" style runtime errors.
package eval

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

// Evaluator compiles and runs guard/action expressions against a
// domain.VariableSet. One Evaluator is shared by every Context in a Machine;
// its cache is keyed by expression text, which is safe across models since
// expr programs close over their environment only at Run time.
type Evaluator struct {
	mu            sync.RWMutex
	compiledCache map[string]*vm.Program
	log           zerolog.Logger
}

// New creates an Evaluator that logs guard-evaluation failures through log.
func New(log zerolog.Logger) *Evaluator {
	return &Evaluator{
		compiledCache: make(map[string]*vm.Program),
		log:           log,
	}
}

// EvalBool evaluates expr against vars and coerces the result to bool. Any
// evaluation error — compile failure, type mismatch, or a runtime "variable
// not found" style error — is returned to the caller as a GuardError; the
// caller (the random generator) treats any such error as permissive
// ("candidate"), never as "not selectable". A missing-variable error is
// logged at Warn since it is the expected, permissive case; other errors are
// still returned the same way so the caller's single error branch handles
// both uniformly.
func (e *Evaluator) EvalBool(vars *domain.VariableSet, expression string) (bool, error) {
	program, err := e.compile(expression, true)
	if err != nil {
		return false, domain.NewEngineError(domain.ErrGuard, fmt.Sprintf("guard %q failed to compile", expression), err)
	}

	env := vars.All()
	// The cached program may have been compiled without a fixed Env, in which
	// case an absent variable reads as nil at run time. A strict compile
	// against the current bag reports it as an unknown name instead.
	if _, err := expr.Compile(expression, expr.Env(env)); err != nil {
		if isVariableNotFoundError(err.Error()) {
			e.log.Warn().Str("guard", expression).Err(err).Msg("guard evaluation failed on missing variable, treating as selectable")
		}
		return false, domain.NewEngineError(domain.ErrGuard, fmt.Sprintf("guard %q failed to evaluate", expression), err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		if isVariableNotFoundError(err.Error()) {
			e.log.Warn().Str("guard", expression).Err(err).Msg("guard evaluation failed on missing variable, treating as selectable")
		}
		return false, domain.NewEngineError(domain.ErrGuard, fmt.Sprintf("guard %q failed to evaluate", expression), err)
	}

	b, ok := result.(bool)
	if !ok {
		return false, domain.NewEngineError(domain.ErrGuard, fmt.Sprintf("guard %q did not evaluate to a boolean, got %T", expression, result), nil)
	}
	return b, nil
}

// Iter returns vars' contents as a deterministically ordered sequence of
// (name, value) pairs, used to build a Step's Data snapshot.
func (e *Evaluator) Iter(vars *domain.VariableSet) []domain.VarEntry {
	return vars.Snapshot()
}

func (e *Evaluator) compile(expression string, asBool bool) (*vm.Program, error) {
	cacheKey := expression
	if asBool {
		cacheKey = "bool:" + expression
	}

	e.mu.RLock()
	program, cached := e.compiledCache[cacheKey]
	e.mu.RUnlock()
	if cached {
		return program, nil
	}

	opts := []expr.Option{expr.Env(map[string]interface{}{})}
	if asBool {
		opts = append(opts, expr.AsBool())
	}

	program, err := expr.Compile(expression, opts...)
	if err != nil {
		// Retry without a fixed Env: some expressions reference variable
		// names the zero-value env map can't type-check statically.
		var retryOpts []expr.Option
		if asBool {
			retryOpts = append(retryOpts, expr.AsBool())
		}
		program, err = expr.Compile(expression, retryOpts...)
		if err != nil {
			return nil, domain.NewEngineError(domain.ErrAction, fmt.Sprintf("failed to compile expression %q", expression), err)
		}
	}

	e.mu.Lock()
	e.compiledCache[cacheKey] = program
	e.mu.Unlock()
	return program, nil
}

// isVariableNotFoundError recognizes expr-lang's runtime error text for a
// reference to an absent map key or undefined identifier.
func isVariableNotFoundError(errMsg string) bool {
	patterns := []string{
		"cannot fetch",
		"undefined",
		"unknown name",
		"nil pointer",
		"not found",
	}
	lower := strings.ToLower(errMsg)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
