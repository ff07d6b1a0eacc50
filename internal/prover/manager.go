// Package prover orchestrates proof backends. The native rule engine and
// the external bridges sit in one registry; the manager routes a goal to the
// backend suited to it, tries backends in order, or races them on a bounded
// pool, and reports a unified verdict with a confidence score.
package prover

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dcec/internal/bridge"
	"dcec/internal/datalog"
	"dcec/internal/logic"
	"dcec/internal/proof"
	"dcec/internal/rules"
)

// Strategy selects how the manager schedules the registry for one call.
type Strategy string

const (
	StrategyAuto       Strategy = "auto"
	StrategyBest       Strategy = "best"
	StrategySequential Strategy = "sequential"
	StrategyParallel   Strategy = "parallel"
)

// ErrNoProvers is reported when every configured backend was excluded.
var ErrNoProvers = errors.New("no provers available")

// DefaultMaxParallel bounds the parallel strategy's worker pool when the
// configuration does not.
const DefaultMaxParallel = 4

// Confidence attached to a valid verdict, by path.
const (
	confidenceParallel = 1.0
	confidenceSingle   = 0.9
)

// DefaultBackends is the registry order used when the configuration does
// not name any.
func DefaultBackends() []string {
	return []string{"native", "smt", "datalog", "eprover", "vampire"}
}

// Config names the enabled backends and their shared bounds.
type Config struct {
	// Backends lists registry entries in order; empty means DefaultBackends.
	Backends []string

	// Timeout is the per-backend call budget; zero lets each backend apply
	// its own default.
	Timeout time.Duration

	MaxParallel int

	// MaxSteps bounds the native engine's iterations.
	MaxSteps int

	EProverPath string
	VampirePath string

	// DisableSMTPreference stops routing operator-wrapped goals to the SMT
	// backend in SelectBestProver.
	DisableSMTPreference bool

	Logger *zap.Logger
}

// Manager owns the backend registry and the usage counters.
type Manager struct {
	cfg      Config
	registry []bridge.Prover
	excluded []string
	logger   *zap.Logger

	mu    sync.Mutex
	stats Stats
}

// NewManager builds the registry from the configuration. Backends whose
// binaries are missing are logged and excluded; an empty registry is not an
// error here, Prove reports it per call.
func NewManager(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = DefaultMaxParallel
	}
	names := cfg.Backends
	if len(names) == 0 {
		names = DefaultBackends()
	}

	m := &Manager{cfg: cfg, logger: cfg.Logger}
	m.stats.ByBackend = map[string]int{}
	for _, name := range names {
		p := m.build(name)
		if p == nil {
			m.logger.Warn("unknown backend", zap.String("backend", name))
			m.excluded = append(m.excluded, name)
			continue
		}
		if !p.Available() {
			m.logger.Warn("backend unavailable", zap.String("backend", name))
			m.excluded = append(m.excluded, name)
			continue
		}
		m.registry = append(m.registry, p)
	}
	m.logger.Info("prover registry built", zap.Strings("backends", m.Backends()))
	return m
}

func (m *Manager) build(name string) bridge.Prover {
	switch name {
	case "native":
		return NewNative(rules.Catalog(), proof.Options{MaxSteps: m.cfg.MaxSteps, Logger: m.logger})
	case "smt":
		return bridge.NewSMTProver(m.cfg.Timeout, m.logger)
	case "datalog":
		return datalog.New(datalog.Config{Timeout: m.cfg.Timeout, Logger: m.logger})
	case "eprover":
		return bridge.NewEProver(m.cfg.EProverPath, m.cfg.Timeout, m.logger)
	case "vampire":
		return bridge.NewVampire(m.cfg.VampirePath, m.cfg.Timeout, m.logger)
	}
	return nil
}

// Backends returns the active registry names in order.
func (m *Manager) Backends() []string {
	out := make([]string, len(m.registry))
	for i, p := range m.registry {
		out[i] = p.Name()
	}
	return out
}

// Excluded returns the configured backends that did not make it into the
// registry, unknown names included.
func (m *Manager) Excluded() []string {
	return append([]string(nil), m.excluded...)
}

// SelectBestProver picks the backend suited to the goal's shape: the SMT
// abstraction for operator-wrapped goals, a first-order prover for pure
// connective goals, the datalog engine for ground atomic goals, else the
// first registry entry.
func (m *Manager) SelectBestProver(goal logic.Formula) (bridge.Prover, error) {
	if len(m.registry) == 0 {
		return nil, ErrNoProvers
	}
	if !m.cfg.DisableSMTPreference {
		switch goal.(type) {
		case *logic.Modal, *logic.Deontic, *logic.Cognitive, *logic.Temporal:
			if p, ok := m.byName("smt"); ok {
				return p, nil
			}
		}
	}
	if isPureConnective(goal) {
		for _, name := range []string{"eprover", "vampire"} {
			if p, ok := m.byName(name); ok {
				return p, nil
			}
		}
	}
	if isGroundAtom(goal) {
		if p, ok := m.byName("datalog"); ok {
			return p, nil
		}
	}
	return m.registry[0], nil
}

func (m *Manager) byName(name string) (bridge.Prover, bool) {
	for _, p := range m.registry {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Prove runs the goal through the chosen strategy. The context bounds the
// whole call; each backend additionally applies its own timeout.
func (m *Manager) Prove(ctx context.Context, goal logic.Formula, axioms []logic.Formula, strategy Strategy) UnifiedResult {
	start := time.Now()
	res := UnifiedResult{
		RequestID: uuid.NewString(),
		Strategy:  strategy,
	}
	if goal == nil {
		res.Status = bridge.StatusError
		res.Err = errors.New("prover: nil goal")
		return res
	}
	res.Goal = logic.Key(goal)
	if len(m.registry) == 0 {
		res.Status = bridge.StatusError
		res.Err = ErrNoProvers
		return res
	}

	switch strategy {
	case StrategySequential:
		m.proveSequential(ctx, goal, axioms, &res)
	case StrategyParallel:
		m.proveParallel(ctx, goal, axioms, &res)
	case StrategyAuto, StrategyBest, "":
		m.proveBest(ctx, goal, axioms, &res)
	default:
		res.Status = bridge.StatusError
		res.Err = fmt.Errorf("prover: unknown strategy %q", strategy)
		return res
	}
	res.Elapsed = time.Since(start)

	m.mu.Lock()
	m.stats.TotalProofs++
	if res.IsValid {
		m.stats.ValidProofs++
	}
	for _, a := range res.Attempts {
		m.stats.ByBackend[a.Backend]++
	}
	m.mu.Unlock()

	m.logger.Info("proof request",
		zap.String("request_id", res.RequestID),
		zap.String("goal", res.Goal),
		zap.String("strategy", string(strategy)),
		zap.String("backend", res.Backend),
		zap.String("status", string(res.Status)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// CheckSat routes a satisfiability question to the best-suited backend.
func (m *Manager) CheckSat(ctx context.Context, f logic.Formula) (string, bridge.Result, error) {
	if f == nil {
		return "", bridge.Result{}, errors.New("prover: nil formula")
	}
	p, err := m.SelectBestProver(f)
	if err != nil {
		return "", bridge.Result{}, err
	}
	return p.Name(), p.CheckSat(ctx, f), nil
}

func (m *Manager) proveBest(ctx context.Context, goal logic.Formula, axioms []logic.Formula, res *UnifiedResult) {
	p, err := m.SelectBestProver(goal)
	if err != nil {
		res.Status = bridge.StatusError
		res.Err = err
		return
	}
	r := p.Prove(ctx, goal, axioms)
	res.Attempts = []Attempt{{Backend: p.Name(), Result: r}}
	res.Backend = p.Name()
	res.Status = r.Status
	res.IsValid = r.IsValid
	res.Err = r.Err
	if r.IsValid {
		res.Confidence = confidenceSingle
	}
}

func (m *Manager) proveSequential(ctx context.Context, goal logic.Formula, axioms []logic.Formula, res *UnifiedResult) {
	for _, p := range m.registry {
		r := p.Prove(ctx, goal, axioms)
		res.Attempts = append(res.Attempts, Attempt{Backend: p.Name(), Result: r})
		if r.IsValid {
			res.Backend = p.Name()
			res.Status = r.Status
			res.IsValid = true
			res.Confidence = confidenceSingle
			return
		}
	}
	aggregate(res)
}

// proveParallel submits one task per backend to a bounded pool and returns
// on the first valid verdict. Remaining tasks are not cancelled; their
// results land in a buffered channel and are discarded.
func (m *Manager) proveParallel(ctx context.Context, goal logic.Formula, axioms []logic.Formula, res *UnifiedResult) {
	backends := m.registry
	results := make(chan Attempt, len(backends))

	var g errgroup.Group
	g.SetLimit(m.cfg.MaxParallel)
	go func() {
		for _, p := range backends {
			p := p
			g.Go(func() error {
				results <- Attempt{Backend: p.Name(), Result: p.Prove(ctx, goal, axioms)}
				return nil
			})
		}
	}()

	for range backends {
		a := <-results
		res.Attempts = append(res.Attempts, a)
		if a.Result.IsValid {
			res.Backend = a.Backend
			res.Status = a.Result.Status
			res.IsValid = true
			res.Confidence = confidenceParallel
			return
		}
	}
	aggregate(res)
}

// aggregate settles the verdict when no backend proved the goal: a refuting
// backend outranks an undecided one, which outranks timeouts and errors.
func aggregate(res *UnifiedResult) {
	priority := []bridge.ProofStatus{
		bridge.StatusInvalid,
		bridge.StatusUnknown,
		bridge.StatusTimeout,
		bridge.StatusError,
	}
	for _, want := range priority {
		for _, a := range res.Attempts {
			if a.Result.Status == want {
				res.Status = want
				res.Backend = a.Backend
				res.Err = a.Result.Err
				return
			}
		}
	}
	res.Status = bridge.StatusUnknown
}

// Stats returns a copy of the usage counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := Stats{
		TotalProofs: m.stats.TotalProofs,
		ValidProofs: m.stats.ValidProofs,
		ByBackend:   make(map[string]int, len(m.stats.ByBackend)),
	}
	for k, v := range m.stats.ByBackend {
		out.ByBackend[k] = v
	}
	return out
}

// ResetStats zeroes the usage counters.
func (m *Manager) ResetStats() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = Stats{ByBackend: map[string]int{}}
}

// isPureConnective reports whether the goal is a connective tree over atoms,
// with no quantifiers or operator wrappers anywhere below.
func isPureConnective(f logic.Formula) bool {
	c, ok := f.(*logic.Connective)
	if !ok {
		return false
	}
	for _, o := range c.Operands {
		if !connectiveSubtree(o) {
			return false
		}
	}
	return true
}

func connectiveSubtree(f logic.Formula) bool {
	switch g := f.(type) {
	case *logic.Atomic:
		return true
	case *logic.Connective:
		for _, o := range g.Operands {
			if !connectiveSubtree(o) {
				return false
			}
		}
		return true
	}
	return false
}

func isGroundAtom(f logic.Formula) bool {
	a, ok := f.(*logic.Atomic)
	if !ok {
		return false
	}
	return len(a.FreeVariables()) == 0
}
