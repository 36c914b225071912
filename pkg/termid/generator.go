package termid

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// DefaultMaxAttempts is the number of candidates tried for one label before
// generation gives up.
const DefaultMaxAttempts = 10

const (
	uuidPartLen = 8
	hashPartLen = 10
)

var errCollision = errors.New("identifier already registered")

// Generator mints identifiers for a Format and claims them in its Registry.
type Generator struct {
	format   Format
	registry *Registry
	newUUID  func() string
	logger   hclog.Logger
}

// Option configures a Generator or a Processor.
type Option func(*settings)

type settings struct {
	logger  hclog.Logger
	newUUID func() string
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:  hclog.NewNullLogger(),
		newUUID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger hclog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithUUIDSource replaces the random UUID source used by MethodUUID. The
// function must return at least 8 lowercase hex characters.
func WithUUIDSource(fn func() string) Option {
	return func(s *settings) {
		if fn != nil {
			s.newUUID = fn
		}
	}
}

// NewGenerator creates a Generator with an empty Registry.
func NewGenerator(format Format, opts ...Option) *Generator {
	s := newSettings(opts)
	return &Generator{
		format:   format,
		registry: NewRegistry(),
		newUUID:  s.newUUID,
		logger:   s.logger,
	}
}

// Format returns the identifier format.
func (g *Generator) Format() Format {
	return g.format
}

// Registry returns the registry shared with callers.
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Register claims an existing identifier so that it is never generated again.
func (g *Generator) Register(id string) {
	g.registry.Register(id)
}

// GenerateOption tunes a single Generate call.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	checkCollision bool
	maxAttempts    int
}

// WithoutCollisionCheck returns the first candidate without consulting or
// updating the registry. The caller is responsible for registering it.
func WithoutCollisionCheck() GenerateOption {
	return func(c *generateConfig) {
		c.checkCollision = false
	}
}

// WithCollisionCheck toggles registry checks explicitly.
func WithCollisionCheck(enabled bool) GenerateOption {
	return func(c *generateConfig) {
		c.checkCollision = enabled
	}
}

// WithMaxAttempts sets how many candidates are tried before failing.
func WithMaxAttempts(n int) GenerateOption {
	return func(c *generateConfig) {
		c.maxAttempts = n
	}
}

// Generate produces a new identifier for label.
//
// With MethodHash the first candidate depends only on the label, and retry n
// hashes "{label}-attempt-{n}" instead, so the sequence of candidates is
// reproducible. With collision checking enabled (the default) the returned
// identifier is registered; a taken candidate triggers a retry until the
// attempt ceiling is reached, at which point an exhaustion error is returned.
func (g *Generator) Generate(label string, method Method, opts ...GenerateOption) (string, error) {
	cfg := generateConfig{
		checkCollision: true,
		maxAttempts:    DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := method.pattern(); err != nil {
		return "", err
	}
	if cfg.maxAttempts < 1 {
		return "", g.exhausted(label, cfg.maxAttempts, nil)
	}

	attempt := 0
	operation := func() (string, error) {
		candidate := g.format.Compose(g.uniquePart(label, method, attempt))
		attempt++

		if !cfg.checkCollision {
			return candidate, nil
		}
		if !g.registry.Claim(candidate) {
			return "", fmt.Errorf("%w: %s", errCollision, candidate)
		}
		return candidate, nil
	}
	notify := func(err error, _ time.Duration) {
		g.logger.Debug("identifier collision, retrying",
			"label", label,
			"attempt", attempt,
			"error", err,
		)
	}

	id, err := backoff.RetryNotifyWithData(operation, retryPolicy(cfg.maxAttempts), notify)
	if err != nil {
		return "", g.exhausted(label, cfg.maxAttempts, err)
	}
	return id, nil
}

func (g *Generator) uniquePart(label string, method Method, attempt int) string {
	if method == MethodUUID {
		return g.newUUID()[:uuidPartLen]
	}

	input := label
	if attempt > 0 {
		input = fmt.Sprintf("%s-attempt-%d", label, attempt)
	}
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:hashPartLen]
}

func (g *Generator) exhausted(label string, maxAttempts int, cause error) *Error {
	e := newError(KindExhaustion, "generate",
		"could not generate a unique identifier after %d attempts", maxAttempts)
	e.Values = []string{label}
	e.Err = cause
	return e
}

// retryPolicy allows maxAttempts tries in total with no delay between them.
// WithMaxRetries treats 0 as unlimited, so a single attempt needs StopBackOff.
func retryPolicy(maxAttempts int) backoff.BackOff {
	if maxAttempts <= 1 {
		return &backoff.StopBackOff{}
	}
	return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(maxAttempts-1))
}
