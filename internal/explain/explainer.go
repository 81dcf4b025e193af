package explain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/disha-labs/disha/internal/ai"
	"github.com/disha-labs/disha/internal/platform/cache"
)

// fallbackExplanation is returned whenever no generator is configured or the
// generation call fails. Requests must never fail because the generator is
// unreachable.
const fallbackExplanation = "Based on your preferences, this course offers a strong match with your " +
	"desired stability, analytical depth, and long-term career growth. " +
	"It balances study duration with future opportunities and is likely to " +
	"provide a healthy income trajectory over time."

const (
	defaultTimeout   = 10 * time.Second
	defaultCacheTTL  = 24 * time.Hour
	generateMaxToken = 1024
)

// Config holds dependencies for an Explainer. Router and Cache are both
// optional; without a router every explanation is the fallback text.
type Config struct {
	Router   *ai.Router
	Cache    *cache.Cache
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Explainer produces explanations for top-ranked courses.
type Explainer struct {
	router   *ai.Router
	cache    *cache.Cache
	timeout  time.Duration
	cacheTTL time.Duration
}

// Response carries the prompt that was (or would have been) sent to the
// generator alongside the explanation text.
type Response struct {
	Prompt      string `json:"prompt"`
	Explanation string `json:"explanation"`
}

// New creates an Explainer.
func New(cfg Config) *Explainer {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &Explainer{
		router:   cfg.Router,
		cache:    cfg.Cache,
		timeout:  timeout,
		cacheTTL: ttl,
	}
}

// Explain builds the prompt and asks the generator for an explanation. The
// call is bounded by the configured timeout; on any failure the fixed
// fallback text is returned. The prompt is a pure function of the request,
// so generated explanations are cached by prompt hash when a cache is
// configured.
func (e *Explainer) Explain(ctx context.Context, req Request) Response {
	prompt := BuildPrompt(req)

	if e.router == nil || !e.router.HasProvider() {
		return Response{Prompt: prompt, Explanation: fallbackExplanation}
	}

	key := cacheKey(prompt)
	if e.cache != nil {
		if text, ok := e.cache.Get(ctx, key); ok {
			slog.Debug("explanation cache hit", "course", req.TopCourse)
			return Response{Prompt: prompt, Explanation: text}
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.router.Generate(genCtx, ai.GenerateRequest{
		Prompt:    prompt,
		MaxTokens: generateMaxToken,
	})
	if err != nil {
		slog.Warn("explanation generation failed, using fallback",
			"course", req.TopCourse,
			"error", err,
		)
		return Response{Prompt: prompt, Explanation: fallbackExplanation}
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, resp.Text, e.cacheTTL); err != nil {
			slog.Warn("failed to cache explanation", "error", err)
		}
	}

	return Response{Prompt: prompt, Explanation: resp.Text}
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "explain:" + hex.EncodeToString(sum[:])
}
