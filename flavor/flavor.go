package flavor

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/hollow-pines/utils"
)

// Prompt is one request for a line of flavor text
type Prompt struct {
	ID   string
	Text string
}

// NewPrompt tags text with a fresh request ID
func NewPrompt(text string) Prompt {
	return Prompt{ID: uuid.NewString(), Text: text}
}

// Provider turns a prompt into a short line of text
type Provider interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// FallbackProvider answers every prompt with an omen seeded by the prompt
// text, so the same event always reads the same way.
type FallbackProvider struct{}

func (FallbackProvider) Generate(_ context.Context, prompt Prompt) (string, error) {
	h := fnv.New64a()
	h.Write([]byte(prompt.Text))
	return utils.GenerateOmen(rand.New(rand.NewSource(int64(h.Sum64())))), nil
}

// Narrator requests flavor text in the background and hands the result to a
// callback. It never blocks the caller.
type Narrator struct {
	provider Provider
	fallback Provider
	timeout  time.Duration
	log      *log.Logger
}

// NewNarrator wraps provider. A nil provider narrates with omens only.
func NewNarrator(provider Provider, timeout time.Duration) *Narrator {
	if provider == nil {
		provider = FallbackProvider{}
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Narrator{
		provider: provider,
		fallback: FallbackProvider{},
		timeout:  timeout,
		log:      log.WithPrefix("flavor"),
	}
}

// Narrate implements game.Narrator
func (n *Narrator) Narrate(text string, deliver func(string)) {
	go func() {
		deliver(n.Request(context.Background(), NewPrompt(text)))
	}()
}

// Request runs the provider with the narrator's timeout and falls back to an
// omen on any failure.
func (n *Narrator) Request(ctx context.Context, prompt Prompt) string {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	text, err := n.provider.Generate(ctx, prompt)
	if err == nil && text != "" {
		return text
	}
	if err != nil {
		n.log.Warn("flavor provider failed", "id", prompt.ID, "err", err)
	}

	text, _ = n.fallback.Generate(ctx, prompt)
	return text
}
