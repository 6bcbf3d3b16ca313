package llm

import (
	"context"
	"errors"
)

var ErrEmptyCompletion = errors.New("llm returned an empty completion")

// Provider is a remote text-generation service. Callers treat every error the
// same way, so implementations do not need typed errors.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text string, lang string) (string, error)
	Name() string
	Model() string
}

// Capability says whether a remote provider may be used. The zero value is
// unavailable.
type Capability struct {
	provider Provider
}

func Available(p Provider) Capability {
	return Capability{provider: p}
}

func Unavailable() Capability {
	return Capability{}
}

func (c Capability) Provider() (Provider, bool) {
	return c.provider, c.provider != nil
}

func (c Capability) Name() string {
	if c.provider == nil {
		return "local"
	}
	return c.provider.Name()
}
