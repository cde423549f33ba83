package lang

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alemhq/alem/pkg/errorsx"
	"github.com/alemhq/alem/pkg/llm"
)

const detectionPromptTemplate = `Determine the language of the following text.
Respond ONLY with the language code: 'en' for English, 'am' for Amharic, 'om' for Oromifa, or 'ti' for Tigrigna.
If uncertain, respond with 'en'.

Text: "%s"`

// Identifier classifies a text span into a supported code using a single
// external classify call. It is deliberately not memoized; callers that want
// caching use DetectCached with a session-scoped cache.
type Identifier struct {
	svc      llm.Service
	log      *slog.Logger
	fallback Code
}

type IdentifierOption func(*Identifier)

// WithFallback sets the code detection collapses to. Unsupported values keep
// the package Default.
func WithFallback(c Code) IdentifierOption {
	return func(d *Identifier) {
		if Supported(c) {
			d.fallback = c
		}
	}
}

func NewIdentifier(svc llm.Service, log *slog.Logger, opts ...IdentifierOption) *Identifier {
	if log == nil {
		log = slog.Default()
	}
	d := &Identifier{svc: svc, log: log, fallback: Default}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fallback returns the code detection collapses to.
func (d *Identifier) Fallback() Code { return d.fallback }

// Detect returns the detected code for text. The code is always a supported
// member: classification misses and call failures collapse to the configured
// fallback, with the returned error carrying the reason for observability
// only.
func (d *Identifier) Detect(ctx context.Context, text string) (Code, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return d.fallback, nil
	}
	raw, err := d.svc.Classify(ctx, fmt.Sprintf(detectionPromptTemplate, text))
	if err != nil {
		d.log.Debug("language detection degraded", "err", err)
		return d.fallback, errorsx.Wrap(err, errorsx.ReasonClassifyCall)
	}
	code := Code(strings.ToLower(strings.TrimSpace(raw)))
	if !Supported(code) {
		return d.fallback, errorsx.New(errorsx.ReasonClassifyInvalid)
	}
	return code, nil
}

// DetectCached consults cache before issuing a classify call. Only clean
// detections are cached; a degraded default is re-attempted on the next turn.
// Messages are immutable once appended, so entries are never invalidated.
func (d *Identifier) DetectCached(ctx context.Context, text string, cache map[string]Code) Code {
	if code, ok := cache[text]; ok && Supported(code) {
		return code
	}
	code, err := d.Detect(ctx, text)
	if err == nil && cache != nil {
		cache[text] = code
	}
	return code
}
