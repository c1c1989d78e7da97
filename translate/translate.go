// Package translate translates nested locale trees through pluggable HTTP
// translation services (Google, Yandex, LibreTranslate, MyMemory, DeepLX, or
// any LibreTranslate-compatible endpoint).
//
// Every string leaf is submitted separately. {{ name }} templates are
// swapped for numbered tokens before submission and restored afterwards,
// so providers never see or reorder template syntax.
package translate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/minios-linux/localetrans/locale"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var validate = validator.New()

// ---------------------------------------------------------------------------
// Translation options
// ---------------------------------------------------------------------------

// Options configures a Translator. It is read once by New and never
// modified afterwards.
type Options struct {
	// Provider is the registry ID of the translation service.
	Provider string `validate:"required"`
	// APIKey is sent under the provider's key parameter when non-empty.
	APIKey string
	// URL overrides the provider's endpoint.
	URL string `validate:"omitempty,url"`
	// Concurrency is the number of leaves translated at once (0 or 1 = sequential).
	Concurrency int `validate:"gte=0"`
	// PreserveValues copies numbers, booleans, arrays and nulls into the
	// output. By default such leaves are dropped.
	PreserveValues bool
	// Timeout is the per-request timeout (default 60s).
	Timeout time.Duration `validate:"gte=0"`
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string `validate:"omitempty,url"`
	// HTTPClient replaces the default client (Timeout and Proxy are then ignored).
	HTTPClient *http.Client `validate:"-"`
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger `validate:"-"`
	// OnProgress is called after each translated leaf. With Concurrency > 1
	// it is called from several goroutines.
	OnProgress func(done, total int) `validate:"-"`
}

func (o *Options) effectiveTimeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return 60 * time.Second
}

func (o *Options) effectiveConcurrency() int {
	if o.Concurrency > 1 {
		return o.Concurrency
	}
	return 1
}

// ---------------------------------------------------------------------------
// Translator
// ---------------------------------------------------------------------------

// Translator holds an immutable provider configuration and is safe for
// concurrent use.
type Translator struct {
	opts   Options
	client *http.Client
	log    *zap.Logger
}

// New validates opts and returns a Translator. The provider ID itself is
// resolved on every request, so an unknown ID surfaces from Translate.
func New(opts Options) (*Translator, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid translator options: %w", err)
	}

	t := &Translator{opts: opts, client: opts.HTTPClient, log: opts.Logger}
	if t.client == nil {
		t.client = makeHTTPClient(opts.Proxy, opts.effectiveTimeout())
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	return t, nil
}

// WithURL returns a copy of t that sends requests to u instead of the
// provider's default endpoint.
func (t *Translator) WithURL(u string) *Translator {
	c := *t
	c.opts.URL = u
	return &c
}

// leaf is a string value scheduled for translation. dst already holds key
// (with a placeholder value) so the output keeps the source key order.
type leaf struct {
	path string
	text string
	dst  *locale.Tree
	key  string
}

// Translate returns a copy of tree with every string leaf translated from
// sourceLang to targetLang. Nested objects are translated recursively.
// Other values are dropped unless Options.PreserveValues is set.
//
// If any leaf fails the whole call fails with a *TranslationError and no
// partial tree is returned.
func (t *Translator) Translate(ctx context.Context, tree *locale.Tree, sourceLang, targetLang string) (*locale.Tree, error) {
	out := locale.NewTree()
	var leaves []leaf
	t.collect(tree, out, "", &leaves)

	total := len(leaves)
	results := make([]string, total)
	var done atomic.Int64

	run := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		l := leaves[i]
		s, err := t.translateString(ctx, l.text, sourceLang, targetLang)
		if err != nil {
			return &TranslationError{Key: l.path, Err: err}
		}
		results[i] = s
		if t.opts.OnProgress != nil {
			t.opts.OnProgress(int(done.Add(1)), total)
		}
		return nil
	}

	t.log.Debug("translating tree",
		zap.String("provider", t.opts.Provider),
		zap.String("from", sourceLang),
		zap.String("to", targetLang),
		zap.Int("leaves", total),
		zap.Int("concurrency", t.opts.effectiveConcurrency()),
	)

	if conc := t.opts.effectiveConcurrency(); conc == 1 {
		for i := range leaves {
			if err := run(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(conc)
		for i := range leaves {
			i := i
			g.Go(func() error { return run(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for i, l := range leaves {
		l.dst.Set(l.key, locale.String(results[i]))
	}
	return out, nil
}

// collect mirrors the structure of src into dst and records every string
// leaf in encounter order.
func (t *Translator) collect(src, dst *locale.Tree, prefix string, leaves *[]leaf) {
	for _, key := range src.Keys() {
		v, _ := src.Get(key)
		path := joinKey(prefix, key)

		switch v.Kind() {
		case locale.KindString:
			s, _ := v.AsString()
			dst.Set(key, locale.String(""))
			*leaves = append(*leaves, leaf{path: path, text: s, dst: dst, key: key})
		case locale.KindObject:
			sub, _ := v.AsObject()
			child := locale.NewTree()
			dst.Set(key, locale.Object(child))
			t.collect(sub, child, path, leaves)
		case locale.KindNull, locale.KindBool, locale.KindNumber, locale.KindArray:
			if t.opts.PreserveValues {
				dst.Set(key, v)
			}
		}
	}
}

// translateString protects templates, submits the text and restores them.
func (t *Translator) translateString(ctx context.Context, s, from, to string) (string, error) {
	work, vars := protect(s)

	format := FormatText
	if isHTML(work) {
		format = FormatHTML
	}

	translated, err := t.TranslateText(ctx, work, from, to, format)
	if err != nil {
		return "", err
	}
	return vars.restore(translated), nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.Join([]string{prefix, key}, ".")
}
