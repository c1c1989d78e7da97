package translate

import "net/http"

// ---------------------------------------------------------------------------
// Provider IDs
// ---------------------------------------------------------------------------

const (
	ProviderGoogle         = "google"
	ProviderYandex         = "yandex"
	ProviderLibreTranslate = "libretranslate"
	ProviderMyMemory       = "mymemory"
	ProviderDeepLX         = "deeplx"
	ProviderCustom         = "custom"
)

// DefaultProvider is used when no provider is configured.
const DefaultProvider = ProviderLibreTranslate

// ---------------------------------------------------------------------------
// Provider descriptors
// ---------------------------------------------------------------------------

// Params maps each logical request role to the literal parameter name a
// provider expects. An empty name means the role is not sent.
type Params struct {
	APIKey string
	Query  string
	Source string
	Target string
	Format string
}

// Descriptor describes how to talk to one translation service.
type Descriptor struct {
	// ID is the provider identifier used on the command line.
	ID string
	// Name is the display name.
	Name string
	// URL is the default endpoint. Empty means a URL override is required.
	URL string
	// Method is the HTTP verb: GET sends query parameters, POST a JSON body.
	Method string
	// Params holds the provider's literal parameter names.
	Params Params
	// PairSeparator joins source and target when both map to the same
	// parameter name (e.g. Yandex "lang=en-es").
	PairSeparator string
	// ResultPath locates the translated string in the response body.
	ResultPath ResultPath
}

// registry is built once and never mutated; Lookup hands out copies.
var registry = []Descriptor{
	{
		ID:     ProviderGoogle,
		Name:   "Google",
		URL:    "https://translation.googleapis.com/language/translate/v2",
		Method: http.MethodPost,
		Params: Params{
			APIKey: "key",
			Query:  "q",
			Source: "source",
			Target: "target",
			Format: "format",
		},
		ResultPath: ParseResultPath("translations.0.translatedText"),
	},
	{
		ID:     ProviderYandex,
		Name:   "Yandex",
		URL:    "https://translate.yandex.net/api/v1.5/tr.json/translate",
		Method: http.MethodGet,
		Params: Params{
			APIKey: "key",
			Query:  "text",
			Source: "lang",
			Target: "lang",
			Format: "format",
		},
		PairSeparator: "-",
		ResultPath:    ParseResultPath("text.0"),
	},
	{
		ID:     ProviderLibreTranslate,
		Name:   "LibreTranslate",
		URL:    "https://libretranslate.com/translate",
		Method: http.MethodPost,
		Params: Params{
			APIKey: "api_key",
			Query:  "q",
			Source: "source",
			Target: "target",
			Format: "format",
		},
		ResultPath: ParseResultPath("translatedText"),
	},
	{
		ID:     ProviderMyMemory,
		Name:   "MyMemory",
		URL:    "https://api.mymemory.translated.net/get",
		Method: http.MethodGet,
		Params: Params{
			APIKey: "key",
			Query:  "q",
			Source: "langpair",
			Target: "langpair",
		},
		PairSeparator: "|",
		ResultPath:    ParseResultPath("responseData.translatedText"),
	},
	{
		ID:     ProviderDeepLX,
		Name:   "DeepLX",
		URL:    "http://localhost:1188/translate",
		Method: http.MethodPost,
		Params: Params{
			Query:  "text",
			Source: "source_lang",
			Target: "target_lang",
		},
		ResultPath: ParseResultPath("data"),
	},
	{
		ID:     ProviderCustom,
		Name:   "Custom (LibreTranslate-compatible)",
		Method: http.MethodPost,
		Params: Params{
			APIKey: "api_key",
			Query:  "q",
			Source: "source",
			Target: "target",
			Format: "format",
		},
		ResultPath: ParseResultPath("translatedText"),
	},
}

// Lookup returns the descriptor for id.
func Lookup(id string) (Descriptor, error) {
	for _, d := range registry {
		if d.ID == id {
			return d.clone(), nil
		}
	}
	return Descriptor{}, &UnknownProviderError{ID: id}
}

// Providers returns all descriptors in display order.
func Providers() []Descriptor {
	out := make([]Descriptor, len(registry))
	for i, d := range registry {
		out[i] = d.clone()
	}
	return out
}

// ProviderIDs returns the IDs of all registered providers.
func ProviderIDs() []string {
	ids := make([]string, len(registry))
	for i, d := range registry {
		ids[i] = d.ID
	}
	return ids
}

func (d Descriptor) clone() Descriptor {
	d.ResultPath = append(ResultPath(nil), d.ResultPath...)
	return d
}
