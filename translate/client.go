package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/minios-linux/localetrans/locale"
	"go.uber.org/zap"
)

// Submission formats understood by the providers.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// ---------------------------------------------------------------------------
// HTTP client with proxy support
// ---------------------------------------------------------------------------

func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	// --proxy wins over HTTP_PROXY/HTTPS_PROXY
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// ---------------------------------------------------------------------------
// Text submission
// ---------------------------------------------------------------------------

// TranslateText submits one string to the configured provider and returns
// the text found at the provider's result path. format is FormatText or
// FormatHTML. No placeholder handling happens here.
func (t *Translator) TranslateText(ctx context.Context, content, from, to, format string) (string, error) {
	desc, err := Lookup(t.opts.Provider)
	if err != nil {
		return "", err
	}

	endpoint := desc.URL
	if t.opts.URL != "" {
		endpoint = t.opts.URL
	}
	if endpoint == "" {
		return "", &ConfigurationError{
			Provider: desc.ID,
			Reason:   "no endpoint URL configured; set a URL override",
		}
	}

	params := desc.requestParams(t.opts.APIKey, content, from, to, format)
	req, err := newRequest(ctx, desc.Method, endpoint, params)
	if err != nil {
		return "", &ConfigurationError{Provider: desc.ID, Reason: err.Error()}
	}

	t.log.Debug("provider request",
		zap.String("provider", desc.ID),
		zap.String("method", desc.Method),
		zap.String("url", endpoint),
		zap.String("format", format),
		zap.Int("length", len(content)),
	)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &NetworkError{Provider: desc.ID, URL: endpoint, Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", &NetworkError{Provider: desc.ID, URL: endpoint, Err: fmt.Errorf("reading response: %w", err)}
	}

	t.log.Debug("provider response",
		zap.String("provider", desc.ID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	return decodeResponse(desc, resp.StatusCode, body)
}

// requestParams maps the logical request roles onto the provider's literal
// parameter names. Roles with no name are skipped, and so is an empty API key.
func (d Descriptor) requestParams(apiKey, content, from, to, format string) map[string]string {
	params := make(map[string]string, 5)
	set := func(name, value string) {
		if name != "" {
			params[name] = value
		}
	}

	if apiKey != "" {
		set(d.Params.APIKey, apiKey)
	}
	set(d.Params.Query, content)
	if d.Params.Source != "" && d.Params.Source == d.Params.Target {
		set(d.Params.Source, from+d.PairSeparator+to)
	} else {
		set(d.Params.Source, from)
		set(d.Params.Target, to)
	}
	set(d.Params.Format, format)
	return params
}

// newRequest builds a GET with query parameters or a request carrying a
// JSON body for every other verb.
func newRequest(ctx context.Context, method, endpoint string, params map[string]string) (*http.Request, error) {
	var req *http.Request

	if method == http.MethodGet {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid URL %q: %w", endpoint, err)
		}
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		req, err = http.NewRequestWithContext(ctx, method, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
	} else {
		body, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// decodeResponse checks for an error payload and then walks the result path.
func decodeResponse(desc Descriptor, status int, body []byte) (string, error) {
	ok := status >= 200 && status < 300

	v, err := locale.Decode(body)
	if err != nil {
		if !ok {
			return "", &ProviderError{Provider: desc.ID, StatusCode: status, Message: truncate(string(body), 500)}
		}
		return "", &MalformedResponseError{Provider: desc.ID, Reason: err.Error()}
	}

	if obj, isObj := v.AsObject(); isObj {
		if errVal, found := obj.Get("error"); found && errVal.Truthy() {
			pe := &ProviderError{Provider: desc.ID, Message: errorMessage(errVal)}
			if !ok {
				pe.StatusCode = status
			}
			return "", pe
		}
	}

	if !ok {
		return "", &ProviderError{Provider: desc.ID, StatusCode: status, Message: truncate(string(body), 500)}
	}

	text, err := desc.ResultPath.Resolve(v)
	if err != nil {
		return "", &MalformedResponseError{Provider: desc.ID, Path: desc.ResultPath.String(), Reason: err.Error()}
	}
	return text, nil
}

// errorMessage extracts a readable message from an "error" field, which is
// a plain string for most providers and {"message": ...} for Google.
func errorMessage(v locale.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	if obj, ok := v.AsObject(); ok {
		if m, found := obj.Get("message"); found {
			if s, ok := m.AsString(); ok {
				return s
			}
		}
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return v.Kind().String()
	}
	return truncate(string(data), 500)
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
