package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"github.com/confvid/go_confvid/internal/engine"
	"golang.org/x/time/rate"
)

const (
	ytBrowseURL      = "https://www.youtube.com/youtubei/v1/browse"
	ytPlayerURL      = "https://www.youtube.com/youtubei/v1/player"
	ytWebVersion     = "2.20250222.10.00"
	ytAndroidVersion = "20.10.38"
	ytAndroidUA      = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"

	userAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// continuation pages per listing; a channel page carries ~30 videos
	maxContinuationPages = 30

	maxResponseBytes = 8 * 1024 * 1024
)

// Innertube talks to YouTube's internal JSON API. It implements
// videos.Source. All requests share one rate limiter so channel walks,
// playlist walks and detail extraction never exceed ScrapeRPS combined.
type Innertube struct {
	limiter *rate.Limiter
	visitor string
}

// NewInnertube creates a rate-limited Innertube client.
func NewInnertube() *Innertube {
	rps := engine.Cfg.ScrapeRPS
	if rps <= 0 {
		rps = 1
	}
	return &Innertube{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		visitor: generateVisitorData(),
	}
}

// --- WEB client context ---

type ytWebClientCtx struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	VisitorData   string `json:"visitorData,omitempty"`
	Hl            string `json:"hl,omitempty"`
	Gl            string `json:"gl,omitempty"`
}

type ytWebUser struct {
	EnableSafetyMode bool `json:"enableSafetyMode"`
}

type ytWebReqCtx struct {
	UseSsl bool `json:"useSsl"`
}

// generateVisitorData creates a random 11-char visitor ID for Innertube requests.
func generateVisitorData() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	b := make([]byte, 11)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))] //nolint:gosec // non-cryptographic use
	}
	return string(b)
}

// webContext builds the standard WEB client context for Innertube payloads.
func (c *Innertube) webContext() map[string]any {
	return map[string]any{
		"client": ytWebClientCtx{
			ClientName:    "WEB",
			ClientVersion: ytWebVersion,
			VisitorData:   c.visitor,
			Hl:            "en",
			Gl:            "US",
		},
		"user":    ytWebUser{EnableSafetyMode: false},
		"request": ytWebReqCtx{UseSsl: true},
	}
}

// postInnertube POSTs to an Innertube endpoint with WEB client headers.
// Rate-limited; transient transport failures are retried by engine.RetryHTTP.
func (c *Innertube) postInnertube(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?prettyPrint=false", bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "*/*")
		req.Header.Set("User-Agent", userAgentChrome)
		req.Header.Set("X-Youtube-Client-Name", "1")
		req.Header.Set("X-Youtube-Client-Version", ytWebVersion)
		req.Header.Set("X-Goog-Visitor-Id", c.visitor)
		req.Header.Set("Origin", "https://www.youtube.com")
		req.Header.Set("Referer", "https://www.youtube.com/")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("innertube [%s]: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// fetchPage GETs a YouTube HTML page (used only to resolve channel IDs).
func (c *Innertube) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgentChrome)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, pageURL)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// walkKey recursively walks raw JSON, invoking visit for each value found
// under the given object key. visit returns false to stop the walk.
func walkKey(data json.RawMessage, key string, visit func(json.RawMessage) bool) {
	stopped := false
	var walk func(v json.RawMessage)
	walk = func(v json.RawMessage) {
		if stopped {
			return
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(v, &obj); err == nil {
			if raw, ok := obj[key]; ok {
				if !visit(raw) {
					stopped = true
					return
				}
			}
			for _, child := range obj {
				if stopped {
					return
				}
				walk(child)
			}
			return
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(v, &arr); err == nil {
			for _, item := range arr {
				if stopped {
					return
				}
				walk(item)
			}
		}
	}
	walk(data)
}

// firstContinuationToken finds the next continuation token in a browse
// response, or "" when the listing is exhausted.
func firstContinuationToken(data json.RawMessage) string {
	var token string
	walkKey(data, "continuationCommand", func(raw json.RawMessage) bool {
		var cc struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(raw, &cc); err == nil && cc.Token != "" {
			token = cc.Token
			return false
		}
		return true
	})
	return token
}
