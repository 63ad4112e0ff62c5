package dataset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Provider fetches raw dataset files from a remote source.
type Provider interface {
	FetchFile(name string) ([]byte, error)
	Name() string
}

// HTTPProvider implements Provider against a dataset REST API.
type HTTPProvider struct {
	BaseURL string
	APIKey  string
	Slug    string
	Client  *http.Client
}

// NewHTTPProvider creates a provider with optional proxy support.
func NewHTTPProvider(baseURL, apiKey, slug, proxyURL string) *HTTPProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Slug:    slug,
		Client: &http.Client{
			Timeout:   120 * time.Second,
			Transport: transport,
		},
	}
}

func (p *HTTPProvider) Name() string { return "http" }

// FetchFile downloads a single file of the configured dataset.
func (p *HTTPProvider) FetchFile(name string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/api/v1/datasets/%s/files/%s",
		p.BaseURL, p.Slug, url.PathEscape(name))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d, body: %s", name, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

// MockProvider serves fixed in-memory files for development and testing.
type MockProvider struct {
	Files map[string][]byte
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchFile(name string) ([]byte, error) {
	data, ok := m.Files[name]
	if !ok {
		return nil, fmt.Errorf("mock provider: no such file %q", name)
	}
	return data, nil
}
