// Package appwrite talks to an Appwrite-compatible REST endpoint. The session
// credential is the cookie the backend sets on login; it lives in the
// client's cookie jar and is never inspected.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/BloggingApp/blog-client/internal/baas"
)

const (
	projectHeader        = "X-Appwrite-Project"
	responseFormatHeader = "X-Appwrite-Response-Format"
	fallbackCookieHeader = "X-Fallback-Cookies"
	responseFormat       = "1.5.0"
)

type conn struct {
	endpoint   string
	projectID  string
	httpClient *http.Client

	mu              sync.RWMutex
	fallbackCookies string
}

// New returns a client for endpoint (e.g. https://cloud.appwrite.io/v1).
func New(endpoint, projectID string) (*baas.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &conn{
		endpoint:  strings.TrimSuffix(endpoint, "/"),
		projectID: projectID,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}

	return &baas.Client{
		Account:   &account{conn: c},
		Databases: &databases{conn: c},
		Storage:   &storage{conn: c},
	}, nil
}

func (c *conn) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}

	return c.do(ctx, method, path, reader, contentType, out)
}

func (c *conn) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(projectHeader, c.projectID)
	req.Header.Set(responseFormatHeader, responseFormat)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.mu.RLock()
	if c.fallbackCookies != "" {
		req.Header.Set(fallbackCookieHeader, c.fallbackCookies)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return baas.NewError(0, baas.TypeUnreachable, err.Error())
	}
	defer resp.Body.Close()

	if fallback := resp.Header.Get(fallbackCookieHeader); fallback != "" {
		c.mu.Lock()
		c.fallbackCookies = fallback
		c.mu.Unlock()
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return baas.NewError(resp.StatusCode, baas.TypeGeneralUnknown, fmt.Sprintf("failed to decode response: %s", err.Error()))
	}

	return nil
}

func decodeError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return baas.NewError(resp.StatusCode, baas.TypeGeneralUnknown, http.StatusText(resp.StatusCode))
	}

	var apiErr baas.Error
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return baas.NewError(resp.StatusCode, baas.TypeGeneralUnknown, message)
	}
	if apiErr.Code == 0 {
		apiErr.Code = resp.StatusCode
	}

	return &apiErr
}
