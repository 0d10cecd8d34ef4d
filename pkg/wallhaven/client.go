package wallhaven

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"wallpick/pkg/errors"
	"wallpick/pkg/logger"
)

// Client is a wallhaven API client. Search requests and image downloads use
// separate HTTP clients because image payloads warrant a longer timeout.
type Client struct {
	apiClient      *http.Client
	downloadClient *http.Client
	headers        map[string]string
	baseURL        string
	logger         logger.Logger
}

// NewClient creates a new wallhaven API client
func NewClient(baseURL string, searchTimeout, downloadTimeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		apiClient: &http.Client{
			Timeout: searchTimeout,
		},
		downloadClient: &http.Client{
			Timeout: downloadTimeout,
		},
		headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:76.0) Gecko/20100101 Firefox/76.0",
			"Accept":     "application/json, image/*;q=0.9, */*;q=0.8",
		},
		baseURL: baseURL,
		logger:  log,
	}
}

// BaseURL returns the configured API host
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(httpClient *http.Client, req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.Redacted(),
	})

	resp, err := httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.Redacted(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.Wrap(errors.ErrorTypeNetwork, err, "request failed")
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.Redacted(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// get performs a GET request with the given client
func (c *Client) get(httpClient *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeNetwork, err, "failed to create request")
	}
	return c.doRequest(httpClient, req)
}

// checkResponseStatus maps non-success HTTP statuses to typed errors
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.WarnWithFields("authentication rejected", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.Redacted(),
		})
		return errors.New(errors.ErrorTypeAuth, "API key may be invalid").WithCode(resp.StatusCode)
	default:
		c.logger.ErrorWithFields("unexpected API status", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.Redacted(),
		})
		return errors.Newf(errors.ErrorTypeNetwork, "server returned status %d", resp.StatusCode).WithCode(resp.StatusCode)
	}
}

// getJSON performs a GET request and decodes the JSON response
func (c *Client) getJSON(url string, target interface{}) error {
	resp, err := c.get(c.apiClient, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeNetwork, err, "failed to read response body").WithCode(resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return errors.Wrap(errors.ErrorTypeParsing, err, "failed to parse JSON").WithCode(resp.StatusCode)
	}

	return nil
}

// Search runs one search request against the API.
//
// NSFW purity without an API key fails with a configuration error before
// any request goes out; the filter is never silently narrowed or widened.
func (c *Client) Search(params SearchParams) (*SearchResponse, error) {
	if params.RequestsNSFW() && params.APIKey == "" {
		return nil, errors.New(errors.ErrorTypeConfiguration,
			"NSFW purity requested but no API key is configured")
	}

	url := SearchURL(c.baseURL, params)

	c.logger.DebugWithFields("searching wallpapers", map[string]interface{}{
		"categories": params.Categories,
		"purity":     params.Purity,
		"atleast":    params.AtLeast,
		"page":       params.Page,
	})

	var response SearchResponse
	if err := c.getJSON(url, &response); err != nil {
		return nil, err
	}

	// The API reports key problems inside a 200 response
	if response.Error != "" {
		return nil, errors.Newf(errors.ErrorTypeAuth, "API rejected the request: %s", response.Error)
	}

	return &response, nil
}

// Download fetches the image bytes of the given wallpaper. The caller owns
// the returned body and must close it.
func (c *Client) Download(w *Wallpaper) (io.ReadCloser, error) {
	if w == nil || w.Path == "" {
		return nil, errors.New(errors.ErrorTypeNetwork, "wallpaper has no image URL")
	}

	c.logger.InfoWithFields("downloading wallpaper", map[string]interface{}{
		"id":         w.ID,
		"url":        w.URL,
		"resolution": w.Resolution,
	})

	resp, err := c.get(c.downloadClient, w.Path)
	if err != nil {
		return nil, err
	}

	if err := c.checkResponseStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}
