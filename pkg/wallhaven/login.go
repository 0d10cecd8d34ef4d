package wallhaven

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"

	"wallpick/pkg/errors"
)

// The login form carries a hidden _token input; the account settings page
// exposes the API key in a readonly input. Both pages are plain HTML, so a
// pair of regexes is enough without pulling in a DOM parser.
var (
	csrfTokenPattern = regexp.MustCompile(`name="_token"\s+value="([^"]+)"`)
	apiKeyPatterns   = []*regexp.Regexp{
		regexp.MustCompile(`readonly="readonly"[^>]*value="([^"]+)"`),
		regexp.MustCompile(`value="([^"]+)"[^>]*readonly`),
	}
)

// FetchAPIKey logs into wallhaven with the given credentials and scrapes
// the account API key from the settings page.
func (c *Client) FetchAPIKey(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", errors.New(errors.ErrorTypeConfiguration, "username and password are required to fetch an API key")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeUnknown, err, "failed to create cookie jar")
	}

	// Session client sharing the API client's timeout; cookies carry the
	// login session between the three requests
	session := &http.Client{
		Timeout: c.apiClient.Timeout,
		Jar:     jar,
	}

	c.logger.Debug("fetching login page for CSRF token")

	token, err := c.fetchCSRFToken(session)
	if err != nil {
		return "", err
	}

	if err := c.submitLogin(session, token, username, password); err != nil {
		return "", err
	}

	c.logger.Debug("reading API key from account settings")

	return c.scrapeAPIKey(session)
}

func (c *Client) fetchCSRFToken(session *http.Client) (string, error) {
	resp, err := c.get(session, c.baseURL+LoginPageEndpoint)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeNetwork, err, "failed to read login page")
	}

	match := csrfTokenPattern.FindSubmatch(body)
	if match == nil {
		return "", errors.New(errors.ErrorTypeParsing, "could not find CSRF token on login page")
	}

	return string(match[1]), nil
}

func (c *Client) submitLogin(session *http.Client, token, username, password string) error {
	form := url.Values{}
	form.Set("_token", token)
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequest(http.MethodPost, c.baseURL+LoginEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(errors.ErrorTypeNetwork, err, "failed to create login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.doRequest(session, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The site answers the form post with a redirect on success and a 200
	// re-render of the form on bad credentials, so status alone is not
	// enough; the settings page fetch below is the real verification.
	if resp.StatusCode >= 400 {
		return errors.Newf(errors.ErrorTypeAuth, "login failed with status %d", resp.StatusCode).WithCode(resp.StatusCode)
	}

	return nil
}

func (c *Client) scrapeAPIKey(session *http.Client) (string, error) {
	resp, err := c.get(session, c.baseURL+AccountSettingsEndpoint)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeNetwork, err, "failed to read account settings page")
	}

	for _, pattern := range apiKeyPatterns {
		if match := pattern.FindSubmatch(body); match != nil {
			return string(match[1]), nil
		}
	}

	return "", errors.New(errors.ErrorTypeAuth,
		"could not find API key on the settings page; credentials may be invalid")
}
