package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// tope de lectura de respuestas
	maxBody = 1 << 20
)

var ErrNoBaseURL = errors.New("httpclient: relative path requires BaseURL")

// Options de un Client. BaseURL vacío obliga a usar URLs absolutas.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// Headers fijos de cada request (p.ej. apikey del proyecto).
	Headers map[string]string

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Client es el cliente JSON compartido por los adapters remotos (GoTrue, PostgREST).
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		if k = strings.TrimSpace(k); k != "" {
			headers[k] = v
		}
	}

	return &Client{
		http:    &http.Client{Timeout: timeout, Transport: opts.Transport},
		baseURL: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		headers: headers,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// HTTPError es una respuesta no-2xx. Code y Message salen del body cuando viene
// en alguno de los formatos conocidos ({"msg"}, {"message"}, {"error_description"}, {"error"}).
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("http error: status=%d message=%s", e.StatusCode, e.Message)
	case e.Body != "":
		return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
}

// StatusOf devuelve el status de un *HTTPError envuelto, o 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// DoJSON manda in como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
// headers pisan a los fijos del Client. Un status no-2xx vuelve como *HTTPError.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	if c == nil || c.http == nil {
		return errors.New("httpclient: nil client")
	}

	req, err := c.newRequest(ctx, method, pathOrURL, in)
	if err != nil {
		return err
	}
	for k, v := range headers {
		if k = strings.TrimSpace(k); k != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, pathOrURL string, in any) (*http.Request, error) {
	target, err := c.resolve(pathOrURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *Client) resolve(pathOrURL string) (string, error) {
	p := strings.TrimSpace(pathOrURL)
	switch {
	case p == "":
		return "", errors.New("httpclient: empty url")
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"):
		return p, nil
	case c.baseURL == "":
		return "", ErrNoBaseURL
	}
	return c.baseURL + "/" + strings.TrimLeft(p, "/"), nil
}

func newHTTPError(status int, raw []byte) *HTTPError {
	he := &HTTPError{StatusCode: status, Body: strings.TrimSpace(string(raw))}

	var payload struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            any    `json:"error"`
		ErrorCode        string `json:"error_code"`
		Code             any    `json:"code"`
	}
	if json.Unmarshal(raw, &payload) != nil {
		return he
	}

	for _, m := range []string{payload.Msg, payload.Message, payload.ErrorDescription, scalar(payload.Error)} {
		if m = strings.TrimSpace(m); m != "" {
			he.Message = m
			break
		}
	}
	he.Code = payload.ErrorCode
	if he.Code == "" {
		he.Code = scalar(payload.Code)
	}
	return he
}

// scalar: GoTrue manda code numérico, PostgREST como string.
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return ""
	}
}
