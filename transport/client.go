package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client is the default Transport, backed by a resty client.
type Client struct {
	rc      *resty.Client
	logger  zerolog.Logger
	timeout time.Duration
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// New creates a resty-backed transport with the given options.
func New(options ...ClientOption) *Client {
	c := &Client{
		rc:      resty.New(),
		logger:  zerolog.Nop(),
		timeout: defaultTimeout,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// WithTimeout sets the timeout for requests that carry none of their own.
// A request timeout, longer or shorter, always takes precedence. Zero
// disables the default.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHeader adds a header sent with every request. Request headers win.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.rc.SetHeader(key, value)
	}
}

// WithDebug turns on resty's request/response dumps, written through the
// client's logger.
func WithDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.rc.SetDebug(debug)
	}
}

// WithLogger routes transport logging to l.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
		c.rc.SetLogger(restyLogger{l})
	}
}

// WithResty replaces the underlying resty client, e.g. to share a
// connection pool or install custom TLS settings.
func WithResty(rc *resty.Client) ClientOption {
	return func(c *Client) {
		if rc != nil {
			c.rc = rc
		}
	}
}

// Do executes the request. Any status code is returned as a response;
// status validation is left to the caller.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	query, err := EncodeParams(req.Params)
	if err != nil {
		return nil, err
	}

	r := c.rc.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		SetQueryParamsFromValues(query).
		EnableTrace()
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = resty.MethodGet
	}

	resp, err := r.Execute(method, req.URL)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("url", req.URL).Msg("transport failure")
		return nil, err
	}

	trace := resp.Request.TraceInfo()
	result := &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Headers:    resp.Header(),
		Body:       resp.Body(),
		Request:    req,
		Timing: Timing{
			DNSLookup:    trace.DNSLookup,
			TCPConnect:   trace.TCPConnTime,
			TLSHandshake: trace.TLSHandshake,
			ServerTime:   trace.ServerTime,
			Total:        resp.Time(),
			ConnReused:   trace.IsConnReused,
		},
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", req.URL).
		Int("status", result.StatusCode).
		Dur("elapsed", result.Timing.Total).
		Msg("transport exchange")

	return result, nil
}

// EncodeParams flattens call parameters into a query string. Scalars are
// formatted with %v, slices and arrays become repeated keys and nested
// objects are sent as JSON text. Keys are emitted in sorted order.
func EncodeParams(params map[string]any) (url.Values, error) {
	values := make(url.Values, len(params))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := params[key]
		if v == nil {
			continue
		}

		rv := reflect.ValueOf(v)
		if _, isBytes := v.([]byte); !isBytes && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
			for i := 0; i < rv.Len(); i++ {
				s, err := paramString(rv.Index(i).Interface())
				if err != nil {
					return nil, fmt.Errorf("encode param %q: %w", key, err)
				}
				values.Add(key, s)
			}
			continue
		}

		s, err := paramString(v)
		if err != nil {
			return nil, fmt.Errorf("encode param %q: %w", key, err)
		}
		values.Set(key, s)
	}

	return values, nil
}

func paramString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case time.Time:
		return t.Format(time.RFC3339), nil
	case fmt.Stringer:
		return t.String(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "", nil
		}
		return paramString(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(v), nil
	}
}

type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error().Msgf(format, v...)
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warn().Msgf(format, v...)
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug().Msgf(format, v...)
}
