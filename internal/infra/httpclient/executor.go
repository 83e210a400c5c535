package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

// MaxBody caps how much of a reply is kept. Webhook endpoints answer with
// short acknowledgements.
const MaxBody = 64 << 10

// Response is what the notifier needs from a webhook reply.
type Response struct {
	Status    int
	Body      []byte
	Truncated bool
	Elapsed   time.Duration
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Executor sends requests with a per-call deadline.
type Executor struct {
	client  *http.Client
	timeout time.Duration
}

type ExecutorOption func(*Executor)

// WithTimeout bounds each call. Zero leaves only the caller's context.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = timeout }
}

func WithClient(client *http.Client) ExecutorOption {
	return func(e *Executor) {
		if client != nil {
			e.client = client
		}
	}
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		client:  New(cfg),
		timeout: cfg.Timeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Send performs req. Elapsed is filled even when the call fails.
func (e *Executor) Send(ctx context.Context, req *http.Request) (Response, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := e.client.Do(req.WithContext(ctx))
	if err != nil {
		return Response{Elapsed: time.Since(start)}, err
	}
	defer resp.Body.Close()

	out := Response{Status: resp.StatusCode}
	out.Body, out.Truncated, err = readCapped(resp.Body)
	out.Elapsed = time.Since(start)
	return out, err
}

// PostJSON builds a JSON POST to rawURL and sends it.
func (e *Executor) PostJSON(ctx context.Context, rawURL string, payload any, headers map[string]string) (Response, error) {
	req, err := BuildJSONRequest(ctx, http.MethodPost, rawURL, payload, headers)
	if err != nil {
		return Response{}, err
	}
	return e.Send(ctx, req)
}

func readCapped(r io.Reader) ([]byte, bool, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxBody+1))
	if err != nil {
		return nil, false, err
	}
	if len(body) > MaxBody {
		return body[:MaxBody], true, nil
	}
	return body, false, nil
}
