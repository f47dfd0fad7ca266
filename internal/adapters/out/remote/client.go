// Package remote implements the clients for peer services over HTTP. Base URLs are
// resolved through discovery on every call, so a restarted peer is picked up as soon as
// it registers again.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"deliveryapp/internal/pkg/discovery"
	"deliveryapp/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultTimeout bounds every outbound call.
const DefaultTimeout = 5 * time.Second

const maxErrorBody = 256

var (
	remoteCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "deliveryapp",
		Subsystem: "remote",
		Name:      "call_duration_seconds",
		Help:      "Duration of calls to peer services.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "route"})

	remoteCallFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deliveryapp",
		Subsystem: "remote",
		Name:      "call_failures_total",
		Help:      "Calls to peer services that failed or timed out.",
	}, []string{"service", "route"})
)

// client is the transport shared by the typed clients.
type client struct {
	service  string
	resolver discovery.Resolver
	http     *resty.Client
}

func newClient(service string, resolver discovery.Resolver, timeout time.Duration) client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return client{
		service:  service,
		resolver: resolver,
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// call sends the request and decodes a 2xx body into result. It returns the status code
// for 2xx, 404 and 409 answers; transport failures and every other status are reported as
// errs.RemoteUnavailableError.
func (c client) call(ctx context.Context, method, route, path string, body, result any) (int, error) {
	operation := method + " " + path
	start := time.Now()
	defer func() {
		remoteCallDuration.WithLabelValues(c.service, route).Observe(time.Since(start).Seconds())
	}()

	baseURL, err := c.resolver.Resolve(ctx, c.service)
	if err != nil {
		return 0, c.fail(route, errs.NewRemoteUnavailableError(c.service, operation, err))
	}

	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, baseURL+path)
	if err != nil {
		if isTimeout(err) {
			return 0, c.fail(route, errs.NewRemoteTimeoutError(c.service, operation, err))
		}
		return 0, c.fail(route, errs.NewRemoteUnavailableError(c.service, operation, err))
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusNotFound, status == http.StatusConflict:
		return status, nil
	case status < 200 || status >= 300:
		cause := fmt.Errorf("unexpected status %d: %s", status, truncate(resp.String()))
		return status, c.fail(route, errs.NewRemoteUnavailableError(c.service, operation, cause))
	}

	if result != nil {
		if err = json.Unmarshal(resp.Body(), result); err != nil {
			cause := fmt.Errorf("decode response: %w", err)
			return status, c.fail(route, errs.NewRemoteUnavailableError(c.service, operation, cause))
		}
	}
	return status, nil
}

func (c client) fail(route string, err error) error {
	remoteCallFailures.WithLabelValues(c.service, route).Inc()
	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}
