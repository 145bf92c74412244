package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fxadmin-service/internal/infrastructure/logx"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

type Client struct {
	HTTP  *http.Client
	Token string
}

// DoJSON sends req and decodes a 200 response into out. Transport errors and
// 5xx answers are retried with exponential backoff; anything else is final.
// req must not carry a body.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any, log *zap.Logger) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	if log == nil {
		log = logx.FromContext(ctx)
	}
	log = log.With(zap.String("method", req.Method), zap.String("host", req.URL.Host), zap.String("path", req.URL.Path))

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	attempt := 0
	op := func() error {
		attempt++
		resp, err := c.HTTP.Do(req.WithContext(ctx))
		if err != nil {
			log.Warn("httpx.attempt_failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			log.Warn("httpx.attempt_failed", zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			return fmt.Errorf("server error %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		log.Debug("httpx.success", zap.Int("attempts", attempt))
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(exp, ctx))
}
