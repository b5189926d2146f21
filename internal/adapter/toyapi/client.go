package toyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/toybox/storefront/internal/core/domain"
	"github.com/toybox/storefront/internal/core/port"
	"github.com/toybox/storefront/pkg/retry"
)

var _ port.ProductRepository = (*Client)(nil)

const defaultTimeout = 5 * time.Second

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
}

// Client talks to the upstream toy repository (JSON over HTTP).
// Idempotent reads go through bounded retry, writes are issued exactly
// once so local state only ever changes after a confirmed success.
type Client struct {
	baseURL  string
	hc       *http.Client
	retryCfg retry.Config
}

func NewClient(cfg Config) Client {
	if cfg.BaseURL == "" {
		panic("toyapi: base url is empty") // develop mistake
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return Client{
		baseURL: cfg.BaseURL,
		hc:      &http.Client{Timeout: timeout},
		retryCfg: retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			ShouldRetry: isTransportError,
		},
	}
}

func isTransportError(err error) bool {
	var tErr *domain.TransportError
	return errors.As(err, &tErr)
}

func (c Client) ListAll(ctx context.Context) ([]domain.Product, error) {
	const op = "ToyAPI.ListAll"

	return retry.DoWithResult(ctx, c.retryCfg, func() ([]domain.Product, error) {
		resp, err := c.do(ctx, http.MethodGet, "/toys", nil)
		if err != nil {
			return nil, &domain.TransportError{Op: op, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, &domain.TransportError{Op: op, Status: resp.StatusCode}
		}

		var ts []toy
		if err := json.NewDecoder(resp.Body).Decode(&ts); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		ps := make([]domain.Product, 0, len(ts))
		for _, t := range ts {
			ps = append(ps, t.toDomain())
		}
		return ps, nil
	})
}

// GetByID reports an absent product distinctly from a transport error.
func (c Client) GetByID(ctx context.Context, id int) (domain.Product, bool, error) {
	const op = "ToyAPI.GetByID"

	type result struct {
		p     domain.Product
		found bool
	}
	res, err := retry.DoWithResult(ctx, c.retryCfg, func() (result, error) {
		resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/toys/%d", id), nil)
		if err != nil {
			return result{}, &domain.TransportError{Op: op, Err: err}
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			return result{}, nil
		default:
			return result{}, &domain.TransportError{Op: op, Status: resp.StatusCode}
		}

		var t toy
		if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
			return result{}, fmt.Errorf("%s: %w", op, err)
		}
		return result{p: t.toDomain(), found: true}, nil
	})
	return res.p, res.found, err
}

func (c Client) Create(ctx context.Context, d domain.ProductDraft) (domain.Product, error) {
	const op = "ToyAPI.Create"

	resp, err := c.do(ctx, http.MethodPost, "/toys", toPayload(d))
	if err != nil {
		return domain.Product{}, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.Product{}, &domain.TransportError{Op: op, Status: resp.StatusCode}
	}

	var t toy
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return t.toDomain(), nil
}

func (c Client) Update(ctx context.Context, id int, d domain.ProductDraft) (domain.Product, bool, error) {
	const op = "ToyAPI.Update"

	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/toys/%d", id), toPayload(d))
	if err != nil {
		return domain.Product{}, false, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.Product{}, false, nil
	default:
		return domain.Product{}, false, &domain.TransportError{Op: op, Status: resp.StatusCode}
	}

	var t toy
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return domain.Product{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return t.toDomain(), true, nil
}

// Delete reports success as a boolean: any non-2xx status is a plain
// "not deleted", only an unreachable collaborator is an error.
func (c Client) Delete(ctx context.Context, id int) (bool, error) {
	const op = "ToyAPI.Delete"

	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/toys/%d", id), nil)
	if err != nil {
		return false, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

func (c Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.hc.Do(req)
}
