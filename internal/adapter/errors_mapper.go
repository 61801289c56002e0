package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/gridboard/mobile-core/internal/app"
	"github.com/gridboard/mobile-core/models"
)

// mapHTTPError converts a non-2xx response into a wrapped sentinel error
// carrying the backend's detail message. A 401 whose detail is the literal
// expiry signal maps to [ErrTokenExpired]; every other 401 maps to
// [ErrUnauthorized] so the caller can preserve the session.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	detail := extractDetail(resp.Body())
	if detail == "" {
		detail = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	case http.StatusUnauthorized:
		if detail == app.MsgTokenExpired {
			return fmt.Errorf("%w: %s", ErrTokenExpired, detail)
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, detail)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, detail)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), detail)
	}
}

// extractDetail pulls the "detail" field out of an error body. Bodies that
// are not JSON are returned as trimmed plain text.
func extractDetail(body []byte) string {
	var apiErr models.APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return strings.TrimSpace(string(body))
}

// mapTransportError classifies a failure that produced no HTTP response at
// all. Timeouts (per-attempt deadline, net.Error timeouts) map to
// [ErrTimeout]; everything else maps to [ErrTransport].
func mapTransportError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrTransport, err)
}
