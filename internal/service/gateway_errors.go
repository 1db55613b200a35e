package service

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fbsfernando/bot-link-manager/internal/errors"
	"github.com/fbsfernando/bot-link-manager/pkg/waha"
)

// mapGatewayError translates gateway client failures into AppErrors.
// Non-2xx gateway responses keep their upstream status AND body: the
// dashboard shows the gateway's own text, so the message carries the
// body verbatim. A gateway 404 on a named resource gets the NOT_FOUND
// code but the same passthrough message.
func mapGatewayError(err error, resource, identifier string) error {
	var statusErr *waha.StatusError
	if goerrors.As(err, &statusErr) {
		msg := strings.TrimSpace(statusErr.Body)
		if msg == "" {
			msg = statusErr.Status
		}
		msg = fmt.Sprintf("Gateway error (%d): %s", statusErr.StatusCode, msg)

		if statusErr.StatusCode == http.StatusNotFound && resource != "" {
			return errors.NewNotFoundError(resource, identifier).WithUserMessage(msg)
		}
		return errors.NewUpstreamError(statusErr.StatusCode, msg)
	}

	return errors.Wrap(err, errors.ErrCodeUpstream, "gateway request failed").
		WithUserMessage("The WhatsApp gateway is unreachable")
}
