package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/noodly/storefront/lib/mylog"
)

type client struct {
	url        string
	httpClient *http.Client
	logger     mylog.Logger
}

func NewCaller(url string, logger mylog.Logger) Caller {
	return &client{
		url: url,
		// Deadlines come from the caller's context: the status tracker
		// uses a tighter budget than catalog fetches.
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (c *client) Call(ctx context.Context, request any) (Response, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return Response{}, fmt.Errorf("error marshalling request: %s", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("error creating http request for %s: %s", c.url, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}

	c.logger.Log(ctx, "", mylog.SeverityDebug, "Shop-api response: http-status %d, %d bytes", httpResp.StatusCode, len(respPayload))

	if httpResp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("shop-api returned http-status %d", httpResp.StatusCode)
	}

	var resp Response
	err = json.Unmarshal(respPayload, &resp)
	if err != nil {
		return Response{}, fmt.Errorf("error parsing shop-api response: %s", err)
	}
	resp.Raw = respPayload

	return resp, nil
}
