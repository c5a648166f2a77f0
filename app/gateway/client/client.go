package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"shareit/app/echoServer"
	"shareit/util/httpx"

	"github.com/labstack/echo/v4"
)

// Client relays validated requests to the shareit server and copies the
// response back untouched, status included.
type Client struct {
	base string
	http *http.Client
}

func New(base string) *Client {
	return &Client{base: strings.TrimRight(base, "/"), http: httpx.Client()}
}

// Forward re-issues the inbound request against the server. body, when not
// nil, replaces the (already consumed) request body.
func (cl *Client) Forward(c echo.Context, body any) error {
	in := c.Request()

	url := cl.base + in.URL.Path
	if q := in.URL.RawQuery; q != "" {
		url += "?" + q
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(b)
	}

	out, err := http.NewRequestWithContext(in.Context(), in.Method, url, payload)
	if err != nil {
		return err
	}
	out.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if uid := in.Header.Get(echoServer.HeaderUserID); uid != "" {
		out.Header.Set(echoServer.HeaderUserID, uid)
	}

	resp, err := cl.http.Do(out)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "shareit server is unavailable"})
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	ct := resp.Header.Get(echo.HeaderContentType)
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.StatusCode, ct, b)
}
