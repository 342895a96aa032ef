// Package client is the pull-protocol consumer of the chat API: a polling
// state fetcher, a presence heartbeat, and the compose-box state machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"chat-service/internal/attachment"
	"chat-service/internal/message"
	"chat-service/internal/state"
)

type Client struct {
	base  string
	token string
	hc    *http.Client
}

func New(base, token string) *Client {
	return &Client{base: base, token: token, hc: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) FetchState(ctx context.Context, roomID int64) (*state.View, error) {
	var v state.View
	path := fmt.Sprintf("/rooms/%d/state", roomID)
	if err := c.do(ctx, http.MethodGet, path, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) Heartbeat(ctx context.Context, roomID int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/rooms/%d/heartbeat", roomID), nil, nil)
}

func (c *Client) Join(ctx context.Context, roomID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/rooms/%d/join", roomID), nil, nil)
}

func (c *Client) Send(ctx context.Context, in message.SendReq) (*message.Message, error) {
	var m message.Message
	if err := c.do(ctx, http.MethodPost, "/messages", in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) Edit(ctx context.Context, messageID int64, content string) (*message.Message, error) {
	var m message.Message
	path := fmt.Sprintf("/messages/%d", messageID)
	if err := c.do(ctx, http.MethodPatch, path, message.EditReq{Content: content}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) Delete(ctx context.Context, messageID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/messages/%d", messageID), nil, nil)
}

func (c *Client) React(ctx context.Context, messageID int64, emoji, action string) error {
	path := fmt.Sprintf("/messages/%d/reactions", messageID)
	return c.do(ctx, http.MethodPost, path, map[string]string{"emoji": emoji, "action": action}, nil)
}

func (c *Client) Upload(ctx context.Context, roomID int64, content string, replyTo *int64, fileName, mimeType string, file io.Reader) (*attachment.Upload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("room_id", strconv.FormatInt(roomID, 10))
	if content != "" {
		_ = w.WriteField("content", content)
	}
	if replyTo != nil {
		_ = w.WriteField("reply_to_id", strconv.FormatInt(*replyTo, 10))
	}
	part := make(textproto.MIMEHeader)
	part.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	if mimeType != "" {
		part.Set("Content-Type", mimeType)
	}
	fw, err := w.CreatePart(part)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/messages/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload: status %d", resp.StatusCode)
	}
	var out attachment.Upload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
