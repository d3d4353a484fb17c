package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"
)

func (c *RequestConfig) request(ctx context.Context, method, path string, params map[string]any, result any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var body io.Reader

	if method != http.MethodGet && method != http.MethodDelete {
		var data bytes.Buffer

		if err := json.NewEncoder(&data).Encode(params); err != nil {
			return err
		}

		body = &data
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)

	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	req.Header.Set("Client-Id", c.ClientID)
	req.Header.Set("Authorization", "apikey "+c.Username+":"+c.APIKey)

	if c.ClientSecret != "" {
		timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)

		req.Header.Set("X-Veryfi-Request-Timestamp", timestamp)
		req.Header.Set("X-Veryfi-Request-Signature", Signature(c.ClientSecret, params, timestamp))
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return convertError(resp)
	}

	if result == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(resp.Status)
	}

	var detail struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(data, &detail); err == nil && detail.Error != "" {
		return errors.New(detail.Error)
	}

	return errors.New(string(data))
}

func structParams(v any) (map[string]any, error) {
	data, err := json.Marshal(v)

	if err != nil {
		return nil, err
	}

	var params map[string]any

	if err := json.Unmarshal(data, &params); err != nil {
		return nil, err
	}

	return params, nil
}
