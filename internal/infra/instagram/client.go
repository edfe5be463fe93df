package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/usecase/media"
)

const (
	DefaultBaseURL = "https://graph.instagram.com"

	mediaFields = "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp,username"

	// Graph API timestamps carry a numeric offset without a colon.
	timestampLayout = "2006-01-02T15:04:05-0700"
)

// Client reads the authenticated account's recent posts from the
// Instagram Graph API.
type Client struct {
	hc      *http.Client
	baseURL string
	token   string
}

func New(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		hc:      &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

type mediaResponse struct {
	Data  []mediaItem `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type mediaItem struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	Permalink    string `json:"permalink"`
	ThumbnailURL string `json:"thumbnail_url"`
	Timestamp    string `json:"timestamp"`
	Username     string `json:"username"`
}

func (c *Client) Recent(ctx context.Context, limit int) ([]media.Item, error) {
	if c.token == "" {
		return nil, errors.New("instagram access token is empty")
	}

	params := map[string]string{
		"fields":       mediaFields,
		"access_token": c.token,
		"limit":        strconv.Itoa(limit),
	}
	status, body, err := c.do(ctx, c.baseURL+"/me/media", params)
	if err != nil {
		return nil, err
	}

	var res mediaResponse
	if status >= 400 {
		_ = json.Unmarshal(body, &res)
		if res.Error != nil && res.Error.Message != "" {
			return nil, fmt.Errorf("instagram media failed: %s (status=%d)", res.Error.Message, status)
		}
		return nil, fmt.Errorf("instagram media failed (status=%d)", status)
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode instagram media: %w", err)
	}

	out := make([]media.Item, 0, len(res.Data))
	for _, m := range res.Data {
		ts, _ := time.Parse(timestampLayout, m.Timestamp)
		out = append(out, media.Item{
			ID:           m.ID,
			Caption:      m.Caption,
			MediaType:    m.MediaType,
			MediaURL:     m.MediaURL,
			Permalink:    m.Permalink,
			ThumbnailURL: m.ThumbnailURL,
			Timestamp:    ts,
			Username:     m.Username,
		})
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, rawURL string, query map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Add("accept", "application/json")

	q := url.Values{}
	for k, v := range query {
		q.Add(k, v)
	}
	req.URL.RawQuery = q.Encode()

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

var _ media.Source = (*Client)(nil)
