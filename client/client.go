package client

import (
	"context"
	"errors"

	"github.com/a-h/gugi/models"
	"github.com/a-h/jsonapi"
)

// ErrNotFound is returned when the server doesn't have the endpoint, usually
// because the base URL is wrong.
var ErrNotFound = errors.New("client: not found")

func New(baseURL, apiKey string) Client {
	return Client{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type Client struct {
	baseURL string
	apiKey  string
}

func (c Client) ChatPost(ctx context.Context, req models.ChatPostRequest) (resp models.ChatPostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("api", "chat").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.ChatPostRequest, models.ChatPostResponse](ctx, url, req, jsonapi.WithRequestHeader("Authorization", c.apiKey))
}

func (c Client) StatusPost(ctx context.Context, req models.StatusCheckCreate) (resp models.StatusCheck, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("api", "status").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.StatusCheckCreate, models.StatusCheck](ctx, url, req, jsonapi.WithRequestHeader("Authorization", c.apiKey))
}

func (c Client) StatusList(ctx context.Context) (resp []models.StatusCheck, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("api", "status").String()
	if err != nil {
		return resp, err
	}
	resp, ok, err := jsonapi.Get[[]models.StatusCheck](ctx, url, jsonapi.WithRequestHeader("Authorization", c.apiKey))
	if err != nil {
		return resp, err
	}
	if !ok {
		return resp, ErrNotFound
	}
	return resp, nil
}

func (c Client) HealthDB(ctx context.Context) (resp models.DBHealthResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("api", "health", "db").String()
	if err != nil {
		return resp, err
	}
	resp, ok, err := jsonapi.Get[models.DBHealthResponse](ctx, url, jsonapi.WithRequestHeader("Authorization", c.apiKey))
	if err != nil {
		return resp, err
	}
	if !ok {
		return resp, ErrNotFound
	}
	return resp, nil
}
