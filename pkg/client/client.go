package client

type Client struct {
	Documents DocumentService
	LineItems LineItemService

	Tags TagService

	W9s W9Service
}

func New(clientID, username, apiKey string, opts ...RequestOption) *Client {
	opts = append(opts, WithCredentials(clientID, username, apiKey))

	return &Client{
		Documents: NewDocumentService(opts...),
		LineItems: NewLineItemService(opts...),

		Tags: NewTagService(opts...),

		W9s: NewW9Service(opts...),
	}
}

func Ptr[T any](v T) *T {
	return &v
}
