package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veryfi/veryfi-go/pkg/client"

	"github.com/stretchr/testify/require"
)

func newTestDocument(t *testing.T, ctx context.Context, c *client.Client) *client.Document {
	t.Helper()

	document, err := c.Documents.ProcessURL(ctx, client.ProcessURLRequest{
		FileURL: "https://cdn.example.com/receipt.jpg",
	})

	require.NoError(t, err)

	return document
}

func TestLineItemAdd(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	document := newTestDocument(t, ctx, c)

	item, err := c.LineItems.Add(ctx, document.ID, client.LineItem{
		Description: "Coffee beans",

		Quantity: client.Ptr(2.0),
		Total:    client.Ptr(18.9),
	})

	require.NoError(t, err)
	require.NotZero(t, item.ID)
	require.Equal(t, "Coffee beans", item.Description)
	require.Equal(t, 18.9, *item.Total)

	items, err := c.LineItems.List(ctx, document.ID)

	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestLineItemAddOmitsUnsetFields(t *testing.T) {
	ctx := context.Background()

	var params map[string]any

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params = nil
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1}`))
	}))

	t.Cleanup(httpServer.Close)

	c := client.New("client-id", "user", "api-key", client.WithURL(httpServer.URL))

	_, err := c.LineItems.Add(ctx, 1, client.LineItem{
		Description: "Coffee beans",
		Total:       client.Ptr(18.9),
	})

	require.NoError(t, err)

	// unset fields stay out of the payload entirely
	require.Equal(t, map[string]any{
		"description": "Coffee beans",
		"total":       18.9,
	}, params)

	_, err = c.LineItems.Update(ctx, 1, 1, client.LineItem{
		Quantity: client.Ptr(2.0),
	})

	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"quantity": 2.0,
	}, params)
}

func TestLineItemGet(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	document := newTestDocument(t, ctx, c)

	item, err := c.LineItems.Add(ctx, document.ID, client.LineItem{
		Description: "Napkins",
		Total:       client.Ptr(3.5),
	})
	require.NoError(t, err)

	found, err := c.LineItems.Get(ctx, document.ID, item.ID)

	require.NoError(t, err)
	require.Equal(t, item.ID, found.ID)
	require.Equal(t, "Napkins", found.Description)
}

func TestLineItemUpdate(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	document := newTestDocument(t, ctx, c)

	item, err := c.LineItems.Add(ctx, document.ID, client.LineItem{
		Description: "Napkins",
		Total:       client.Ptr(3.5),
	})
	require.NoError(t, err)

	updated, err := c.LineItems.Update(ctx, document.ID, item.ID, client.LineItem{
		Description: "Paper napkins",
		Total:       client.Ptr(4.0),
	})

	require.NoError(t, err)
	require.Equal(t, item.ID, updated.ID)
	require.Equal(t, "Paper napkins", updated.Description)

	found, err := c.LineItems.Get(ctx, document.ID, item.ID)

	require.NoError(t, err)
	require.Equal(t, "Paper napkins", found.Description)
}

func TestLineItemDelete(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	document := newTestDocument(t, ctx, c)

	item, err := c.LineItems.Add(ctx, document.ID, client.LineItem{
		Description: "Napkins",
	})
	require.NoError(t, err)

	require.NoError(t, c.LineItems.Delete(ctx, document.ID, item.ID))

	_, err = c.LineItems.Get(ctx, document.ID, item.ID)
	require.Error(t, err)
}

func TestLineItemDeleteAll(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	document := newTestDocument(t, ctx, c)

	for _, description := range []string{"One", "Two", "Three"} {
		_, err := c.LineItems.Add(ctx, document.ID, client.LineItem{
			Description: description,
		})

		require.NoError(t, err)
	}

	require.NoError(t, c.LineItems.DeleteAll(ctx, document.ID))

	items, err := c.LineItems.List(ctx, document.ID)

	require.NoError(t, err)
	require.Empty(t, items)
}
