package client_test

import (
	"net/http/httptest"
	"testing"

	"github.com/veryfi/veryfi-go/pkg/client"
	"github.com/veryfi/veryfi-go/pkg/veryfitest"
)

func newTestClient(t *testing.T, opts ...client.RequestOption) (*client.Client, *veryfitest.Server) {
	t.Helper()

	server := veryfitest.New("client-id", "user", "api-key")

	httpServer := httptest.NewServer(server.Router())
	t.Cleanup(httpServer.Close)

	opts = append(opts, client.WithURL(httpServer.URL))

	return client.New("client-id", "user", "api-key", opts...), server
}
