package client_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/veryfi/veryfi-go/pkg/client"

	"github.com/stretchr/testify/require"
)

func TestW9Process(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	w9, err := c.W9s.Process(ctx, client.W9ProcessRequest{
		FileName: "w9.pdf",
		FileData: []byte("%PDF-1.4"),
	})

	require.NoError(t, err)
	require.NotZero(t, w9.ID)
	require.NotEmpty(t, w9.Name)
	require.Contains(t, w9.PDFURL, "w9.pdf")
}

func TestW9ProcessFile(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	path := filepath.Join(t.TempDir(), "form.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))

	w9, err := c.W9s.ProcessFile(ctx, path, nil)

	require.NoError(t, err)
	require.Contains(t, w9.PDFURL, "form.pdf")
}

func TestW9ProcessURL(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	w9, err := c.W9s.ProcessURL(ctx, client.W9ProcessURLRequest{
		FileURL: "https://cdn.example.com/forms/w9-2026.pdf",
	})

	require.NoError(t, err)
	require.NotZero(t, w9.ID)

	// file_name falls back to the URL basename
	require.Contains(t, w9.PDFURL, "w9-2026.pdf")
}
