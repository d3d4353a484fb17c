package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagAdd(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	document := newTestDocument(t, ctx, c)

	tag, err := c.Tags.Add(ctx, document.ID, "expensable")

	require.NoError(t, err)
	require.NotZero(t, tag.ID)
	require.Equal(t, "expensable", tag.Name)

	found, err := c.Documents.Get(ctx, document.ID)

	require.NoError(t, err)
	require.Len(t, found.Tags, 1)
}

func TestTagAddMany(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	document := newTestDocument(t, ctx, c)

	tags, err := c.Tags.AddMany(ctx, document.ID, []string{"travel", "2026"})

	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "travel", tags[0].Name)

	found, err := c.Documents.Get(ctx, document.ID)

	require.NoError(t, err)
	require.Len(t, found.Tags, 2)
}

func TestTagReplace(t *testing.T) {
	ctx := context.Background()

	c, _ := newTestClient(t)

	document := newTestDocument(t, ctx, c)

	_, err := c.Tags.AddMany(ctx, document.ID, []string{"travel", "2026"})
	require.NoError(t, err)

	updated, err := c.Tags.Replace(ctx, document.ID, []string{"archived"})

	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	require.Equal(t, "archived", updated.Tags[0].Name)
}
