package client

import (
	"context"
	"net/http"
	"strconv"
)

type Tag struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type TagService struct {
	Options []RequestOption
}

func NewTagService(opts ...RequestOption) TagService {
	return TagService{
		Options: opts,
	}
}

func tagsPath(documentID int) string {
	return "/documents/" + strconv.Itoa(documentID) + "/tags/"
}

func (r *TagService) Add(ctx context.Context, documentID int, name string, opts ...RequestOption) (*Tag, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	params := map[string]any{
		"name": name,
	}

	var tag Tag

	if err := c.request(ctx, http.MethodPut, tagsPath(documentID), params, &tag); err != nil {
		return nil, err
	}

	return &tag, nil
}

func (r *TagService) AddMany(ctx context.Context, documentID int, names []string, opts ...RequestOption) ([]Tag, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	params := map[string]any{
		"tags": names,
	}

	var result struct {
		Tags []Tag `json:"tags"`
	}

	if err := c.request(ctx, http.MethodPost, tagsPath(documentID), params, &result); err != nil {
		return nil, err
	}

	return result.Tags, nil
}

// Replace swaps the full tag set of a document, dropping tags not listed.
func (r *TagService) Replace(ctx context.Context, documentID int, names []string, opts ...RequestOption) (*Document, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	params := map[string]any{
		"tags": names,
	}

	var document Document

	if err := c.request(ctx, http.MethodPut, "/documents/"+strconv.Itoa(documentID)+"/", params, &document); err != nil {
		return nil, err
	}

	return &document, nil
}
