package veryfitest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net/http"
	"strconv"

	"github.com/veryfi/veryfi-go/pkg/client"

	"github.com/go-chi/chi/v5"
)

type paramsKey struct{}

func requestWithParams(r *http.Request, params map[string]any) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), paramsKey{}, params))
}

func readParams(r *http.Request) (map[string]any, error) {
	if params, ok := r.Context().Value(paramsKey{}).(map[string]any); ok {
		return params, nil
	}

	params := map[string]any{}

	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return params, nil
}

func readInto(r *http.Request, v any) error {
	params, err := readParams(r)

	if err != nil {
		return err
	}

	data, err := json.Marshal(params)

	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}

func stringValue(params map[string]any, key string) string {
	if val, ok := params[key].(string); ok {
		return val
	}

	return ""
}

func boolValue(params map[string]any, key string) bool {
	if val, ok := params[key].(bool); ok {
		return val
	}

	return false
}

func sliceValue(params map[string]any, key string) []string {
	return toSlice(params[key])
}

func toSlice(v any) []string {
	items, ok := v.([]any)

	if !ok {
		return nil
	}

	var result []string

	for _, item := range items {
		if val, ok := item.(string); ok {
			result = append(result, val)
		}
	}

	return result
}

func mergeDocument(document *client.Document, params map[string]any) error {
	data, err := json.Marshal(document)

	if err != nil {
		return err
	}

	var merged map[string]any

	if err := json.Unmarshal(data, &merged); err != nil {
		return err
	}

	maps.Copy(merged, params)

	data, err = json.Marshal(merged)

	if err != nil {
		return err
	}

	return json.Unmarshal(data, document)
}

func (s *Server) document(r *http.Request) (*client.Document, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "documentID"))

	if err != nil {
		return nil, err
	}

	document, ok := s.documents[id]

	if !ok {
		return nil, errors.New("document not found")
	}

	return document, nil
}

func (s *Server) lineItem(r *http.Request) (*client.Document, *client.LineItem, error) {
	document, err := s.document(r)

	if err != nil {
		return nil, nil, err
	}

	id, err := strconv.Atoi(chi.URLParam(r, "lineItemID"))

	if err != nil {
		return nil, nil, err
	}

	for i := range document.LineItems {
		if document.LineItems[i].ID == id {
			return document, &document.LineItems[i], nil
		}
	}

	return nil, nil, errors.New("line item not found")
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	json.NewEncoder(w).Encode(map[string]any{
		"status": "fail",
		"error":  text,
	})
}
