package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

type W9 struct {
	ID int `json:"id"`

	Name         string `json:"name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`

	TaxClassification string `json:"tax_classification,omitempty"`

	Address1     string `json:"address1,omitempty"`
	Address2     string `json:"address2,omitempty"`
	CityStateZip string `json:"city_state_zip,omitempty"`

	EIN string `json:"ein,omitempty"`
	SSN string `json:"ssn,omitempty"`

	ExemptPayeeCode string `json:"exempt_payee_code,omitempty"`
	SignatureDate   string `json:"signature_date,omitempty"`

	PDFURL string `json:"pdf_url,omitempty"`
}

type W9Service struct {
	Options []RequestOption
}

func NewW9Service(opts ...RequestOption) W9Service {
	return W9Service{
		Options: opts,
	}
}

type W9ProcessRequest struct {
	FileName string
	FileData []byte

	Extra map[string]any
}

func (r *W9Service) Process(ctx context.Context, input W9ProcessRequest, opts ...RequestOption) (*W9, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	params := map[string]any{
		"file_name": input.FileName,
		"file_data": base64.StdEncoding.EncodeToString(input.FileData),
	}

	for k, v := range input.Extra {
		params[k] = v
	}

	var w9 W9

	if err := c.request(ctx, http.MethodPost, "/w9s/", params, &w9); err != nil {
		return nil, err
	}

	return &w9, nil
}

func (r *W9Service) ProcessFile(ctx context.Context, filePath string, input *W9ProcessRequest, opts ...RequestOption) (*W9, error) {
	if input == nil {
		input = new(W9ProcessRequest)
	}

	data, err := os.ReadFile(filePath)

	if err != nil {
		return nil, err
	}

	input.FileData = data

	if input.FileName == "" {
		input.FileName = filepath.Base(filePath)
	}

	return r.Process(ctx, *input, opts...)
}

type W9ProcessURLRequest struct {
	FileURL  string
	FileName string

	Extra map[string]any
}

func (r *W9Service) ProcessURL(ctx context.Context, input W9ProcessURLRequest, opts ...RequestOption) (*W9, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	name := input.FileName

	if name == "" {
		if u, err := url.Parse(input.FileURL); err == nil {
			name = path.Base(u.Path)
		}
	}

	params := map[string]any{
		"file_name": name,
		"file_url":  input.FileURL,
	}

	for k, v := range input.Extra {
		params[k] = v
	}

	var w9 W9

	if err := c.request(ctx, http.MethodPost, "/w9s/", params, &w9); err != nil {
		return nil, err
	}

	return &w9, nil
}
