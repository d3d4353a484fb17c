package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// Categories is the stock list the service uses to categorize a document
// when a request does not bring its own.
var Categories = []string{
	"Advertising & Marketing",
	"Automotive",
	"Bank Charges & Fees",
	"Legal & Professional Services",
	"Insurance",
	"Meals & Entertainment",
	"Office Supplies & Software",
	"Taxes & Licenses",
	"Travel",
	"Rent & Lease",
	"Repairs & Maintenance",
	"Payroll",
	"Utilities",
	"Job Supplies",
	"Grocery",
}

type Document struct {
	ID int `json:"id"`

	ExternalID string `json:"external_id,omitempty"`

	Category     string `json:"category,omitempty"`
	CurrencyCode string `json:"currency_code,omitempty"`

	Date    string `json:"date,omitempty"`
	DueDate string `json:"due_date,omitempty"`

	CreatedDate string `json:"created_date,omitempty"`
	UpdatedDate string `json:"updated_date,omitempty"`

	ImgFileName     string `json:"img_file_name,omitempty"`
	ImgThumbnailURL string `json:"img_thumbnail_url,omitempty"`
	ImgURL          string `json:"img_url,omitempty"`
	PDFURL          string `json:"pdf_url,omitempty"`

	InvoiceNumber   string `json:"invoice_number,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`

	Notes   string `json:"notes,omitempty"`
	OCRText string `json:"ocr_text,omitempty"`

	Subtotal float64 `json:"subtotal,omitempty"`
	Tax      float64 `json:"tax,omitempty"`
	Tip      float64 `json:"tip,omitempty"`
	Total    float64 `json:"total,omitempty"`

	Vendor Vendor `json:"vendor,omitzero"`

	LineItems []LineItem `json:"line_items,omitempty"`
	Tags      []Tag      `json:"tags,omitempty"`
}

type Vendor struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`

	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`

	Logo string `json:"logo,omitempty"`
	Type string `json:"type,omitempty"`
}

type DocumentService struct {
	Options []RequestOption
}

func NewDocumentService(opts ...RequestOption) DocumentService {
	return DocumentService{
		Options: opts,
	}
}

type DocumentListOptions struct {
	// Q matches against external_id, category, vendor.name, notes,
	// invoice_number, total and ocr_text.
	Q string

	ExternalID string
	Tag        string

	// Created bounds use the layout "2006-01-02 15:04:05"; the space is
	// percent-encoded on the wire. Send at most one of GT/GTE and at most
	// one of LT/LTE.
	CreatedGT  string
	CreatedGTE string
	CreatedLT  string
	CreatedLTE string

	Extra map[string]string
}

func (o *DocumentListOptions) values() url.Values {
	values := url.Values{}

	if o == nil {
		return values
	}

	if o.Q != "" {
		values.Set("q", o.Q)
	}

	if o.ExternalID != "" {
		values.Set("external_id", o.ExternalID)
	}

	if o.Tag != "" {
		values.Set("tag", o.Tag)
	}

	if o.CreatedGT != "" {
		values.Set("created__gt", o.CreatedGT)
	}

	if o.CreatedGTE != "" {
		values.Set("created__gte", o.CreatedGTE)
	}

	if o.CreatedLT != "" {
		values.Set("created__lt", o.CreatedLT)
	}

	if o.CreatedLTE != "" {
		values.Set("created__lte", o.CreatedLTE)
	}

	for k, v := range o.Extra {
		values.Set(k, v)
	}

	return values
}

type documentList struct {
	Documents []Document
}

func (l *documentList) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return json.Unmarshal(data, &l.Documents)
	}

	var envelope struct {
		Documents []Document `json:"documents"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	l.Documents = envelope.Documents
	return nil
}

func (r *DocumentService) List(ctx context.Context, options *DocumentListOptions, opts ...RequestOption) ([]Document, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	path := "/documents/"

	if values := options.values(); len(values) > 0 {
		path += "?" + values.Encode()
	}

	var result documentList

	if err := c.request(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}

	return result.Documents, nil
}

func (r *DocumentService) Get(ctx context.Context, documentID int, opts ...RequestOption) (*Document, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var document Document

	if err := c.request(ctx, http.MethodGet, "/documents/"+strconv.Itoa(documentID)+"/", nil, &document); err != nil {
		return nil, err
	}

	return &document, nil
}

type ProcessRequest struct {
	FileName string
	FileData []byte

	Categories []string
	AutoDelete bool

	Extra map[string]any
}

func (r *DocumentService) Process(ctx context.Context, input ProcessRequest, opts ...RequestOption) (*Document, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	categories := input.Categories

	if len(categories) == 0 {
		categories = Categories
	}

	params := map[string]any{
		"file_name": input.FileName,
		"file_data": base64.StdEncoding.EncodeToString(input.FileData),

		"categories":  categories,
		"auto_delete": input.AutoDelete,
	}

	for k, v := range input.Extra {
		params[k] = v
	}

	var document Document

	if err := c.request(ctx, http.MethodPost, "/documents/", params, &document); err != nil {
		return nil, err
	}

	return &document, nil
}

func (r *DocumentService) ProcessFile(ctx context.Context, path string, input *ProcessRequest, opts ...RequestOption) (*Document, error) {
	if input == nil {
		input = new(ProcessRequest)
	}

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	input.FileData = data

	if input.FileName == "" {
		input.FileName = filepath.Base(path)
	}

	return r.Process(ctx, *input, opts...)
}

type ProcessURLRequest struct {
	FileURL  string
	FileURLs []string

	Categories []string
	AutoDelete bool

	// BoostMode skips data enrichment in exchange for faster processing.
	BoostMode bool

	ExternalID        string
	MaxPagesToProcess int

	Extra map[string]any
}

func (r *DocumentService) ProcessURL(ctx context.Context, input ProcessURLRequest, opts ...RequestOption) (*Document, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	boost := 0

	if input.BoostMode {
		boost = 1
	}

	params := map[string]any{
		"auto_delete": input.AutoDelete,
		"boost_mode":  boost,
	}

	if input.FileURL != "" {
		params["file_url"] = input.FileURL
	}

	if len(input.FileURLs) > 0 {
		params["file_urls"] = input.FileURLs
	}

	if len(input.Categories) > 0 {
		params["categories"] = input.Categories
	}

	if input.ExternalID != "" {
		params["external_id"] = input.ExternalID
	}

	if input.MaxPagesToProcess > 0 {
		params["max_pages_to_process"] = input.MaxPagesToProcess
	}

	for k, v := range input.Extra {
		params[k] = v
	}

	var document Document

	if err := c.request(ctx, http.MethodPost, "/documents/", params, &document); err != nil {
		return nil, err
	}

	return &document, nil
}

type DocumentUpdate struct {
	Category string `json:"category,omitempty"`

	Date    string `json:"date,omitempty"`
	DueDate string `json:"due_date,omitempty"`

	ExternalID    string `json:"external_id,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`

	Notes string `json:"notes,omitempty"`

	Subtotal *float64 `json:"subtotal,omitempty"`
	Tax      *float64 `json:"tax,omitempty"`
	Tip      *float64 `json:"tip,omitempty"`
	Total    *float64 `json:"total,omitempty"`

	Vendor *Vendor `json:"vendor,omitempty"`

	Tags []string `json:"tags,omitempty"`

	Extra map[string]any `json:"-"`
}

func (r *DocumentService) Update(ctx context.Context, documentID int, input DocumentUpdate, opts ...RequestOption) (*Document, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	params, err := structParams(input)

	if err != nil {
		return nil, err
	}

	for k, v := range input.Extra {
		params[k] = v
	}

	var document Document

	if err := c.request(ctx, http.MethodPut, "/documents/"+strconv.Itoa(documentID)+"/", params, &document); err != nil {
		return nil, err
	}

	return &document, nil
}

func (r *DocumentService) Delete(ctx context.Context, documentID int, opts ...RequestOption) error {
	c := newRequestConfig(append(r.Options, opts...)...)

	return c.request(ctx, http.MethodDelete, "/documents/"+strconv.Itoa(documentID)+"/", nil, nil)
}
