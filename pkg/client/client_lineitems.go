package client

import (
	"context"
	"net/http"
	"strconv"
)

type LineItem struct {
	ID int `json:"id,omitempty"`

	Order *int `json:"order,omitempty"`

	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`

	Reference string `json:"reference,omitempty"`
	Section   string `json:"section,omitempty"`
	SKU       string `json:"sku,omitempty"`
	Type      string `json:"type,omitempty"`

	Discount *float64 `json:"discount,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Tax      *float64 `json:"tax,omitempty"`
	TaxRate  *float64 `json:"tax_rate,omitempty"`
	Total    *float64 `json:"total,omitempty"`

	UnitOfMeasure string `json:"unit_of_measure,omitempty"`
}

type LineItemService struct {
	Options []RequestOption
}

func NewLineItemService(opts ...RequestOption) LineItemService {
	return LineItemService{
		Options: opts,
	}
}

func lineItemsPath(documentID int) string {
	return "/documents/" + strconv.Itoa(documentID) + "/line-items/"
}

func (r *LineItemService) List(ctx context.Context, documentID int, opts ...RequestOption) ([]LineItem, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var result struct {
		LineItems []LineItem `json:"line_items"`
	}

	if err := c.request(ctx, http.MethodGet, lineItemsPath(documentID), nil, &result); err != nil {
		return nil, err
	}

	return result.LineItems, nil
}

func (r *LineItemService) Get(ctx context.Context, documentID, lineItemID int, opts ...RequestOption) (*LineItem, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var item LineItem

	if err := c.request(ctx, http.MethodGet, lineItemsPath(documentID)+strconv.Itoa(lineItemID), nil, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *LineItemService) Add(ctx context.Context, documentID int, input LineItem, opts ...RequestOption) (*LineItem, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	params, err := structParams(input)

	if err != nil {
		return nil, err
	}

	var item LineItem

	if err := c.request(ctx, http.MethodPost, lineItemsPath(documentID), params, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *LineItemService) Update(ctx context.Context, documentID, lineItemID int, input LineItem, opts ...RequestOption) (*LineItem, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	params, err := structParams(input)

	if err != nil {
		return nil, err
	}

	var item LineItem

	if err := c.request(ctx, http.MethodPut, lineItemsPath(documentID)+strconv.Itoa(lineItemID), params, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *LineItemService) Delete(ctx context.Context, documentID, lineItemID int, opts ...RequestOption) error {
	c := newRequestConfig(append(r.Options, opts...)...)

	return c.request(ctx, http.MethodDelete, lineItemsPath(documentID)+strconv.Itoa(lineItemID), nil, nil)
}

func (r *LineItemService) DeleteAll(ctx context.Context, documentID int, opts ...RequestOption) error {
	c := newRequestConfig(append(r.Options, opts...)...)

	return c.request(ctx, http.MethodDelete, lineItemsPath(documentID), nil, nil)
}
