// Package veryfitest provides an in-memory double of the partner API for
// tests and local development.
package veryfitest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/veryfi/veryfi-go/pkg/client"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Server struct {
	ClientID     string
	ClientSecret string

	Username string
	APIKey   string

	mu sync.Mutex

	nextDocumentID int
	nextLineItemID int
	nextTagID      int

	documents map[int]*client.Document
}

func New(clientID, username, apiKey string) *Server {
	return &Server{
		ClientID: clientID,

		Username: username,
		APIKey:   apiKey,

		nextDocumentID: 1,
		nextLineItemID: 1,
		nextTagID:      1,

		documents: map[int]*client.Document{},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/"+client.DefaultVersion+"/partner", s.Attach)

	return r
}

func (s *Server) Attach(r chi.Router) {
	r.Use(s.authenticate)

	r.Get("/documents/", s.handleDocumentList)
	r.Post("/documents/", s.handleDocumentProcess)

	r.Get("/documents/{documentID}/", s.handleDocumentGet)
	r.Put("/documents/{documentID}/", s.handleDocumentUpdate)
	r.Delete("/documents/{documentID}/", s.handleDocumentDelete)

	r.Get("/documents/{documentID}/line-items/", s.handleLineItemList)
	r.Post("/documents/{documentID}/line-items/", s.handleLineItemAdd)
	r.Delete("/documents/{documentID}/line-items/", s.handleLineItemDeleteAll)

	r.Get("/documents/{documentID}/line-items/{lineItemID}", s.handleLineItemGet)
	r.Put("/documents/{documentID}/line-items/{lineItemID}", s.handleLineItemUpdate)
	r.Delete("/documents/{documentID}/line-items/{lineItemID}", s.handleLineItemDelete)

	r.Put("/documents/{documentID}/tags/", s.handleTagAdd)
	r.Post("/documents/{documentID}/tags/", s.handleTagAddMany)

	r.Post("/w9s/", s.handleW9Process)
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Client-Id") != s.ClientID {
			writeError(w, http.StatusUnauthorized, errors.New("invalid client id"))
			return
		}

		if r.Header.Get("Authorization") != "apikey "+s.Username+":"+s.APIKey {
			writeError(w, http.StatusUnauthorized, errors.New("invalid api key"))
			return
		}

		if s.ClientSecret != "" {
			timestamp := r.Header.Get("X-Veryfi-Request-Timestamp")

			if timestamp == "" {
				writeError(w, http.StatusUnauthorized, errors.New("missing request timestamp"))
				return
			}

			params := map[string]any{}

			if r.Method != http.MethodGet && r.Method != http.MethodDelete {
				if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
					writeError(w, http.StatusBadRequest, err)
					return
				}

				r = requestWithParams(r, params)
			}

			if r.Header.Get("X-Veryfi-Request-Signature") != client.Signature(s.ClientSecret, params, timestamp) {
				writeError(w, http.StatusUnauthorized, errors.New("invalid request signature"))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleDocumentList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := r.URL.Query()

	var documents []client.Document

	for _, d := range s.documents {
		if !matchDocument(d, query) {
			continue
		}

		documents = append(documents, *d)
	}

	writeJson(w, map[string]any{
		"documents": documents,
	})
}

func matchDocument(d *client.Document, query map[string][]string) bool {
	get := func(key string) string {
		if vals := query[key]; len(vals) > 0 {
			return vals[0]
		}

		return ""
	}

	if q := get("q"); q != "" {
		haystack := strings.Join([]string{
			d.ExternalID,
			d.Category,
			d.Vendor.Name,
			d.Notes,
			d.InvoiceNumber,
			d.OCRText,
		}, "\n")

		if !strings.Contains(haystack, q) {
			return false
		}
	}

	if val := get("external_id"); val != "" && d.ExternalID != val {
		return false
	}

	if val := get("tag"); val != "" {
		found := false

		for _, tag := range d.Tags {
			if tag.Name == val {
				found = true
			}
		}

		if !found {
			return false
		}
	}

	// Timestamps use a fixed-width layout, so lexicographic compare is
	// also chronological.
	if val := get("created__gt"); val != "" && !(d.CreatedDate > val) {
		return false
	}

	if val := get("created__gte"); val != "" && !(d.CreatedDate >= val) {
		return false
	}

	if val := get("created__lt"); val != "" && !(d.CreatedDate < val) {
		return false
	}

	if val := get("created__lte"); val != "" && !(d.CreatedDate <= val) {
		return false
	}

	return true
}

func (s *Server) handleDocumentProcess(w http.ResponseWriter, r *http.Request) {
	params, err := readParams(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if stringValue(params, "file_data") == "" && stringValue(params, "file_url") == "" && len(sliceValue(params, "file_urls")) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no file provided"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	document := &client.Document{
		ID: s.nextDocumentID,

		ExternalID: stringValue(params, "external_id"),

		ImgFileName: stringValue(params, "file_name"),
		ImgURL:      "https://scdn.veryfi.com/receipts/" + uuid.New().String() + ".jpg",

		CreatedDate: time.Now().UTC().Format("2006-01-02 15:04:05"),
	}

	if categories := sliceValue(params, "categories"); len(categories) > 0 {
		document.Category = categories[0]
	}

	s.nextDocumentID++

	if !boolValue(params, "auto_delete") {
		s.documents[document.ID] = document
	}

	writeJson(w, document)
}

func (s *Server) handleDocumentGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.document(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	writeJson(w, document)
}

func (s *Server) handleDocumentUpdate(w http.ResponseWriter, r *http.Request) {
	params, err := readParams(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.document(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	if names, ok := params["tags"]; ok {
		document.Tags = nil

		for _, name := range toSlice(names) {
			document.Tags = append(document.Tags, client.Tag{
				ID:   s.nextTagID,
				Name: name,
			})

			s.nextTagID++
		}

		delete(params, "tags")
	}

	if err := mergeDocument(document, params); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	document.UpdatedDate = time.Now().UTC().Format("2006-01-02 15:04:05")

	writeJson(w, document)
}

func (s *Server) handleDocumentDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.document(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	delete(s.documents, document.ID)

	writeJson(w, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleLineItemList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.document(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	writeJson(w, map[string]any{
		"line_items": document.LineItems,
	})
}

func (s *Server) handleLineItemAdd(w http.ResponseWriter, r *http.Request) {
	var item client.LineItem

	if err := readInto(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.document(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	item.ID = s.nextLineItemID
	s.nextLineItemID++

	document.LineItems = append(document.LineItems, item)

	writeJson(w, item)
}

func (s *Server) handleLineItemGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, item, err := s.lineItem(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	writeJson(w, item)
}

func (s *Server) handleLineItemUpdate(w http.ResponseWriter, r *http.Request) {
	var update client.LineItem

	if err := readInto(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	document, item, err := s.lineItem(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	update.ID = item.ID

	for i := range document.LineItems {
		if document.LineItems[i].ID == item.ID {
			document.LineItems[i] = update
		}
	}

	writeJson(w, update)
}

func (s *Server) handleLineItemDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	document, item, err := s.lineItem(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var items []client.LineItem

	for _, li := range document.LineItems {
		if li.ID == item.ID {
			continue
		}

		items = append(items, li)
	}

	document.LineItems = items

	writeJson(w, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleLineItemDeleteAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.document(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	document.LineItems = nil

	writeJson(w, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleTagAdd(w http.ResponseWriter, r *http.Request) {
	params, err := readParams(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	name := stringValue(params, "name")

	if name == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing tag name"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.document(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	tag := client.Tag{
		ID:   s.nextTagID,
		Name: name,
	}

	s.nextTagID++

	document.Tags = append(document.Tags, tag)

	writeJson(w, tag)
}

func (s *Server) handleTagAddMany(w http.ResponseWriter, r *http.Request) {
	params, err := readParams(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.document(r)

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var tags []client.Tag

	for _, name := range sliceValue(params, "tags") {
		tag := client.Tag{
			ID:   s.nextTagID,
			Name: name,
		}

		s.nextTagID++

		document.Tags = append(document.Tags, tag)
		tags = append(tags, tag)
	}

	writeJson(w, map[string]any{
		"tags": tags,
	})
}

func (s *Server) handleW9Process(w http.ResponseWriter, r *http.Request) {
	params, err := readParams(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if stringValue(params, "file_data") == "" && stringValue(params, "file_url") == "" {
		writeError(w, http.StatusBadRequest, errors.New("no file provided"))
		return
	}

	s.mu.Lock()

	id := s.nextDocumentID
	s.nextDocumentID++

	s.mu.Unlock()

	writeJson(w, client.W9{
		ID: id,

		Name:         "John Doe",
		BusinessName: "Doe Consulting LLC",

		TaxClassification: "individual",

		EIN: "12-3456789",

		PDFURL: "https://scdn.veryfi.com/w9s/" + stringValue(params, "file_name"),
	})
}
