package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postWhatsAppLink(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp-link", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	WhatsAppLink("DIANDA S'STORE", "22676593914", nil).ServeHTTP(rec, req)
	return rec
}

func TestWhatsAppLinkComposes(t *testing.T) {
	rec := postWhatsAppLink(t, `{"items":[
		{"name":"Lampe","price":18000,"quantity":2},
		{"name":"Foulard","price":8000,"quantity":1}
	]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Message     string `json:"message"`
			URL         string `json:"url"`
			TotalAmount int    `json:"total_amount"`
			ItemCount   int    `json:"item_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	if envelope.Data.TotalAmount != 44000 || envelope.Data.ItemCount != 3 {
		t.Fatalf("totals = %+v", envelope.Data)
	}
	if !strings.HasPrefix(envelope.Data.URL, "https://wa.me/22676593914?text=") {
		t.Fatalf("url = %q", envelope.Data.URL)
	}
	if !strings.Contains(envelope.Data.Message, "Bonjour DIANDA S'STORE") {
		t.Fatalf("message = %q", envelope.Data.Message)
	}
}

func TestWhatsAppLinkValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"empty items", `{"items":[]}`},
		{"missing name", `{"items":[{"price":18000,"quantity":1}]}`},
		{"zero price", `{"items":[{"name":"Lampe","price":0,"quantity":1}]}`},
		{"zero quantity", `{"items":[{"name":"Lampe","price":18000,"quantity":0}]}`},
		{"unknown field", `{"items":[{"name":"Lampe","price":18000,"quantity":1}],"note":"vite"}`},
		{"malformed json", `{"items":[`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := postWhatsAppLink(t, tc.body); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}
