package mockapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/swapcell/swapcell/internal/auth"
	"github.com/swapcell/swapcell/internal/gateway"
	"github.com/swapcell/swapcell/internal/refdata"
)

// newMultipart writes a one-file multipart body into buf and returns
// the content type.
func newMultipart(t *testing.T, buf *bytes.Buffer, filename string, content []byte) string {
	t.Helper()
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return mw.FormDataContentType()
}

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(zerolog.Nop()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any, headers map[string]string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestModelsRequireBrandID(t *testing.T) {
	srv := newTestAPI(t)

	resp, err := http.Get(srv.URL + "/api/phone-models")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/phone-models?brandId=brand-apple")
	if err != nil {
		t.Fatal(err)
	}
	body := decode[struct {
		Models []refdata.Model `json:"models"`
	}](t, resp)
	if len(body.Models) == 0 {
		t.Fatal("no seeded Apple models")
	}
	for _, m := range body.Models {
		if m.BrandID != "brand-apple" {
			t.Errorf("model %s has brand %s", m.ID, m.BrandID)
		}
	}
}

func TestLeadAutoAssignsCityMatchedRetailer(t *testing.T) {
	srv := newTestAPI(t)

	payload := gateway.LeadPayload{
		PhoneBrand:       "Apple",
		CustomerPhone:    "9876543210",
		CustomerLocation: "mumbai", // case-insensitive match
	}

	resp := postJSON(t, srv.URL+"/api/leads", payload, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	result := decode[gateway.LeadResult](t, resp)

	if result.Status != "assigned" {
		t.Errorf("status = %q, want assigned", result.Status)
	}
	if result.AutoAssignedRetailer == nil {
		t.Fatal("no retailer assigned for a seeded city")
	}
	if result.AutoAssignedRetailer.Location != "Mumbai" {
		t.Errorf("retailer location = %q", result.AutoAssignedRetailer.Location)
	}
}

func TestLeadWithUnknownCityStaysPending(t *testing.T) {
	srv := newTestAPI(t)

	payload := gateway.LeadPayload{
		CustomerPhone:    "9876543210",
		CustomerLocation: "Smalltown",
	}
	resp := postJSON(t, srv.URL+"/api/leads", payload, nil)
	result := decode[gateway.LeadResult](t, resp)

	if result.Status != "pending" || result.AutoAssignedRetailer != nil {
		t.Errorf("unknown city: status=%q retailer=%v", result.Status, result.AutoAssignedRetailer)
	}
}

func TestLeadIdempotencyKeyReplays(t *testing.T) {
	srv := newTestAPI(t)

	payload := gateway.LeadPayload{
		CustomerPhone:    "9876543210",
		CustomerLocation: "Delhi",
	}
	headers := map[string]string{"Idempotency-Key": "same-key"}

	first := decode[gateway.LeadResult](t, postJSON(t, srv.URL+"/api/leads", payload, headers))
	second := decode[gateway.LeadResult](t, postJSON(t, srv.URL+"/api/leads", payload, headers))

	if first.ID != second.ID {
		t.Errorf("replay created a second lead: %s vs %s", first.ID, second.ID)
	}

	fresh := decode[gateway.LeadResult](t, postJSON(t, srv.URL+"/api/leads", payload, map[string]string{"Idempotency-Key": "other-key"}))
	if fresh.ID == first.ID {
		t.Error("a different key must create a new lead")
	}
}

func TestModelCRUD(t *testing.T) {
	srv := newTestAPI(t)

	created := decode[refdata.Model](t, postJSON(t, srv.URL+"/api/phone-models",
		refdata.Model{BrandID: "brand-apple", Name: "iPhone 15"}, nil))
	if created.ID == "" {
		t.Fatal("create returned no id")
	}

	// Update the name.
	data, _ := json.Marshal(refdata.Model{ID: created.ID, Name: "iPhone 15 Pro"})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/phone-models", bytes.NewReader(data))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	updated := decode[refdata.Model](t, resp)
	if updated.Name != "iPhone 15 Pro" || updated.BrandID != "brand-apple" {
		t.Errorf("updated = %+v", updated)
	}

	// Delete it.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/phone-models?id="+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	// Deleting again is a 404.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/phone-models?id="+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestOTPFlow(t *testing.T) {
	srv := newTestAPI(t)

	resp := postJSON(t, srv.URL+"/api/auth/otp/send", map[string]string{"email": "asha@example.com"}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send status = %d", resp.StatusCode)
	}

	// Wrong code is rejected.
	resp = postJSON(t, srv.URL+"/api/auth/otp/verify",
		map[string]string{"email": "asha@example.com", "code": "999999"}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad code status = %d, want 401", resp.StatusCode)
	}

	// The development code signs in.
	verified := decode[struct {
		Token string    `json:"token"`
		User  auth.User `json:"user"`
	}](t, postJSON(t, srv.URL+"/api/auth/otp/verify",
		map[string]string{"email": "asha@example.com", "code": auth.MockOTP}, nil))
	if verified.Token == "" {
		t.Fatal("no session token")
	}
	if verified.User.Email != "asha@example.com" || verified.User.Name != "asha" {
		t.Errorf("user = %+v", verified.User)
	}

	// The token works against /api/auth/me.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+verified.Token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	me := decode[auth.User](t, resp)
	if me.Email != "asha@example.com" {
		t.Errorf("me = %+v", me)
	}

	// Logout invalidates it.
	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+verified.Token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+verified.Token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("me after logout = %d, want 401", resp.StatusCode)
	}
}

func TestUpload(t *testing.T) {
	srv := newTestAPI(t)

	var buf bytes.Buffer
	mw := newMultipart(t, &buf, "bill.jpg", []byte("fake image bytes"))

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", &buf)
	req.Header.Set("Content-Type", mw)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body := decode[map[string]string](t, resp)
	if !strings.Contains(body["url"], "bill.jpg") {
		t.Errorf("upload url = %q", body["url"])
	}
}
