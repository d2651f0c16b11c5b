package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/swapcell/swapcell/internal/auth"
	"github.com/swapcell/swapcell/internal/wizard"
)

// fakeAuth satisfies auth.Gateway with a fixed user (or a fixed error).
type fakeAuth struct {
	user *auth.User
	err  error
}

func (f *fakeAuth) SendOTP(context.Context, string) error { return nil }
func (f *fakeAuth) VerifyOTP(context.Context, string, string) (*auth.User, error) {
	return f.user, f.err
}
func (f *fakeAuth) CurrentUser(context.Context) (*auth.User, error) { return f.user, f.err }
func (f *fakeAuth) Logout(context.Context) error                    { return nil }

func signedIn() *fakeAuth {
	return &fakeAuth{user: &auth.User{ID: "cust-7", Name: "Asha", Role: "customer"}}
}

func TestSubmitLeadSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotPayload LeadPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		json.NewEncoder(w).Encode(LeadResult{ID: "lead-1", Status: "pending"})
	}))
	defer srv.Close()

	g := New(srv.URL, nil, signedIn(), zerolog.Nop())
	res, err := g.SubmitLead(context.Background(), sellForm(), "key-abc")
	if err != nil {
		t.Fatalf("SubmitLead: %v", err)
	}

	if gotKey != "key-abc" {
		t.Errorf("Idempotency-Key = %q, want key-abc", gotKey)
	}
	if gotPayload.CustomerID != "cust-7" {
		t.Errorf("customer id on the wire = %q, want the session's, not the form's", gotPayload.CustomerID)
	}
	if res.ID != "lead-1" {
		t.Errorf("result id = %q", res.ID)
	}
}

func TestSubmitLeadPassesRetailerThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(LeadResult{
			ID:     "lead-2",
			Status: "assigned",
			AutoAssignedRetailer: &Retailer{
				Location:     "Mumbai",
				BusinessName: "Mobile Hub",
			},
		})
	}))
	defer srv.Close()

	g := New(srv.URL, nil, signedIn(), zerolog.Nop())
	res, err := g.SubmitLead(context.Background(), sellForm(), "")
	if err != nil {
		t.Fatalf("SubmitLead: %v", err)
	}

	if res.AutoAssignedRetailer == nil {
		t.Fatal("retailer assignment was dropped")
	}
	if res.AutoAssignedRetailer.BusinessName != "Mobile Hub" || res.AutoAssignedRetailer.Location != "Mumbai" {
		t.Errorf("retailer = %+v", res.AutoAssignedRetailer)
	}
	if res.Status != "assigned" {
		t.Errorf("status = %q", res.Status)
	}
}

func TestSubmitLeadNotSignedIn(t *testing.T) {
	g := New("http://unused.invalid", nil, &fakeAuth{err: auth.ErrNotAuthenticated}, zerolog.Nop())

	_, err := g.SubmitLead(context.Background(), sellForm(), "")
	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("error type %T, want *SubmissionError", err)
	}
	if !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Error("cause should unwrap to ErrNotAuthenticated")
	}
	if se.Message == "" {
		t.Error("submission errors must carry a displayable message")
	}
}

func TestSubmitLeadServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "phone number already has an open request", http.StatusConflict)
	}))
	defer srv.Close()

	g := New(srv.URL, nil, signedIn(), zerolog.Nop())
	_, err := g.SubmitLead(context.Background(), sellForm(), "")

	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("error type %T, want *SubmissionError", err)
	}
	if se.Message != "phone number already has an open request" {
		t.Errorf("message = %q, want the server's body", se.Message)
	}
}

func TestSubmitLeadNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	g := New(srv.URL, nil, signedIn(), zerolog.Nop())
	_, err := g.SubmitLead(context.Background(), sellForm(), "")

	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("error type %T, want *SubmissionError", err)
	}
}

func TestSubmitProduct(t *testing.T) {
	var gotPayload ProductPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		json.NewEncoder(w).Encode(ProductResult{ID: "prod-1", Status: "active"})
	}))
	defer srv.Close()

	form := wizard.NewFormState()
	form.SetAll(map[wizard.Field]string{
		wizard.FieldCategoryID:   "cat-accessories",
		wizard.FieldCategoryName: "Accessories",
		wizard.FieldBrandID:      "brand-boat",
		wizard.FieldTitle:        "Earbuds",
		wizard.FieldPrice:        "1500",
	})

	g := New(srv.URL, nil, signedIn(), zerolog.Nop())
	res, err := g.SubmitProduct(context.Background(), form, "key-p")
	if err != nil {
		t.Fatalf("SubmitProduct: %v", err)
	}
	if res.ID != "prod-1" {
		t.Errorf("result id = %q", res.ID)
	}
	if gotPayload.RetailerID != "cust-7" || gotPayload.Status != "active" {
		t.Errorf("payload = %+v", gotPayload)
	}
}

func TestNewIdempotencyKeyIsUnique(t *testing.T) {
	if NewIdempotencyKey() == NewIdempotencyKey() {
		t.Error("keys must be unique per call")
	}
}
