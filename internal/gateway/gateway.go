// Package gateway performs the single network call that ends a wizard
// session: create a lead for the sell flow, create a product for the
// retailer flow. It does exactly one POST per call, never retries, and
// passes server-driven side effects (such as a retailer auto-assigned
// to a new lead) through to the caller unmodified.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swapcell/swapcell/internal/auth"
	"github.com/swapcell/swapcell/internal/wizard"
)

// Retailer describes a retailer the backend auto-assigned to a lead.
type Retailer struct {
	Location     string `json:"location"`
	BusinessName string `json:"businessName"`
}

// LeadResult is the backend's answer to a lead submission.
type LeadResult struct {
	ID                   string    `json:"id"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	AutoAssignedRetailer *Retailer `json:"autoAssignedRetailer,omitempty"`
}

// ProductResult is the backend's answer to a product submission.
type ProductResult struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmissionError carries a message suitable for direct display. The
// form state is untouched on failure, so the caller can re-invoke the
// same submission as a retry.
type SubmissionError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SubmissionError) Error() string { return e.Message }

// Unwrap exposes the underlying cause.
func (e *SubmissionError) Unwrap() error { return e.Err }

// Gateway submits completed wizard forms to the marketplace API. The
// auth gateway is injected; the customer id on outgoing payloads always
// comes from the live session, never from the form.
type Gateway struct {
	baseURL string
	http    *http.Client
	auth    auth.Gateway
	log     zerolog.Logger
}

// New creates a submission gateway.
func New(baseURL string, httpClient *http.Client, authGW auth.Gateway, log zerolog.Logger) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		auth:    authGW,
		log:     log,
	}
}

// NewIdempotencyKey mints the key a wizard session attaches to its
// submission. One key per session: a retry after failure reuses it, so
// a double-tap or a retry-after-timeout cannot create two leads.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

// SubmitLead sends the sell-flow form as a lead. idemKey should come
// from NewIdempotencyKey at session start; an empty key gets a fresh
// one (losing retry protection for that submission).
func (g *Gateway) SubmitLead(ctx context.Context, form *wizard.FormState, idemKey string) (*LeadResult, error) {
	user, err := g.auth.CurrentUser(ctx)
	if err != nil {
		return nil, &SubmissionError{Message: "You need to be signed in to submit a request.", Err: err}
	}

	payload := BuildLeadPayload(user.ID, form)
	var result LeadResult
	if err := g.post(ctx, "/api/leads", idemKey, payload, &result); err != nil {
		return nil, err
	}

	g.log.Info().
		Str("lead", result.ID).
		Bool("autoAssigned", result.AutoAssignedRetailer != nil).
		Msg("lead submitted")
	return &result, nil
}

// SubmitProduct sends the product-flow form as a new listing.
func (g *Gateway) SubmitProduct(ctx context.Context, form *wizard.FormState, idemKey string) (*ProductResult, error) {
	user, err := g.auth.CurrentUser(ctx)
	if err != nil {
		return nil, &SubmissionError{Message: "You need to be signed in to create a listing.", Err: err}
	}

	payload := BuildProductPayload(user.ID, form)
	var result ProductResult
	if err := g.post(ctx, "/api/products", idemKey, payload, &result); err != nil {
		return nil, err
	}

	g.log.Info().Str("product", result.ID).Msg("product submitted")
	return &result, nil
}

func (g *Gateway) post(ctx context.Context, path, idemKey string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &SubmissionError{Message: "Could not prepare your submission.", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return &SubmissionError{Message: "Could not prepare your submission.", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if idemKey == "" {
		idemKey = NewIdempotencyKey()
	}
	req.Header.Set("Idempotency-Key", idemKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return &SubmissionError{Message: "Could not reach the server. Check your connection and try again.", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("The server rejected the submission (status %d).", resp.StatusCode)
		}
		return &SubmissionError{
			Message: msg,
			Err:     fmt.Errorf("%s returned status %d", path, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &SubmissionError{Message: "The server response could not be read.", Err: err}
	}
	return nil
}
