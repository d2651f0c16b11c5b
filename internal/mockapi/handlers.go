package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swapcell/swapcell/internal/auth"
	"github.com/swapcell/swapcell/internal/gateway"
	"github.com/swapcell/swapcell/internal/refdata"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ---------------------------------------------------------------------------
// Reference catalog
// ---------------------------------------------------------------------------

func (s *Server) handleBrands(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	brands := append([]refdata.Brand(nil), s.brands...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"brands": brands})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	brandID := r.URL.Query().Get("brandId")
	if brandID == "" {
		http.Error(w, "brandId query parameter is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	var models []refdata.Model
	for _, m := range s.models {
		if m.BrandID == brandID {
			models = append(models, m)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	modelID := r.URL.Query().Get("modelId")
	if modelID == "" {
		http.Error(w, "modelId query parameter is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	var variants []refdata.Variant
	for _, v := range s.variants {
		if v.ModelID == modelID {
			variants = append(variants, v)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"variants": variants})
}

func (s *Server) handleCreateModel(w http.ResponseWriter, r *http.Request) {
	var m refdata.Model
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if m.Name == "" || m.BrandID == "" {
		http.Error(w, "name and brandId are required", http.StatusBadRequest)
		return
	}
	m.ID = "model-" + uuid.NewString()

	s.mu.Lock()
	s.models = append(s.models, m)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdateModel(w http.ResponseWriter, r *http.Request) {
	var m refdata.Model
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.models {
		if s.models[i].ID == m.ID {
			if m.Name != "" {
				s.models[i].Name = m.Name
			}
			if m.BrandID != "" {
				s.models[i].BrandID = m.BrandID
			}
			writeJSON(w, http.StatusOK, s.models[i])
			return
		}
	}
	http.Error(w, "model not found", http.StatusNotFound)
}

func (s *Server) handleDeleteModel(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id query parameter is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.models {
		if s.models[i].ID == id {
			s.models = append(s.models[:i], s.models[i+1:]...)
			// Drop the orphaned variants as well.
			kept := s.variants[:0]
			for _, v := range s.variants {
				if v.ModelID != id {
					kept = append(kept, v)
				}
			}
			s.variants = kept
			writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
			return
		}
	}
	http.Error(w, "model not found", http.StatusNotFound)
}

// ---------------------------------------------------------------------------
// Lead and product creation
// ---------------------------------------------------------------------------

// handleCreateLead stores the lead and auto-assigns a retailer whose
// location matches the customer's city. A repeated Idempotency-Key
// replays the original response instead of creating a second lead.
func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var payload gateway.LeadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if payload.CustomerPhone == "" || payload.CustomerLocation == "" {
		http.Error(w, "customerPhone and customerLocation are required", http.StatusBadRequest)
		return
	}

	key := r.Header.Get("Idempotency-Key")

	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if rec, ok := s.leads[key]; ok {
			writeJSON(w, http.StatusOK, rec.Result)
			return
		}
	} else {
		key = uuid.NewString()
	}

	result := gateway.LeadResult{
		ID:        "lead-" + uuid.NewString(),
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	}
	for _, ret := range s.retailers {
		if strings.EqualFold(ret.Location, payload.CustomerLocation) {
			result.AutoAssignedRetailer = &gateway.Retailer{
				Location:     ret.Location,
				BusinessName: ret.BusinessName,
			}
			result.Status = "assigned"
			break
		}
	}

	s.leads[key] = leadRecord{Payload: payload, Result: result}
	s.log.Info().
		Str("lead", result.ID).
		Str("city", payload.CustomerLocation).
		Bool("assigned", result.AutoAssignedRetailer != nil).
		Msg("lead created")

	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var payload gateway.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.CategoryID == "" {
		http.Error(w, "title and categoryId are required", http.StatusBadRequest)
		return
	}

	result := gateway.ProductResult{
		ID:        "prod-" + uuid.NewString(),
		Status:    "active",
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.products[result.ID] = result
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	_, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	url := fmt.Sprintf("https://cdn.swapcell.example/uploads/%s-%s", uuid.NewString()[:8], header.Filename)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !strings.Contains(body.Email, "@") {
		http.Error(w, "a valid email is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.otps[body.Email] = auth.MockOTP
	s.mu.Unlock()

	// The development server logs the code instead of emailing it.
	s.log.Info().Str("email", body.Email).Str("code", auth.MockOTP).Msg("OTP issued")
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.otps[body.Email]
	if !ok || code != body.Code {
		http.Error(w, "incorrect OTP", http.StatusUnauthorized)
		return
	}
	delete(s.otps, body.Email)

	local, _, _ := strings.Cut(body.Email, "@")
	user := auth.User{
		ID:    "user-" + uuid.NewString(),
		Name:  local,
		Email: body.Email,
		Role:  "customer",
	}
	token := uuid.NewString()
	s.sessions[token] = user

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	user, ok := s.sessions[token]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "invalid session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
