package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"talentplay/internal/models"
	"talentplay/pkg/validator"
)

// ResultManager is the lifecycle surface the result handlers need.
type ResultManager interface {
	Create(name string, expiryDate time.Time) (*models.EvaluationResult, error)
	Get(code string) (*models.EvaluationResult, error)
	List() ([]models.EvaluationResult, error)
	Transition(code string, target models.Status) error
	Delete(code string) error
}

// ResultHandler handles evaluation result requests
type ResultHandler struct {
	results ResultManager
}

// NewResultHandler creates a new result handler
func NewResultHandler(results ResultManager) *ResultHandler {
	return &ResultHandler{results: results}
}

type resultsResponse struct {
	Success bool                      `json:"success"`
	Results []models.EvaluationResult `json:"results"`
}

// GetUserResults lists evaluation results
// @Summary List evaluation results
// @Description Without a code, returns all results. With ?code=, returns the single matching record.
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param code query string false "Result code"
// @Success 200 {object} handlers.resultsResponse
// @Failure 404 {object} map[string]string "Unknown code"
// @Router /api/user-results [get]
func (h *ResultHandler) GetUserResults(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("code"); code != "" {
		result, err := h.results.Get(code)
		if err != nil {
			respondWithServiceError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, resultsResponse{
			Success: true,
			Results: []models.EvaluationResult{*result},
		})
		return
	}

	results, err := h.results.List()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	// Empty lists serialize as [], not null; frontends index into this.
	if results == nil {
		results = []models.EvaluationResult{}
	}

	respondWithJSON(w, http.StatusOK, resultsResponse{Success: true, Results: results})
}

type updateStatusRequest struct {
	Code   string `json:"code" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// UpdateResultStatus advances a result's lifecycle status
// @Summary Update result status
// @Description Applies a forward-only status transition and broadcasts a resultUpdate event.
// @Tags Results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.updateStatusRequest true "Transition request"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Malformed request"
// @Failure 404 {object} map[string]string "Unknown code"
// @Failure 409 {object} map[string]string "Transition does not advance the lifecycle"
// @Router /api/update-result-status [post]
func (h *ResultHandler) UpdateResultStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	target := models.Status(req.Status)
	if !target.Valid() {
		respondWithError(w, http.StatusBadRequest, "unknown status: "+req.Status)
		return
	}

	if err := h.results.Transition(req.Code, target); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type deleteResultRequest struct {
	Code string `json:"code" validate:"required"`
}

// DeleteResult removes a result record
// @Summary Delete a result
// @Description Hard-deletes the record. No live event is broadcast; the caller re-fetches on success.
// @Tags Results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.deleteResultRequest true "Deletion request"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Unknown code"
// @Router /api/delete-result [delete]
func (h *ResultHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	var req deleteResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.results.Delete(req.Code); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type createResultRequest struct {
	Name       string     `json:"name" validate:"required"`
	ExpiryDate *time.Time `json:"expiryDate"`
}

// defaultInvitationValidity applies when no expiry is given.
const defaultInvitationValidity = 14 * 24 * time.Hour

// CreateResult issues a new assessment invitation record
// @Summary Create a result
// @Description Creates a pending record with a generated code and broadcasts a newResult event.
// @Tags Results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.createResultRequest true "Invitation request"
// @Success 201 {object} models.EvaluationResult
// @Failure 400 {object} map[string]string "Malformed request"
// @Router /api/create-result [post]
func (h *ResultHandler) CreateResult(w http.ResponseWriter, r *http.Request) {
	var req createResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	expiry := time.Now().Add(defaultInvitationValidity)
	if req.ExpiryDate != nil {
		expiry = *req.ExpiryDate
	}

	result, err := h.results.Create(req.Name, expiry)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}
