package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"talentplay/internal/models"
	"talentplay/internal/service"
	"talentplay/pkg/validator"
)

// ReportComposer is the generation surface the report handlers need.
type ReportComposer interface {
	Preview(code string, opts models.ReportOptions) ([]byte, error)
	Download(code string, opts models.ReportOptions) (*service.NamedReport, error)
}

// ReportHandler handles report generation requests
type ReportHandler struct {
	reports ReportComposer
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports ReportComposer) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// PreviewPDF composes a report for inline display
// @Summary Preview a report PDF
// @Description Composes the PDF restricted to the selected sections. Omitted section flags default to on.
// @Tags Reports
// @Produce application/pdf
// @Security BearerAuth
// @Param code query string true "Result code"
// @Param generalEvaluation query boolean false "Include general evaluation"
// @Param strengths query boolean false "Include strengths and development areas"
// @Param interviewQuestions query boolean false "Include interview questions"
// @Param whyTheseQuestions query boolean false "Include question rationale"
// @Param developmentSuggestions query boolean false "Include development suggestions"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Result not completed or missing code"
// @Failure 404 {object} map[string]string "Unknown code"
// @Failure 500 {object} map[string]string "Generation failure, cause included"
// @Router /api/preview-pdf [get]
func (h *ReportHandler) PreviewPDF(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	code := query.Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, ErrMsgMissingCode)
		return
	}

	pdf, err := h.reports.Preview(code, optionsFromQuery(query))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}

type generatePDFRequest struct {
	UserCode        string               `json:"userCode" validate:"required"`
	SelectedOptions models.ReportOptions `json:"selectedOptions"`
}

// GeneratePDF composes a report for download
// @Summary Generate a report PDF for download
// @Description Composes the PDF, then resolves candidate metadata to name the file {name}_{ddMMyyyy}.pdf.
// @Tags Reports
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param request body handlers.generatePDFRequest true "Generation request"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Result not completed or malformed request"
// @Failure 404 {object} map[string]string "Unknown code"
// @Failure 500 {object} map[string]string "Generation failure, cause included"
// @Router /api/evaluation/generatePDF [post]
func (h *ReportHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req generatePDFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.reports.Download(req.UserCode, req.SelectedOptions)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Bytes)))
	_, _ = w.Write(report.Bytes)
}

// optionsFromQuery reads section flags from preview query parameters. An
// omitted flag defaults to on, matching the all-on default of the report
// selection dialog; only an explicit false turns a section off.
func optionsFromQuery(query url.Values) models.ReportOptions {
	return models.ReportOptions{
		GeneralEvaluation:      flagFromQuery(query, "generalEvaluation"),
		Strengths:              flagFromQuery(query, "strengths"),
		InterviewQuestions:     flagFromQuery(query, "interviewQuestions"),
		WhyTheseQuestions:      flagFromQuery(query, "whyTheseQuestions"),
		DevelopmentSuggestions: flagFromQuery(query, "developmentSuggestions"),
	}
}

func flagFromQuery(query url.Values, name string) bool {
	value := query.Get(name)
	if value == "" {
		return true
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return parsed
}
