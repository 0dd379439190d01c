package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"

	"talentplay/internal/models"
	"talentplay/internal/repository"
)

// ReportReader is the read-only store surface the composer needs.
// Generation must never mutate the underlying record.
type ReportReader interface {
	GetByCode(code string) (*models.EvaluationResult, error)
}

// NamedReport is the outcome of the two-step download pipeline: bytes are
// only ever delivered together with a resolved filename.
type NamedReport struct {
	Bytes    []byte
	Filename string
}

// ReportService composes PDF reports from stored narrative fields, gated
// by per-section selection flags.
type ReportService struct {
	store ReportReader
	now   func() time.Time
}

// NewReportService creates a new report service
func NewReportService(store ReportReader) *ReportService {
	return &ReportService{
		store: store,
		now:   time.Now,
	}
}

// Preview composes the report restricted to the selected sections and
// returns the PDF bytes for inline display. An empty selection is valid
// and yields a cover-only document.
func (s *ReportService) Preview(code string, opts models.ReportOptions) ([]byte, error) {
	result, err := s.store.GetByCode(code)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !result.Completed() {
		return nil, ErrNotCompleted
	}

	pdf, err := composePDF(result, opts)
	if err != nil {
		// Surfaced verbatim: the cause is actionable for an administrator.
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return pdf, nil
}

// Download runs the two-step pipeline: generate the binary, then re-read
// the record to synthesize the {name}_{ddMMyyyy}.pdf filename. A failure
// in the second step aborts delivery; generated bytes are never handed
// out unnamed.
func (s *ReportService) Download(code string, opts models.ReportOptions) (*NamedReport, error) {
	pdf, err := s.Preview(code, opts)
	if err != nil {
		return nil, err
	}

	result, err := s.store.GetByCode(code)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report metadata: %w", err)
	}

	completed := s.now()
	if result.CompletionDate != nil {
		completed = *result.CompletionDate
	}

	return &NamedReport{
		Bytes:    pdf,
		Filename: fmt.Sprintf("%s_%s.pdf", result.Name, completed.Format("02012006")),
	}, nil
}

// reportSection pairs a heading with the narrative content behind one
// selection flag.
type reportSection struct {
	title   string
	content *string
}

func selectedSections(result *models.EvaluationResult, opts models.ReportOptions) []reportSection {
	var sections []reportSection
	if opts.GeneralEvaluation {
		sections = append(sections, reportSection{"General Evaluation", result.GeneralEvaluation})
	}
	if opts.Strengths {
		sections = append(sections,
			reportSection{"Strengths", result.Strengths},
			reportSection{"Development Areas", result.DevelopmentAreas})
	}
	if opts.InterviewQuestions {
		sections = append(sections, reportSection{"Interview Questions", result.InterviewQuestions})
	}
	if opts.WhyTheseQuestions {
		sections = append(sections, reportSection{"Why These Questions", result.WhyTheseQuestions})
	}
	if opts.DevelopmentSuggestions {
		sections = append(sections, reportSection{"Development Suggestions", result.DevelopmentSuggestions})
	}
	return sections
}

func composePDF(result *models.EvaluationResult, opts models.ReportOptions) ([]byte, error) {
	titleFont, err := model.NewStandard14Font(model.HelveticaBoldName)
	if err != nil {
		return nil, fmt.Errorf("failed to load title font: %w", err)
	}
	bodyFont, err := model.NewStandard14Font(model.HelveticaName)
	if err != nil {
		return nil, fmt.Errorf("failed to load body font: %w", err)
	}

	c := creator.New()
	c.SetPageMargins(50, 50, 60, 60)
	c.NewPage()

	title := c.NewParagraph("Candidate Assessment Report")
	title.SetFont(titleFont)
	title.SetFontSize(20)
	title.SetMargins(0, 0, 0, 8)
	if err := c.Draw(title); err != nil {
		return nil, fmt.Errorf("failed to draw title: %w", err)
	}

	subtitle := c.NewParagraph(coverLine(result))
	subtitle.SetFont(bodyFont)
	subtitle.SetFontSize(11)
	subtitle.SetMargins(0, 0, 0, 20)
	if err := c.Draw(subtitle); err != nil {
		return nil, fmt.Errorf("failed to draw cover line: %w", err)
	}

	for _, section := range selectedSections(result, opts) {
		if section.content == nil || *section.content == "" {
			continue
		}

		heading := c.NewParagraph(section.title)
		heading.SetFont(titleFont)
		heading.SetFontSize(14)
		heading.SetMargins(0, 0, 10, 6)
		if err := c.Draw(heading); err != nil {
			return nil, fmt.Errorf("failed to draw heading %q: %w", section.title, err)
		}

		body := c.NewParagraph(*section.content)
		body.SetFont(bodyFont)
		body.SetFontSize(11)
		body.SetLineHeight(1.4)
		if err := c.Draw(body); err != nil {
			return nil, fmt.Errorf("failed to draw section %q: %w", section.title, err)
		}
	}

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func coverLine(result *models.EvaluationResult) string {
	if result.CompletionDate == nil {
		return result.Name
	}
	return fmt.Sprintf("%s - completed %s", result.Name, result.CompletionDate.Format("02.01.2006"))
}
