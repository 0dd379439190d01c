package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"talentplay/internal/models"
	"talentplay/internal/repository"
)

type fakeReader struct {
	records map[string]*models.EvaluationResult
	reads   int
	failAt  int
}

func newFakeReader(records ...*models.EvaluationResult) *fakeReader {
	r := &fakeReader{records: make(map[string]*models.EvaluationResult)}
	for _, rec := range records {
		clone := *rec
		r.records[rec.Code] = &clone
	}
	return r
}

func (r *fakeReader) GetByCode(code string) (*models.EvaluationResult, error) {
	r.reads++
	if r.failAt > 0 && r.reads >= r.failAt {
		return nil, errors.New("connection reset")
	}
	rec, ok := r.records[code]
	if !ok {
		return nil, repository.ErrNoRows
	}
	clone := *rec
	return &clone, nil
}

func str(s string) *string { return &s }

func completedResult(code, name string) *models.EvaluationResult {
	completed := time.Date(2025, time.March, 7, 16, 45, 0, 0, time.UTC)
	return &models.EvaluationResult{
		Code:                   code,
		Name:                   name,
		Status:                 models.StatusCompleted,
		SentDate:               time.Date(2025, time.February, 20, 9, 0, 0, 0, time.UTC),
		CompletionDate:         &completed,
		GeneralEvaluation:      str("Strong analytical profile."),
		Strengths:              str("Pattern recognition, persistence."),
		DevelopmentAreas:       str("Delegation under pressure."),
		InterviewQuestions:     str("Describe a decision you reversed."),
		WhyTheseQuestions:      str("Probes reflective capacity."),
		DevelopmentSuggestions: str("Pair with a senior mentor."),
	}
}

func TestSetupPDFLicenseRejectsEmptyKey(t *testing.T) {
	if err := SetupPDFLicense(""); err == nil {
		t.Error("an empty license key must be rejected, not silently accepted")
	}
}

func TestPreviewUnknownCode(t *testing.T) {
	svc := NewReportService(newFakeReader())

	pdf, err := svc.Preview("nope", models.AllSections())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if pdf != nil {
		t.Error("no artifact may be produced for an unknown code")
	}
}

func TestPreviewNotCompleted(t *testing.T) {
	r := completedResult("abc", "Jane Doe")
	r.Status = models.StatusInProgress
	r.CompletionDate = nil

	svc := NewReportService(newFakeReader(r))

	if _, err := svc.Preview("abc", models.AllSections()); !errors.Is(err, ErrNotCompleted) {
		t.Errorf("err = %v, want ErrNotCompleted", err)
	}
}

func TestPreviewProducesPDF(t *testing.T) {
	requirePDFLicense(t)
	svc := NewReportService(newFakeReader(completedResult("abc", "Jane Doe")))

	pdf, err := svc.Preview("abc", models.AllSections())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestPreviewEmptySelectionYieldsCoverOnly(t *testing.T) {
	requirePDFLicense(t)
	svc := NewReportService(newFakeReader(completedResult("abc", "Jane Doe")))

	pdf, err := svc.Preview("abc", models.ReportOptions{})
	if err != nil {
		t.Fatalf("empty selection must still produce a document: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestPreviewSkipsEmptyContent(t *testing.T) {
	requirePDFLicense(t)
	r := completedResult("abc", "Jane Doe")
	r.InterviewQuestions = nil
	r.WhyTheseQuestions = str("")

	svc := NewReportService(newFakeReader(r))

	if _, err := svc.Preview("abc", models.AllSections()); err != nil {
		t.Fatalf("absent narrative fields must be skipped, not fail: %v", err)
	}
}

func TestDownloadFilename(t *testing.T) {
	requirePDFLicense(t)
	svc := NewReportService(newFakeReader(completedResult("abc", "Jane Doe")))

	report, err := svc.Download("abc", models.AllSections())
	if err != nil {
		t.Fatal(err)
	}
	if report.Filename != "Jane Doe_07032025.pdf" {
		t.Errorf("filename = %q, want %q", report.Filename, "Jane Doe_07032025.pdf")
	}
	if !bytes.HasPrefix(report.Bytes, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestDownloadFilenameFallsBackToNow(t *testing.T) {
	requirePDFLicense(t)
	// Completed status with a missing completion date can only come from
	// data written before the lifecycle stamping existed.
	r := completedResult("abc", "Jane Doe")
	r.CompletionDate = nil

	svc := NewReportService(newFakeReader(r))
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	}

	report, err := svc.Download("abc", models.AllSections())
	if err != nil {
		t.Fatal(err)
	}
	if report.Filename != "Jane Doe_01062025.pdf" {
		t.Errorf("filename = %q, want %q", report.Filename, "Jane Doe_01062025.pdf")
	}
}

func TestDownloadAbortsWhenMetadataReadFails(t *testing.T) {
	requirePDFLicense(t)
	reader := newFakeReader(completedResult("abc", "Jane Doe"))
	reader.failAt = 2 // first read composes, second read resolves the name

	svc := NewReportService(reader)

	report, err := svc.Download("abc", models.AllSections())
	if err == nil {
		t.Fatal("expected an error when the metadata read fails")
	}
	if report != nil {
		t.Error("bytes must not be delivered without a resolved filename")
	}
}

func TestPreviewDoesNotMutateRecord(t *testing.T) {
	requirePDFLicense(t)
	reader := newFakeReader(completedResult("abc", "Jane Doe"))
	svc := NewReportService(reader)

	before := *reader.records["abc"]
	if _, err := svc.Preview("abc", models.AllSections()); err != nil {
		t.Fatal(err)
	}
	after := *reader.records["abc"]

	if before.Status != after.Status || !before.CompletionDate.Equal(*after.CompletionDate) {
		t.Error("report generation must not touch the stored record")
	}
}
