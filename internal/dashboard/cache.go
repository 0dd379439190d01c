package dashboard

import (
	"time"

	"talentplay/internal/models"
)

// ResultListCache is the dashboard's client-held copy of the full result
// list. It is a value object: every refresh replaces it wholesale, never
// merges into it, so the two refresh paths (poll and live channel) cannot
// leave divergent state behind.
type ResultListCache struct {
	results   []models.EvaluationResult
	fetchedAt time.Time
}

// NewCache builds a cache snapshot from a freshly fetched list.
func NewCache(results []models.EvaluationResult, fetchedAt time.Time) ResultListCache {
	return ResultListCache{results: results, fetchedAt: fetchedAt}
}

// Len returns the total number of cached results.
func (c ResultListCache) Len() int {
	return len(c.results)
}

// FetchedAt returns when this snapshot was taken.
func (c ResultListCache) FetchedAt() time.Time {
	return c.fetchedAt
}

// Page is one page-sliced view over the cache.
type Page struct {
	Rows       []Row
	Number     int
	TotalPages int
	TotalRows  int
}

// Page slices the cache into pages of size rows. Pages are 1-based. A
// page beyond the available range, or any page of an empty cache, yields
// an empty page rather than an error: the renderer shows an empty state.
func (c ResultListCache) Page(number, size int) Page {
	total := len(c.results)
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	page := Page{
		Rows:       []Row{},
		Number:     number,
		TotalPages: totalPages,
		TotalRows:  total,
	}

	if size <= 0 || number < 1 || number > totalPages {
		return page
	}

	start := (number - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	for _, result := range c.results[start:end] {
		page.Rows = append(page.Rows, rowFor(result))
	}

	return page
}

// completionPlaceholder is rendered when the candidate has not finished.
const completionPlaceholder = "-"

// Row is the render-ready projection of one result.
type Row struct {
	Code             string
	Name             string
	Badge            models.StatusDisplay
	SentDate         time.Time
	CompletionDate   string
	ExpiryDate       time.Time
	ReportExpiryDate time.Time

	// CanOpenReport gates the report-selection action: only completed
	// results have anything to report on. Deletion is never gated.
	CanOpenReport bool
}

func rowFor(result models.EvaluationResult) Row {
	completion := completionPlaceholder
	if result.CompletionDate != nil {
		completion = result.CompletionDate.Format("02.01.2006")
	}

	return Row{
		Code:             result.Code,
		Name:             result.Name,
		Badge:            result.Status.Display(),
		SentDate:         result.SentDate,
		CompletionDate:   completion,
		ExpiryDate:       result.ExpiryDate,
		ReportExpiryDate: models.ReportExpiry(result.SentDate),
		CanOpenReport:    result.Completed(),
	}
}
