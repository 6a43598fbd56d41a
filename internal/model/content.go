package model

import "time"

// Teaching is a published article. Tags carry resolved tag names and
// SeriesTitle the resolved series title, never raw references; TagIDs are
// kept separately because list filtering matches on identifiers.
type Teaching struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Excerpt     string        `json:"excerpt"`
	Content     string        `json:"content"`
	PublishedAt time.Time     `json:"publishedAt"`
	ReadingTime int           `json:"readingTime"`
	Tags        []string      `json:"tags"`
	TagIDs      []string      `json:"-"`
	SeriesID    string        `json:"-"`
	SeriesTitle string        `json:"seriesName,omitempty"`
	AuthorName  string        `json:"authorName"`
	Related     []TeachingRef `json:"relatedTeachings,omitempty"`

	// Seq is the creation-order position, used as the stable tie-break
	// when teachings share a publishedAt timestamp.
	Seq int64 `json:"-"`
}

// TeachingRef is the minimal pointer shape used for related-content lists.
type TeachingRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// TeachingSummary is the shape listed under a series detail page.
type TeachingSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	PublishedAt time.Time `json:"publishedAt"`
	ReadingTime int       `json:"readingTime"`
}

func (t Teaching) Ref() TeachingRef {
	return TeachingRef{ID: t.ID, Title: t.Title, Slug: t.Slug}
}

func (t Teaching) Summary() TeachingSummary {
	return TeachingSummary{
		ID:          t.ID,
		Title:       t.Title,
		Slug:        t.Slug,
		Excerpt:     t.Excerpt,
		PublishedAt: t.PublishedAt,
		ReadingTime: t.ReadingTime,
	}
}

// Series groups teachings thematically. TeachingCount is always computed at
// read time from the store; it is never persisted.
type Series struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	CoverImage    string `json:"coverImage"`
	TeachingCount int    `json:"teachingCount"`
}

type SeriesDetail struct {
	Series
	Teachings []TeachingSummary `json:"teachings"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Comment struct {
	ID          string    `json:"id"`
	TeachingID  string    `json:"teachingId"`
	AuthorName  string    `json:"name"`
	AuthorEmail string    `json:"email,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"date"`
}

// TeachingFilter narrows a teaching listing. Fields combine with AND;
// within TagIDs a teaching matches when it carries any of the listed tags.
type TeachingFilter struct {
	Search    string
	SeriesID  string
	TagIDs    []string
	StartDate *time.Time
	EndDate   *time.Time
}

func (f TeachingFilter) IsZero() bool {
	return f.Search == "" && f.SeriesID == "" && len(f.TagIDs) == 0 &&
		f.StartDate == nil && f.EndDate == nil
}
