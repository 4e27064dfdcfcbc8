// Package parse turns raw model output into validated news items.
// Validation is lenient-with-defaults: a slightly wrong classification is far
// cheaper than discarding an otherwise usable item over one malformed field.
package parse

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/newspulse/newsgen/model"
)

// ErrNoJSON is raised only when the response contains no JSON-shaped span at
// all. Everything less broken than that is recovered via defaulting.
var ErrNoJSON = errors.New("no json payload found in model response")

const (
	// Placeholder substitutes missing free-text fields so downstream
	// consumers never see an empty string.
	Placeholder = "(not provided)"

	maxTags       = 5
	defaultImpact = 5
	minImpact     = 1
	maxImpact     = 10
)

var (
	objectSpan = regexp.MustCompile(`(?s)\{.*\}`)
	arraySpan  = regexp.MustCompile(`(?s)\[.*\]`)
)

// rawItem tolerates the model's loose typing before normalization.
type rawItem struct {
	Title             string          `json:"title"`
	TitleTranslated   string          `json:"title_translated"`
	Summary           string          `json:"summary"`
	SummaryTranslated string          `json:"summary_translated"`
	Category          string          `json:"category"`
	Region            string          `json:"region"`
	ImpactScore       json.RawMessage `json:"impact_score"`
	Tags              []string        `json:"tags"`
	SourceLabel       string          `json:"source_label"`
	SourceURL         string          `json:"source_url"`
}

// Item parses a single-object response. The fallback category is applied when
// the model's category is missing or outside the closed enumeration; an empty
// fallback means model.CategoryOther.
func Item(raw string, fallback model.Category) (model.NewsItem, error) {
	text := stripFences(raw)

	var ri rawItem
	if err := json.Unmarshal([]byte(text), &ri); err != nil {
		span := objectSpan.FindString(text)
		if span == "" {
			return model.NewsItem{}, ErrNoJSON
		}
		if err = json.Unmarshal([]byte(span), &ri); err != nil {
			return model.NewsItem{}, ErrNoJSON
		}
	}

	return normalize(ri, fallback), nil
}

// Batch parses an array response into validated items.
func Batch(raw string, fallback model.Category) ([]model.NewsItem, error) {
	text := stripFences(raw)

	var rawItems []rawItem
	if err := json.Unmarshal([]byte(text), &rawItems); err != nil {
		span := arraySpan.FindString(text)
		if span == "" {
			return nil, ErrNoJSON
		}
		if err = json.Unmarshal([]byte(span), &rawItems); err != nil {
			return nil, ErrNoJSON
		}
	}

	items := make([]model.NewsItem, 0, len(rawItems))
	for _, ri := range rawItems {
		items = append(items, normalize(ri, fallback))
	}
	return items, nil
}

func normalize(ri rawItem, fallback model.Category) model.NewsItem {
	return model.NewsItem{
		Title:             orPlaceholder(ri.Title),
		TitleTranslated:   orPlaceholder(ri.TitleTranslated),
		Summary:           orPlaceholder(ri.Summary),
		SummaryTranslated: orPlaceholder(ri.SummaryTranslated),
		Category:          model.NormalizeCategory(ri.Category, fallback),
		Region:            model.NormalizeRegion(ri.Region),
		ImpactScore:       impactScore(ri.ImpactScore),
		Tags:              truncateTags(ri.Tags),
		SourceLabel:       orPlaceholder(ri.SourceLabel),
		SourceURL:         strings.TrimSpace(ri.SourceURL),
	}
}

// stripFences removes markdown code-fence wrapping (with optional language
// tag) the model tends to add around JSON.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		// drop the language tag line ("json", "JSON", ...)
		first := strings.TrimSpace(text[:idx])
		if len(first) <= 8 && !strings.ContainsAny(first, "{[") {
			text = text[idx+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// impactScore accepts numbers and numeric strings, rounds to the nearest
// integer and falls back to the default outside [1,10].
func impactScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return defaultImpact
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err = json.Unmarshal(raw, &s); err != nil {
			return defaultImpact
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return defaultImpact
		}
	}

	score := int(math.Round(f))
	if score < minImpact || score > maxImpact {
		return defaultImpact
	}
	return score
}

func truncateTags(tags []string) []string {
	out := make([]string, 0, maxTags)
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag == "" {
			continue
		}
		out = append(out, tag)
		if len(out) == maxTags {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return Placeholder
	}
	return s
}
