package model

// Category is the closed set of news categories the engine emits.
type Category string

const (
	CategoryTech     Category = "tech"
	CategoryFinance  Category = "finance"
	CategoryScience  Category = "science"
	CategoryPolitics Category = "politics"
	CategoryCulture  Category = "culture"
	CategorySports   Category = "sports"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// Region is the closed set of regions a news item can be attributed to.
type Region string

const (
	RegionGlobal   Region = "global"
	RegionAmericas Region = "americas"
	RegionEurope   Region = "europe"
	RegionAsia     Region = "asia"
	RegionAfrica   Region = "africa"
	RegionOceania  Region = "oceania"
)

var categories = map[Category]struct{}{
	CategoryTech:     {},
	CategoryFinance:  {},
	CategoryScience:  {},
	CategoryPolitics: {},
	CategoryCulture:  {},
	CategorySports:   {},
	CategoryHealth:   {},
	CategoryOther:    {},
}

var regions = map[Region]struct{}{
	RegionGlobal:   {},
	RegionAmericas: {},
	RegionEurope:   {},
	RegionAsia:     {},
	RegionAfrica:   {},
	RegionOceania:  {},
}

// NormalizeCategory coerces unknown values to the fallback instead of rejecting.
// An empty fallback means CategoryOther.
func NormalizeCategory(v string, fallback Category) Category {
	if _, ok := categories[Category(v)]; ok {
		return Category(v)
	}
	if _, ok := categories[fallback]; ok {
		return fallback
	}
	return CategoryOther
}

// NormalizeRegion coerces unknown values to RegionGlobal.
func NormalizeRegion(v string) Region {
	if _, ok := regions[Region(v)]; ok {
		return Region(v)
	}
	return RegionGlobal
}

// NewsItem is one generated news entry after validation and before
// deduplication. Free-text fields are never empty: the parser substitutes
// placeholders so downstream consumers always have something to render.
type NewsItem struct {
	Title             string   `json:"title"`
	TitleTranslated   string   `json:"title_translated"`
	Summary           string   `json:"summary"`
	SummaryTranslated string   `json:"summary_translated"`
	Category          Category `json:"category"`
	Region            Region   `json:"region"`
	ImpactScore       int      `json:"impact_score"`
	Tags              []string `json:"tags,omitempty"`
	SourceLabel       string   `json:"source_label"`
	SourceURL         string   `json:"source_url"`
}
