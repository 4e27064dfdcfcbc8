package generator

import (
	"fmt"
	"time"
)

// batchPromptTemplate asks for a strict JSON array; the parser still tolerates
// fences and stray prose around it.
const batchPromptTemplate = `Generate %d current world news items for %s.

Return a JSON array, nothing else. Each element:
{
  "title": "concise English headline",
  "title_translated": "the headline translated",
  "summary": "2-3 sentence English summary",
  "summary_translated": "the summary translated",
  "category": one of ["tech","finance","science","politics","culture","sports","health","other"],
  "region": one of ["global","americas","europe","asia","africa","oceania"],
  "impact_score": integer 1-10,
  "tags": up to 5 short keywords,
  "source_label": "name of a plausible reputable outlet",
  "source_url": "canonical article URL if known, else empty string"
}

Every item must cover a distinct story. No duplicate or near-duplicate headlines.`

// BatchPrompt parameterizes the generation prompt with the requested item
// count and the current date.
func BatchPrompt(count int, at time.Time) string {
	return fmt.Sprintf(batchPromptTemplate, count, at.Format("January 2, 2006"))
}
