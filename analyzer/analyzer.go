package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"

	"citybuddy/category"
	"citybuddy/llm"
	"citybuddy/metrics"
	"citybuddy/models"
	"citybuddy/parser"
)

// Outcome is the result of one analyzer call. Exactly one of three states
// holds: the reply parsed (Assessment set), the reply was unusable text
// (Assessment nil, Raw set), or the call itself failed (Err set). Downstream
// consumers must handle all three; the model's "JSON" is frequently not JSON.
type Outcome struct {
	// Raw is the fence-stripped reply text, kept even when parsing fails so
	// the caller can persist and surface it.
	Raw string
	// Assessment is the parsed reply, nil when the reply was not valid JSON.
	Assessment *models.Assessment
	// Err is set when the image could not be used or the remote call failed.
	// This is the only fatal state; a parse failure is not.
	Err error
}

// Parsed reports whether the reply decoded into an assessment.
func (o Outcome) Parsed() bool { return o.Assessment != nil }

// Failed reports whether the analyzer call itself failed.
func (o Outcome) Failed() bool { return o.Err != nil }

// Analyzer sends a photo plus location context to the generation service
// with a category-specific prompt. One call per request, no retries.
type Analyzer struct {
	client llm.Client
}

// New creates an analyzer on top of an LLM client.
func New(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze runs the category-specific image analysis.
func (a *Analyzer) Analyze(d *category.Descriptor, imageData []byte, coord *models.Coordinate, area string) Outcome {
	if len(imageData) == 0 {
		return Outcome{Err: fmt.Errorf("could not read image data")}
	}

	prompt := d.Prompt(coord, area)

	start := time.Now()
	reply, err := a.client.AnalyzeImage(imageData, prompt)
	metrics.LLMCallSeconds.WithLabelValues(a.client.SourceName(), "analyze").Observe(time.Since(start).Seconds())
	if err != nil {
		return Outcome{Err: fmt.Errorf("generation service call failed: %w", err)}
	}

	raw := stripFences(reply)
	assessment, perr := parser.ParseAssessment(d, raw)
	if perr != nil {
		// Expected with partial output or explanatory prose; the pipeline
		// carries the raw text forward and drafts with defaults.
		log.Warnf("analyzer: %s reply did not parse: %v", d.Name, perr)
		return Outcome{Raw: raw}
	}

	return Outcome{Raw: raw, Assessment: assessment}
}

// stripFences removes markdown code-fence wrapping from a reply.
func stripFences(reply string) string {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
