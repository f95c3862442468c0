package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"

	"citybuddy/analyzer"
	"citybuddy/category"
	"citybuddy/draft"
	"citybuddy/exifloc"
	"citybuddy/llm"
	"citybuddy/metrics"
	"citybuddy/models"
	"citybuddy/roster"
)

// Intent is one label from the classifier's closed set.
type Intent string

const (
	IntentReportTrash       Intent = "report_trash"
	IntentReportPothole     Intent = "report_pothole"
	IntentReportElectricity Intent = "report_electricity"
	IntentFindEvents        Intent = "find_events"
	IntentCheckTraffic      Intent = "check_traffic"
	IntentGeneralQuestion   Intent = "general_question"
)

// reportCategories maps image-required intents to their pipeline descriptors.
var reportCategories = map[Intent]models.Category{
	IntentReportTrash:       models.CategoryTrash,
	IntentReportPothole:     models.CategoryPothole,
	IntentReportElectricity: models.CategoryElectricity,
}

var knownIntents = map[Intent]bool{
	IntentReportTrash:       true,
	IntentReportPothole:     true,
	IntentReportElectricity: true,
	IntentFindEvents:        true,
	IntentCheckTraffic:      true,
	IntentGeneralQuestion:   true,
}

// AreaResolver reverse-geocodes a coordinate to an area name; "" means
// unknown, which is never fatal.
type AreaResolver interface {
	Resolve(lat, lon float64) string
}

// EventsSearcher answers find_events queries.
type EventsSearcher interface {
	Search(query string) *models.EventsResult
}

// GeoExtractor pulls a coordinate out of image bytes; nil means no GPS data.
type GeoExtractor func(imageData []byte) *models.Coordinate

// Orchestrator routes one request through intent classification into the
// matching workflow and always returns a WorkflowResult, never an error:
// every failure mode is folded into the result record.
type Orchestrator struct {
	client   llm.Client
	analyzer *analyzer.Analyzer
	rosters  *roster.Set
	geocoder AreaResolver
	events   EventsSearcher
	extract  GeoExtractor
}

// New creates an orchestrator. All collaborators are required except events,
// which may be nil when no events table is configured.
func New(client llm.Client, rosters *roster.Set, geocoder AreaResolver, events EventsSearcher) *Orchestrator {
	return &Orchestrator{
		client:   client,
		analyzer: analyzer.New(client),
		rosters:  rosters,
		geocoder: geocoder,
		events:   events,
		extract:  exifloc.Extract,
	}
}

// SetGeoExtractor overrides EXIF extraction, for tests.
func (o *Orchestrator) SetGeoExtractor(fn GeoExtractor) {
	o.extract = fn
}

const intentPromptTemplate = `Analyze the user's query and determine the primary intent.
The available intents are: 'report_trash', 'report_pothole', 'report_electricity', 'find_events', 'check_traffic', 'general_question'.

Intent definitions:
- report_trash: User wants to report garbage, litter, or waste management issues
- report_pothole: User wants to report potholes, road damage, or road maintenance issues
- report_electricity: User wants to report street lights not working, power lines down, or other electrical infrastructure faults
- find_events: User wants to find local events, activities, or happenings
- check_traffic: User wants traffic information, road conditions, or transportation updates
- general_question: Any other query or general information request

Examples for find_events:
- "what events are happening this weekend" -> find_events
- "any tech meetups nearby" -> find_events
- "things to do in the city today" -> find_events

User Query: "%s"

Return only the single intent name. For example: report_trash`

// ClassifyIntent asks the generation service to label the query. The reply
// is treated as untrusted input: it is lower-cased, trimmed and checked
// against the closed label set, and anything else (including a failed call)
// becomes general_question. Classification never fails a request.
func (o *Orchestrator) ClassifyIntent(query string) Intent {
	prompt := fmt.Sprintf(intentPromptTemplate, query)

	start := time.Now()
	reply, err := o.client.GenerateText(prompt)
	metrics.LLMCallSeconds.WithLabelValues(o.client.SourceName(), "classify").Observe(time.Since(start).Seconds())
	if err != nil {
		log.Warnf("intent classification failed, defaulting to general_question: %v", err)
		return IntentGeneralQuestion
	}

	label := Intent(strings.ToLower(strings.TrimSpace(reply)))
	if !knownIntents[label] {
		log.Warnf("classifier returned unknown label %q, defaulting to general_question", label)
		return IntentGeneralQuestion
	}
	return label
}

// Process is the single entry point: classify, dispatch, assemble. Any panic
// below this frame is converted into a failure result; the orchestrator
// itself never raises.
func (o *Orchestrator) Process(query string, imageData []byte) (result *models.WorkflowResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("orchestration panic: %v", r)
			result = &models.WorkflowResult{
				Success: false,
				Error:   fmt.Sprintf("Orchestration failed: %v", r),
			}
		}
		if result != nil {
			outcome := "failure"
			if result.Success {
				outcome = "success"
			}
			metrics.RequestsTotal.WithLabelValues(result.Intent, outcome).Inc()
		}
	}()

	intent := o.ClassifyIntent(query)
	log.Infof("routing request to intent %s", intent)

	if cat, ok := reportCategories[intent]; ok {
		if len(imageData) == 0 {
			return &models.WorkflowResult{
				Success: false,
				Intent:  string(intent),
				Error:   fmt.Sprintf("Image required for %s reporting", cat),
			}
		}
		result := o.runReportPipeline(category.Lookup(cat), imageData)
		result.Intent = string(intent)
		return result
	}

	switch intent {
	case IntentFindEvents:
		return o.findEvents(query, intent)
	case IntentCheckTraffic:
		return &models.WorkflowResult{
			Success:   false,
			AgentType: "traffic",
			Intent:    string(intent),
			Error:     "Traffic Agent is currently under development",
			Message:   "Coming soon: Real-time traffic updates, route optimization, and road conditions!",
		}
	default:
		return o.answerGeneralQuestion(query, intent)
	}
}

// ProcessReport runs one category pipeline directly, skipping intent
// classification. Used by the per-category report endpoints.
func (o *Orchestrator) ProcessReport(cat models.Category, imageData []byte) (result *models.WorkflowResult) {
	intent := "report_" + string(cat)
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("report pipeline panic: %v", r)
			result = &models.WorkflowResult{
				Success: false,
				Intent:  intent,
				Error:   fmt.Sprintf("Orchestration failed: %v", r),
			}
		}
		if result != nil {
			outcome := "failure"
			if result.Success {
				outcome = "success"
			}
			metrics.RequestsTotal.WithLabelValues(result.Intent, outcome).Inc()
		}
	}()

	d := category.Lookup(cat)
	if d == nil {
		return &models.WorkflowResult{
			Success: false,
			Intent:  intent,
			Error:   fmt.Sprintf("Unknown report category %q", cat),
		}
	}
	if len(imageData) == 0 {
		return &models.WorkflowResult{
			Success: false,
			Intent:  intent,
			Error:   fmt.Sprintf("Image required for %s reporting", cat),
		}
	}

	result = o.runReportPipeline(d, imageData)
	result.Intent = intent
	return result
}

// runReportPipeline executes the per-category workflow: geolocate, resolve
// area, analyze, look up the official, draft the email. The only hard failure
// past this point is a missing coordinate; everything downstream degrades to
// defaults instead of aborting.
func (o *Orchestrator) runReportPipeline(d *category.Descriptor, imageData []byte) *models.WorkflowResult {
	coord := o.extract(imageData)
	if coord == nil {
		return &models.WorkflowResult{
			Success:   false,
			AgentType: string(d.Name),
			Error:     "Could not retrieve geolocation data from the image.",
		}
	}
	log.Infof("%s: geolocation found: %f, %f", d.Name, coord.Latitude, coord.Longitude)

	area := o.geocoder.Resolve(coord.Latitude, coord.Longitude)
	if area == "" {
		metrics.GeocodeFailuresTotal.Inc()
		log.Warnf("%s: could not determine area from geolocation", d.Name)
	}

	outcome := o.analyzer.Analyze(d, imageData, coord, area)
	if outcome.Failed() {
		return &models.WorkflowResult{
			Success:   false,
			AgentType: string(d.Name),
			Area:      area,
			Location:  coord,
			Error:     fmt.Sprintf("Workflow execution failed: %v", outcome.Err),
		}
	}

	// The model's locator hint keys the roster; the geocoded area is the
	// fallback when the reply did not parse or left it out.
	locator := area
	if outcome.Parsed() && outcome.Assessment.Locator != "" {
		locator = outcome.Assessment.Locator
	}

	official := o.rosters.For(d).Find(d, locator)
	helpline := ""
	if official == nil {
		metrics.RosterMissesTotal.WithLabelValues(string(d.Name)).Inc()
		log.Infof("%s: no official matched %q, falling back to helpline", d.Name, locator)
		helpline = d.Helpline
	}

	email := draft.Compose(d, outcome.Assessment, area, coord)

	return &models.WorkflowResult{
		Success:    true,
		AgentType:  string(d.Name),
		Analysis:   outcome.Raw,
		Assessment: outcome.Assessment,
		Official:   official,
		Helpline:   helpline,
		Email:      email,
		Area:       area,
		Location:   coord,
	}
}

func (o *Orchestrator) findEvents(query string, intent Intent) *models.WorkflowResult {
	if o.events == nil {
		return &models.WorkflowResult{
			Success:   false,
			AgentType: "events",
			Intent:    string(intent),
			Error:     "Events search is not configured",
		}
	}
	res := o.events.Search(query)
	return &models.WorkflowResult{
		Success:   true,
		AgentType: "events",
		Intent:    string(intent),
		Events:    res,
		Message:   res.Message,
	}
}

const generalPromptTemplate = `You are City Buddy, a helpful AI assistant for Bengaluru citizens.
You can help with:
- Reporting trash and waste management issues
- Reporting potholes and road problems
- Reporting street light and electrical faults
- Finding local events and activities
- Traffic and transportation information (coming soon)
- General questions about city services

User asked: "%s"

Provide a helpful, friendly response. If the question relates to city services you can handle,
guide them on how to use your specific features. Keep responses concise and actionable.`

func (o *Orchestrator) answerGeneralQuestion(query string, intent Intent) *models.WorkflowResult {
	prompt := fmt.Sprintf(generalPromptTemplate, query)

	start := time.Now()
	reply, err := o.client.GenerateText(prompt)
	metrics.LLMCallSeconds.WithLabelValues(o.client.SourceName(), "chat").Observe(time.Since(start).Seconds())
	if err != nil {
		return &models.WorkflowResult{
			Success:   false,
			AgentType: "general",
			Intent:    string(intent),
			Error:     fmt.Sprintf("Failed to generate response: %v", err),
		}
	}

	return &models.WorkflowResult{
		Success:   true,
		AgentType: "general",
		Intent:    string(intent),
		Response:  strings.TrimSpace(reply),
	}
}
