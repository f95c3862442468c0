package llm

// Client abstracts the remote generation service used by the intent
// classifier, the issue analyzers and the general Q&A fallback.
// Implementations must be concurrency-safe if used across goroutines.
type Client interface {
	// GenerateText sends a text-only prompt and returns the reply text.
	GenerateText(prompt string) (string, error)
	// AnalyzeImage sends a prompt plus inline image bytes and returns the
	// reply text, which the analyzer expects to be a single JSON object.
	AnalyzeImage(imageData []byte, prompt string) (string, error)
	// SourceName returns a short provider label for logging (e.g., "Gemini").
	SourceName() string
}
