package analyzer

import (
	"errors"
	"strings"
	"testing"

	"citybuddy/category"
	"citybuddy/models"
)

type fakeClient struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeClient) SourceName() string { return "Fake" }

func (f *fakeClient) GenerateText(prompt string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeClient) AnalyzeImage(imageData []byte, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func TestAnalyzeParsedReply(t *testing.T) {
	client := &fakeClient{
		reply: "```json\n{\"is_trash_present\": true, \"ward_name\": \"HSR Layout\", \"severity\": \"High\"}\n```",
	}
	a := New(client)
	d := category.Lookup(models.CategoryTrash)
	coord := &models.Coordinate{Latitude: 12.9716, Longitude: 77.5946}

	outcome := a.Analyze(d, []byte("jpeg"), coord, "HSR Layout")

	if outcome.Failed() {
		t.Fatalf("unexpected failure: %v", outcome.Err)
	}
	if !outcome.Parsed() {
		t.Fatal("expected a parsed assessment")
	}
	if outcome.Assessment.Locator != "HSR Layout" || outcome.Assessment.Severity != "High" {
		t.Errorf("unexpected assessment %+v", outcome.Assessment)
	}
	if strings.Contains(outcome.Raw, "```") {
		t.Errorf("expected fences stripped from raw reply: %q", outcome.Raw)
	}
	if !strings.Contains(client.lastPrompt, "'HSR Layout'") {
		t.Error("expected area hint embedded in the prompt")
	}
}

func TestAnalyzeUnparseableReply(t *testing.T) {
	client := &fakeClient{reply: "I cannot tell what is in this image."}
	a := New(client)
	d := category.Lookup(models.CategoryPothole)

	outcome := a.Analyze(d, []byte("jpeg"), nil, "")

	if outcome.Failed() {
		t.Fatalf("a parse failure must not be fatal: %v", outcome.Err)
	}
	if outcome.Parsed() {
		t.Fatal("expected no assessment")
	}
	if outcome.Raw != "I cannot tell what is in this image." {
		t.Errorf("expected raw reply preserved, got %q", outcome.Raw)
	}
}

func TestAnalyzeCallFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("model unavailable")}
	a := New(client)
	d := category.Lookup(models.CategoryElectricity)

	outcome := a.Analyze(d, []byte("jpeg"), nil, "")

	if !outcome.Failed() {
		t.Fatal("expected a failed outcome")
	}
	if !strings.Contains(outcome.Err.Error(), "model unavailable") {
		t.Errorf("expected wrapped cause, got %v", outcome.Err)
	}
}

func TestAnalyzeEmptyImage(t *testing.T) {
	a := New(&fakeClient{})
	d := category.Lookup(models.CategoryTrash)

	outcome := a.Analyze(d, nil, nil, "")

	if !outcome.Failed() {
		t.Fatal("expected a failed outcome for empty image data")
	}
}
