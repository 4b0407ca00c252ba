//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// The studio API is the provider for the web studio and the consumer of the
// image-generation service.
const (
	APIProviderName = "garment-studio-api"
	WebConsumerName = "garment-studio-web"

	ImageGenProviderName = "image-generation-service"
	ImageGenConsumerName = "garment-studio-api"
)

const (
	StateStudioBaseline  = "design studio baseline"
	StateNoSession       = "no design session exists"
	StateGenerationReady = "image generation available"
	StateGenerationLimit = "image generation rate limited"
)

const (
	MissingSessionID = "00000000-0000-0000-0000-000000000404"
	ExampleImageURL  = "https://images.example.pact/designs/koi.png"
	ExamplePrompt    = "neon koi fish"
	ExampleAPIKey    = "pact-api-key"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for a consumer/provider pair.
func PactFile(t testing.TB, consumer, provider string) string {
	t.Helper()
	return filepath.Join(PactDir(t), consumer+"-"+provider+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
