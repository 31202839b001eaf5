package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Pipeline configuration is resolved once at startup so that render/encrypt
// paths never consult the environment per request.
var (
	businessEmail string
	encryptionKey string
	templatePath  string
	chromiumPath  string
	renderSlots   int
)

const (
	defaultBusinessEmail = "payinvoflow@gmail.com"
	defaultTemplatePath  = "public/views/template.html"
	defaultRenderSlots   = 1
)

func init() {
	// Load env from .env
	godotenv.Load()
	LoadPipelineConfig()
}

// LoadPipelineConfig snapshots the document-pipeline settings from the
// environment. Called from init; exposed so tests can re-read after Setenv.
func LoadPipelineConfig() {
	businessEmail = envOrDefault("BUSINESS_EMAIL", defaultBusinessEmail)
	encryptionKey = strings.TrimSpace(os.Getenv("ENCRYPTION_KEY"))
	templatePath = envOrDefault("TEMPLATE_PATH", defaultTemplatePath)
	chromiumPath = strings.TrimSpace(os.Getenv("CHROMIUM_PATH"))
	renderSlots = intFromEnv("PDF_RENDER_SLOTS", defaultRenderSlots)
	if renderSlots < 1 {
		renderSlots = defaultRenderSlots
	}
}

// BusinessEmail is the fixed lookup email of the platform profile record that
// brands every rendered document.
func BusinessEmail() string {
	return businessEmail
}

// EncryptionKey is the shared secret of the preview encryption channel.
// Empty means the channel is unusable; the server treats that as fatal.
func EncryptionKey() string {
	return encryptionKey
}

func TemplatePath() string {
	return templatePath
}

// ChromiumPath overrides the browser binary used for PDF rendering.
// Empty lets chromedp discover a locally installed Chrome (development);
// production images set it to the bundled minimal binary.
func ChromiumPath() string {
	return chromiumPath
}

// RenderSlots bounds how many headless-browser renders may run at once in
// this process.
func RenderSlots() int {
	return renderSlots
}

func envOrDefault(key string, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
