package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/payinvoflow/billing_backend/config"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

// useTemplatePath points the snapshot config at a test template and restores
// it afterwards.
func useTemplatePath(t *testing.T, path string) {
	t.Helper()
	t.Setenv("TEMPLATE_PATH", path)
	config.LoadPipelineConfig()
	t.Cleanup(config.LoadPipelineConfig)
}

type templateDoc struct {
	Title string
	Rows  []string
}

func TestGenerateInvoiceHTML(t *testing.T) {
	path := writeTemplate(t,
		`<h1>{{.Title}}</h1><ul>{{range .Rows}}<li>{{.}}</li>{{end}}</ul>`)
	useTemplatePath(t, path)

	html, err := GenerateInvoiceHTML(templateDoc{
		Title: "Invoice INV-2025-001",
		Rows:  []string{"first", "second"},
	})
	if err != nil {
		t.Fatalf("GenerateInvoiceHTML: %v", err)
	}

	for _, want := range []string{"<h1>Invoice INV-2025-001</h1>", "<li>first</li>", "<li>second</li>"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

// User-entered text must come out escaped; the template engine is the only
// injection barrier between form input and the headless browser.
func TestGenerateInvoiceHTMLEscapesContent(t *testing.T) {
	path := writeTemplate(t, `<p>{{.Title}}</p>`)
	useTemplatePath(t, path)

	html, err := GenerateInvoiceHTML(templateDoc{Title: `<script>alert("x")</script>`})
	if err != nil {
		t.Fatalf("GenerateInvoiceHTML: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("script tag not escaped: %s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("expected escaped markup, got: %s", html)
	}
}

func TestGenerateInvoiceHTMLMissingFile(t *testing.T) {
	useTemplatePath(t, filepath.Join(t.TempDir(), "absent.html"))

	_, err := GenerateInvoiceHTML(templateDoc{})
	if err == nil {
		t.Fatal("expected error for missing template file")
	}
	if !errors.Is(err, ErrorTemplate) {
		t.Errorf("err = %v, want ErrorTemplate", err)
	}
}

func TestGenerateInvoiceHTMLBadSyntax(t *testing.T) {
	path := writeTemplate(t, `{{range`)
	useTemplatePath(t, path)

	_, err := GenerateInvoiceHTML(templateDoc{})
	if !errors.Is(err, ErrorTemplate) {
		t.Errorf("err = %v, want ErrorTemplate", err)
	}
}

func TestGenerateInvoiceHTMLCachesParsedTemplate(t *testing.T) {
	path := writeTemplate(t, `<p>{{.Title}}</p>`)
	useTemplatePath(t, path)

	if _, err := GenerateInvoiceHTML(templateDoc{Title: "one"}); err != nil {
		t.Fatalf("first render: %v", err)
	}

	// Removing the file must not break subsequent renders: the parsed
	// template is held in memory keyed by path.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove template: %v", err)
	}
	html, err := GenerateInvoiceHTML(templateDoc{Title: "two"})
	if err != nil {
		t.Fatalf("cached render: %v", err)
	}
	if !strings.Contains(html, "two") {
		t.Errorf("cached render missing data: %s", html)
	}
}
