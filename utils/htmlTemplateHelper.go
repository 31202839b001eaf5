package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"sync"

	"github.com/payinvoflow/billing_backend/config"
)

// The invoice template is plain substitution plus one repeating item-row
// block. html/template escapes every interpolation, so user-controlled text
// (names, addresses, particulars) cannot inject markup.
var (
	templateMu    sync.Mutex
	templateCache = map[string]*template.Template{}
)

func loadInvoiceTemplate(path string) (*template.Template, error) {
	templateMu.Lock()
	defer templateMu.Unlock()

	if tmpl, ok := templateCache[path]; ok {
		return tmpl, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrorTemplate, path, err)
	}
	tmpl, err := template.New("invoice").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrorTemplate, path, err)
	}

	templateCache[path] = tmpl
	return tmpl, nil
}

// GenerateInvoiceHTML merges an assembled document record into the invoice
// template and returns the complete HTML document.
func GenerateInvoiceHTML(data any) (string, error) {
	tmpl, err := loadInvoiceTemplate(config.TemplatePath())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: execute: %v", ErrorTemplate, err)
	}
	return buf.String(), nil
}
