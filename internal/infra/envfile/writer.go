// Where: cli/internal/infra/envfile/writer.go
// What: Render and persist the runtime environment file.
// Why: Bootstrap the stack configuration from prompt answers in one step.
package envfile

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/moby/sys/atomicwriter"
	"github.com/poruru/stackctl/internal/domain/env"
)

const templateName = "dotenv.tmpl"

// portReference is substituted by the orchestration backend at start time.
const portReference = ":${NGINX_PORT}"

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	templateOnce sync.Once
	parsed       *template.Template
	parseErr     error
)

// SecretKeys lists the variables that receive generated secret material.
var SecretKeys = []string{
	"CIPHER_KEY",
	"CIPHER_IV_KEY",
	"TOKEN_DB_PASSWORD",
	"ACCESS_TOKEN_SECRET",
	"REFRESH_TOKEN_SECRET",
	"RESET_TOKEN_SECRET",
}

// Writer composes the environment file and replaces it at Path.
type Writer struct {
	Path string
	// DBHost is the database service host used in DB_URL.
	DBHost string
	// Secrets overrides secret generation. Nil uses env.GenerateSecrets.
	Secrets func() (env.Secrets, error)
}

// Result summarizes a successful write. It never carries secret values.
type Result struct {
	Path         string
	DatabaseName string
	URL          env.URLParts
	SecretKeys   []string
}

type document struct {
	DBName             string
	DBURL              string
	RestoreDB          bool
	DemoMode           bool
	Secrets            env.Secrets
	AllowSendingEmails bool
	Mail               env.Mailgun
	Port               int
	PortRef            string
	BasePath           string
	BaseURL            string
}

// Write validates answers, generates fresh secrets and overwrites the file.
// The previous file is replaced without backup.
func (w Writer) Write(answers env.Answers) (Result, error) {
	if strings.TrimSpace(w.Path) == "" {
		return Result{}, errPathRequired
	}
	if err := answers.Validate(); err != nil {
		return Result{}, err
	}
	content, parts, err := w.Render(answers)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return Result{}, fmt.Errorf("create env dir: %w", err)
	}
	if err := atomicwriter.WriteFile(w.Path, content, 0o600); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", w.Path, err)
	}
	return Result{
		Path:         w.Path,
		DatabaseName: answers.DatabaseName(),
		URL:          parts,
		SecretKeys:   append([]string(nil), SecretKeys...),
	}, nil
}

// Render produces the file content without writing it.
func (w Writer) Render(answers env.Answers) ([]byte, env.URLParts, error) {
	parts, err := env.ComputeURL(answers.AppURL)
	if err != nil {
		return nil, env.URLParts{}, err
	}
	generate := w.Secrets
	if generate == nil {
		generate = env.GenerateSecrets
	}
	secrets, err := generate()
	if err != nil {
		return nil, env.URLParts{}, fmt.Errorf("generate secrets: %w", err)
	}

	host := strings.TrimSpace(w.DBHost)
	if host == "" {
		host = defaultDBHost
	}
	dbName := answers.DatabaseName()
	doc := document{
		DBName:             dbName,
		DBURL:              fmt.Sprintf("mongodb://%s/%s", host, dbName),
		RestoreDB:          answers.RestoreDB(),
		DemoMode:           answers.DemoMode(),
		Secrets:            secrets,
		AllowSendingEmails: answers.MailgunConfig,
		Mail:               answers.EffectiveMailgun(),
		Port:               parts.EffectivePort(),
		BasePath:           parts.BasePath,
		BaseURL:            parts.BaseURL,
	}
	if parts.HasPort() {
		doc.PortRef = portReference
	}

	tmpl, err := loadTemplate()
	if err != nil {
		return nil, env.URLParts{}, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return nil, env.URLParts{}, fmt.Errorf("render env file: %w", err)
	}
	return buf.Bytes(), parts, nil
}

func loadTemplate() (*template.Template, error) {
	templateOnce.Do(func() {
		parsed, parseErr = template.New(templateName).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			ParseFS(templateFS, "templates/"+templateName)
		if parseErr != nil {
			parseErr = fmt.Errorf("parse env template: %w", parseErr)
		}
	})
	return parsed, parseErr
}
