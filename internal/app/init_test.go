// Where: cli/internal/app/init_test.go
// What: Tests for the init command.
// Why: The .env bootstrap must never silently replace secrets or print them.
package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/poruru/stackctl/internal/domain/env"
	"github.com/poruru/stackctl/internal/infra/interaction"
	"github.com/poruru/stackctl/internal/meta"
)

func readEnv(t *testing.T, dir string) map[string]string {
	t.Helper()
	values, err := godotenv.Read(filepath.Join(dir, meta.EnvFile))
	if err != nil {
		t.Fatalf("read .env: %v", err)
	}
	return values
}

func TestInitNonInteractiveWritesEnv(t *testing.T) {
	e := newTestEnv(t)
	code := e.run("init", "--non-interactive", "--app-url", "https://rent.example.com/app", "--demo")
	if code != 0 {
		t.Fatalf("exit code = %d\n%s", code, e.out.String())
	}
	values := readEnv(t, e.dir)
	if values["DB_NAME"] != env.DemoDBName || values["DEMO_MODE"] != "true" {
		t.Fatalf("db values = %q %q", values["DB_NAME"], values["DEMO_MODE"])
	}
	if values["BASE_PATH"] != "/app" || values["NGINX_PORT"] != "443" {
		t.Fatalf("url values = %q %q", values["BASE_PATH"], values["NGINX_PORT"])
	}
	if values["ALLOW_SENDING_EMAILS"] != "false" {
		t.Fatalf("ALLOW_SENDING_EMAILS = %q", values["ALLOW_SENDING_EMAILS"])
	}
	if values["DB_URL"] != "mongodb://mongo/"+env.DemoDBName {
		t.Fatalf("DB_URL = %q", values["DB_URL"])
	}
	if e.prompter.bootstrapCalls != 0 {
		t.Fatal("non-interactive init must not prompt")
	}
}

func TestInitSummaryNeverPrintsSecrets(t *testing.T) {
	e := newTestEnv(t)
	if code := e.run("init", "--non-interactive", "--app-url", "http://localhost:8080"); code != 0 {
		t.Fatalf("exit code = %d\n%s", code, e.out.String())
	}
	out := e.out.String()
	secrets, _ := fixedSecrets()
	for _, value := range []string{secrets.CipherKey, secrets.TokenDBPassword, secrets.ResetTokenSecret} {
		if strings.Contains(out, value) {
			t.Fatal("secret value printed in summary")
		}
	}
	if !strings.Contains(out, "CIPHER_KEY") || !strings.Contains(out, "(generated)") {
		t.Fatalf("summary missing secret keys:\n%s", out)
	}
}

func TestInitInvalidURLFailsWithoutWriting(t *testing.T) {
	e := newTestEnv(t)
	if code := e.run("init", "--non-interactive", "--app-url", "rent.example.com"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if _, err := os.Stat(filepath.Join(e.dir, meta.EnvFile)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("env file must not exist: %v", err)
	}
}

func TestInitPartialMailgunFlagsFail(t *testing.T) {
	e := newTestEnv(t)
	code := e.run("init", "--non-interactive", "--app-url", "http://localhost", "--mailgun-api-key", "key")
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
}

func TestInitExistingFileRequiresForceWhenNonInteractive(t *testing.T) {
	e := newTestEnv(t)
	writeFile(t, filepath.Join(e.dir, meta.EnvFile), "DB_NAME=keep\n")

	if code := e.run("init", "--non-interactive", "--app-url", "http://localhost"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if readEnv(t, e.dir)["DB_NAME"] != "keep" {
		t.Fatal("existing file was replaced")
	}

	if code := e.run("init", "--non-interactive", "--force", "--app-url", "http://localhost"); code != 0 {
		t.Fatalf("--force exit code = %d\n%s", code, e.out.String())
	}
	if readEnv(t, e.dir)["DB_NAME"] != env.ProductionDBName {
		t.Fatal("--force did not replace the file")
	}
}

func TestInitInteractiveDeclinedOverwriteKeepsFile(t *testing.T) {
	e := newTestEnv(t)
	e.interactive()
	writeFile(t, filepath.Join(e.dir, meta.EnvFile), "DB_NAME=keep\n")

	if code := e.run("init"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if e.prompter.confirmCalls != 1 || e.prompter.bootstrapCalls != 0 {
		t.Fatalf("confirm=%d bootstrap=%d", e.prompter.confirmCalls, e.prompter.bootstrapCalls)
	}
	if readEnv(t, e.dir)["DB_NAME"] != "keep" {
		t.Fatal("declined overwrite replaced the file")
	}
}

func TestInitInteractiveUsesBootstrapAnswers(t *testing.T) {
	e := newTestEnv(t)
	e.interactive()
	e.prompter.bootstrap = interaction.BootstrapResult{Answers: env.Answers{
		DBData:        env.DBDataEmpty,
		MailgunConfig: true,
		Mailgun: env.Mailgun{
			APIKey:       "key-1",
			Domain:       "mg.example.com",
			FromEmail:    "noreply@example.com",
			ReplyToEmail: "support@example.com",
		},
		AppURL: "http://localhost:8080",
	}}

	if code := e.run("init", "--app-url", "http://prefill"); code != 0 {
		t.Fatalf("exit code = %d\n%s", code, e.out.String())
	}
	if e.prompter.defaults.AppURL != "http://prefill" {
		t.Fatalf("defaults = %+v", e.prompter.defaults)
	}
	values := readEnv(t, e.dir)
	if values["MAILGUN_DOMAIN"] != "mg.example.com" || values["ALLOW_SENDING_EMAILS"] != "true" {
		t.Fatalf("mail values = %q %q", values["MAILGUN_DOMAIN"], values["ALLOW_SENDING_EMAILS"])
	}
	raw, err := os.ReadFile(filepath.Join(e.dir, meta.EnvFile))
	if err != nil {
		t.Fatalf("read .env: %v", err)
	}
	if !strings.Contains(string(raw), "\nAPP_URL=http://localhost:${NGINX_PORT}${BASE_PATH}\n") {
		t.Fatalf("APP_URL placeholders missing:\n%s", raw)
	}
}

func TestInitBootstrapAbortFails(t *testing.T) {
	e := newTestEnv(t)
	e.interactive()
	e.prompter.bootstrapErr = errors.New("user aborted")

	if code := e.run("init"); code != 1 {
		t.Fatalf("exit code = %d", code)
	}
}
