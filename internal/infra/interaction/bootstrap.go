// Where: cli/internal/infra/interaction/bootstrap.go
// What: The environment bootstrap form.
// Why: Collect raw answers in one pass; derivation happens in the env domain.
package interaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/poruru/stackctl/internal/domain/env"
)

// BootstrapDefaults pre-fills the form.
type BootstrapDefaults struct {
	AppURL string
	Demo   bool
}

// BootstrapResult carries the collected answers.
type BootstrapResult struct {
	Answers env.Answers
}

type bootstrapValues struct {
	DBData        string
	MailgunConfig bool
	APIKey        string
	Domain        string
	FromEmail     string
	ReplyToEmail  string
	AppURL        string
}

var runBootstrapForm = func(values *bootstrapValues) error {
	return newBootstrapForm(values).Run()
}

func newBootstrapForm(values *bootstrapValues) *huh.Form {
	required := func(label string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		}
	}
	mailHidden := func() bool { return !values.MailgunConfig }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Initial database content").
				Options(
					huh.NewOption("Empty database", string(env.DBDataEmpty)),
					huh.NewOption("Demo data", string(env.DBDataDemo)),
				).
				Value(&values.DBData),
			huh.NewConfirm().
				Title("Send e-mails through Mailgun?").
				Value(&values.MailgunConfig),
		),
		huh.NewGroup(
			huh.NewInput().Title("Mailgun API key").EchoMode(huh.EchoModePassword).
				Value(&values.APIKey).Validate(required("api key")),
			huh.NewInput().Title("Mailgun domain").
				Value(&values.Domain).Validate(required("domain")),
			huh.NewInput().Title("From e-mail").
				Value(&values.FromEmail).Validate(required("from e-mail")),
			huh.NewInput().Title("Reply-to e-mail").
				Value(&values.ReplyToEmail).Validate(required("reply-to e-mail")),
		).WithHideFunc(mailHidden),
		huh.NewGroup(
			huh.NewInput().
				Title("Application URL").
				Description("e.g. https://rent.example.com or http://localhost:8080").
				Value(&values.AppURL).
				Validate(ValidateAppURL),
		),
	)
}

// ValidateAppURL is the field validator for the application URL. A non-nil
// result keeps the form on the field.
func ValidateAppURL(raw string) error {
	_, err := env.ComputeURL(raw)
	if err == nil {
		return nil
	}
	var invalid *env.InvalidURLError
	if errors.As(err, &invalid) {
		return errors.New(invalid.Reason)
	}
	return err
}

// Bootstrap runs the form and returns validated answers.
func (p HuhPrompter) Bootstrap(defaults BootstrapDefaults) (BootstrapResult, error) {
	values := bootstrapValues{
		DBData: string(env.DBDataEmpty),
		AppURL: defaults.AppURL,
	}
	if defaults.Demo {
		values.DBData = string(env.DBDataDemo)
	}
	if err := runBootstrapForm(&values); err != nil {
		return BootstrapResult{}, fmt.Errorf("prompt bootstrap: %w", err)
	}
	answers := env.Answers{
		DBData:        env.DBData(values.DBData),
		MailgunConfig: values.MailgunConfig,
		AppURL:        strings.TrimSpace(values.AppURL),
	}
	if values.MailgunConfig {
		answers.Mailgun = env.Mailgun{
			APIKey:       strings.TrimSpace(values.APIKey),
			Domain:       strings.TrimSpace(values.Domain),
			FromEmail:    strings.TrimSpace(values.FromEmail),
			ReplyToEmail: strings.TrimSpace(values.ReplyToEmail),
		}
	}
	if err := answers.Validate(); err != nil {
		return BootstrapResult{}, err
	}
	return BootstrapResult{Answers: answers}, nil
}
