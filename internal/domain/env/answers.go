// Where: cli/internal/domain/env/answers.go
// What: Bootstrap answers and the values derived from them.
// Why: Keep derivation rules pure so the file writer only renders.
package env

import (
	"fmt"
	"strings"
)

// DBData selects the initial database content.
type DBData string

const (
	DBDataEmpty DBData = "empty_data"
	DBDataDemo  DBData = "demo_data"
)

// Fixed database names for each DBData choice.
const (
	ProductionDBName = "appdb"
	DemoDBName       = "demodb"
)

// Mailgun holds the e-mail sending settings. All fields are required when
// Answers.MailgunConfig is set.
type Mailgun struct {
	APIKey       string
	Domain       string
	FromEmail    string
	ReplyToEmail string
}

// Answers are the values collected by the bootstrap prompt.
type Answers struct {
	DBData        DBData
	MailgunConfig bool
	Mailgun       Mailgun
	AppURL        string
}

// Validate checks the answers without touching the filesystem.
func (a Answers) Validate() error {
	switch a.DBData {
	case DBDataEmpty, DBDataDemo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDBData, a.DBData)
	}
	if _, err := ComputeURL(a.AppURL); err != nil {
		return err
	}
	if a.MailgunConfig {
		fields := []struct {
			name  string
			value string
		}{
			{"api key", a.Mailgun.APIKey},
			{"domain", a.Mailgun.Domain},
			{"from email", a.Mailgun.FromEmail},
			{"reply-to email", a.Mailgun.ReplyToEmail},
		}
		for _, field := range fields {
			if strings.TrimSpace(field.value) == "" {
				return fmt.Errorf("%w: %s", ErrMailgunFieldMissing, field.name)
			}
		}
	}
	mail := []string{a.Mailgun.APIKey, a.Mailgun.Domain, a.Mailgun.FromEmail, a.Mailgun.ReplyToEmail}
	for _, value := range append([]string{a.AppURL}, mail...) {
		if strings.ContainsAny(value, "\r\n") {
			return ErrMultilineValue
		}
	}
	// Mail values are written single-quoted so '$' and '#' stay literal.
	for _, value := range mail {
		if strings.Contains(value, "'") {
			return ErrSingleQuoteValue
		}
	}
	return nil
}

// DemoMode reports whether demo data is requested.
func (a Answers) DemoMode() bool {
	return a.DBData == DBDataDemo
}

// RestoreDB reports whether the stack must restore the bundled dump on start.
func (a Answers) RestoreDB() bool {
	return a.DBData == DBDataDemo
}

// DatabaseName returns the fixed database identifier for the DBData choice.
func (a Answers) DatabaseName() string {
	if a.DemoMode() {
		return DemoDBName
	}
	return ProductionDBName
}

// EffectiveMailgun returns the mail settings to write. Disabled mail yields
// empty strings, never missing keys.
func (a Answers) EffectiveMailgun() Mailgun {
	if !a.MailgunConfig {
		return Mailgun{}
	}
	return Mailgun{
		APIKey:       strings.TrimSpace(a.Mailgun.APIKey),
		Domain:       strings.TrimSpace(a.Mailgun.Domain),
		FromEmail:    strings.TrimSpace(a.Mailgun.FromEmail),
		ReplyToEmail: strings.TrimSpace(a.Mailgun.ReplyToEmail),
	}
}
