// Where: cli/internal/app/init.go
// What: init command.
// Why: Bootstrap the .env file from prompted or flag-provided answers.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/poruru/stackctl/internal/domain/env"
	"github.com/poruru/stackctl/internal/infra/envfile"
	"github.com/poruru/stackctl/internal/infra/interaction"
	"github.com/poruru/stackctl/internal/meta"
)

type InitCmd struct {
	Force          bool   `short:"f" help:"Overwrite an existing .env without asking"`
	NonInteractive bool   `name:"non-interactive" help:"Take answers from flags instead of prompting"`
	AppURL         string `name:"app-url" help:"Public application URL, e.g. https://rent.example.com"`
	Demo           bool   `help:"Seed the database with demo data on first start"`
	MailgunAPIKey  string `name:"mailgun-api-key" help:"Mailgun API key (enables e-mail)"`
	MailgunDomain  string `name:"mailgun-domain" help:"Mailgun sending domain"`
	MailgunFrom    string `name:"mailgun-from" help:"Sender address"`
	MailgunReplyTo string `name:"mailgun-reply-to" help:"Reply-to address"`
}

func (c InitCmd) mailgunRequested() bool {
	return c.MailgunAPIKey != "" || c.MailgunDomain != "" || c.MailgunFrom != "" || c.MailgunReplyTo != ""
}

func (c InitCmd) answers() env.Answers {
	answers := env.Answers{
		DBData:        env.DBDataEmpty,
		MailgunConfig: c.mailgunRequested(),
		AppURL:        strings.TrimSpace(c.AppURL),
	}
	if c.Demo {
		answers.DBData = env.DBDataDemo
	}
	if answers.MailgunConfig {
		answers.Mailgun = env.Mailgun{
			APIKey:       c.MailgunAPIKey,
			Domain:       c.MailgunDomain,
			FromEmail:    c.MailgunFrom,
			ReplyToEmail: c.MailgunReplyTo,
		}
	}
	return answers
}

func runInit(_ context.Context, cli CLI, deps Dependencies) error {
	s, err := loadSettings(cli, deps)
	if err != nil {
		return err
	}
	interactive := !cli.Init.NonInteractive && deps.Interactive()

	if _, err := os.Stat(s.envPath); err == nil && !cli.Init.Force {
		if !interactive {
			return fmt.Errorf("%w: %s (use --force to replace it)", errEnvFileExists, s.envPath)
		}
		overwrite, err := deps.Prompter.Confirm(fmt.Sprintf("%s exists. Replace it and rotate all secrets?", s.envPath))
		if err != nil {
			return err
		}
		if !overwrite {
			s.console.Info("Kept existing " + s.envPath)
			return nil
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.envPath, err)
	}

	answers := cli.Init.answers()
	if interactive {
		result, err := deps.Prompter.Bootstrap(interaction.BootstrapDefaults{
			AppURL: answers.AppURL,
			Demo:   cli.Init.Demo,
		})
		if err != nil {
			return err
		}
		answers = result.Answers
	}

	writer := envfile.Writer{
		Path:    s.envPath,
		DBHost:  s.settings.Database.Service,
		Secrets: deps.Secrets,
	}
	result, err := writer.Write(answers)
	if err != nil {
		return err
	}

	s.console.BlockStart("📝", "Environment file written")
	s.console.Item("Path", result.Path)
	database := result.DatabaseName
	if answers.DemoMode() {
		database += " (demo data)"
	}
	s.console.Item("Database", database)
	s.console.Item("URL", result.URL.String())
	s.console.Item("Port", result.URL.EffectivePort())
	if answers.MailgunConfig {
		s.console.Item("E-mail", "mailgun "+answers.Mailgun.Domain)
	} else {
		s.console.Item("E-mail", "disabled")
	}
	for _, key := range result.SecretKeys {
		s.console.Item(key, "(generated)")
	}
	s.console.BlockEnd()
	s.console.Success("Run '" + startHint(cli) + "' to launch the stack")
	return nil
}

func startHint(cli CLI) string {
	if cli.Dir != "" {
		return meta.AppName + " --dir " + cli.Dir + " start"
	}
	return meta.AppName + " start"
}
