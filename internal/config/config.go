package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"sectorwatch/internal/configutil"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrConfiguration is wrapped by every error caused by missing or invalid configuration.
var ErrConfiguration = errors.New("configuration error")

const OptionsFile = "sectorwatch.json5"

type SmtpOptions struct {
	Host    string `json:"host" validate:"required,hostname|ip"`
	Port    int    `json:"port" validate:"required,min=1,max=65535"`
	Subject string `json:"subject" validate:"required"`

	// only for local test relays, never for a real mail server
	AllowUnauthenticated bool `json:"allow_unauthenticated"`
}

// Options are the non-secret settings of a run, read from sectorwatch.json5
// (and sectorwatch.local.json5) layered on top of Defaults.
type Options struct {
	BaseUrl                 string      `json:"base_url" validate:"required,url"`
	Sectors                 []string    `json:"sectors" validate:"required,min=1,unique,dive,required"`
	OutputDir               string      `json:"output_dir" validate:"required"`
	TimeoutSeconds          int         `json:"timeout_seconds" validate:"min=1"`
	DisableCloudflareBypass bool        `json:"disable_cloudflare_bypass"`
	DumpDir                 string      `json:"dump_dir"`
	Smtp                    SmtpOptions `json:"smtp"`
}

func (o Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// Defaults returns the options used when no options file exists.
func Defaults() Options {
	return Options{
		BaseUrl: "https://finance.yahoo.com",
		Sectors: []string{
			"technology",
			"financial-services",
			"healthcare",
			"consumer-cyclical",
			"communication-services",
			"industrials",
			"consumer-defensive",
			"energy",
			"basic-materials",
			"real-estate",
			"utilities",
		},
		OutputDir:      ".",
		TimeoutSeconds: 30,
		Smtp: SmtpOptions{
			Host:    "smtp.gmail.com",
			Port:    587,
			Subject: "Crawling Data Result",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadOptions merges the options file found by searching up from the working
// directory into Defaults, a missing file is not an error.
func LoadOptions() (Options, error) {
	opts := Defaults()

	fileOpts, err := configutil.ReadRecursively[Options](OptionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no options file found, using defaults", "file", OptionsFile)
	} else if err != nil {
		return Options{}, fmt.Errorf("%w: read %s: %w", ErrConfiguration, OptionsFile, err)
	} else {
		err = mergo.Merge(&opts, fileOpts, mergo.WithOverride)
		if err != nil {
			return Options{}, fmt.Errorf("%w: merge %s: %w", ErrConfiguration, OptionsFile, err)
		}
	}

	err = ValidateOptions(opts)
	if err != nil {
		return Options{}, err
	}
	return opts, nil
}

func ValidateOptions(opts Options) error {
	err := validate.Struct(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}

// Credentials are the outbound mail secrets, they only ever come from the environment.
type Credentials struct {
	EmailAddress   string `envconfig:"EMAIL_ADDRESS" required:"true" validate:"required,email"`
	EmailPassword  string `envconfig:"EMAIL_PASSWORD" required:"true" validate:"required"`
	RecipientEmail string `envconfig:"RECIPIENT_EMAIL" required:"true" validate:"required,email"`
}

// LoadCredentials reads Credentials from the process environment.
func LoadCredentials() (Credentials, error) {
	var creds Credentials
	err := envconfig.Process("", &creds)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	err = validate.Struct(creds)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return creds, nil
}

type Runtime struct {
	Verbose bool `envconfig:"SECTORWATCH_VERBOSE"`
}

func LoadRuntime() Runtime {
	var rt Runtime
	err := envconfig.Process("", &rt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ignoring invalid SECTORWATCH_VERBOSE:", err)
	}
	return rt
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment, existing variables win and a missing file is not an error.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: load .env: %w", ErrConfiguration, err)
	}
	return nil
}
