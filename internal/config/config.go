// internal/config/config.go
package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	appErrors "github.com/unclebandit/event-outreach/internal/errors"
)

// Config is the explicit configuration passed into each stage at
// construction time. No package-level state.
type Config struct {
	Pipeline Pipeline `yaml:"pipeline"`
	Files    Files    `yaml:"files"`
	SMTP     SMTP     `yaml:"smtp"`
	Telegram Telegram `yaml:"telegram"`
	Broker   Broker   `yaml:"broker"`
	Server   Server   `yaml:"server"`
}

type Pipeline struct {
	BatchSize            int    `yaml:"batch_size" env:"BATCH_SIZE" env-default:"10"`
	BatchDelaySeconds    int    `yaml:"batch_delay_seconds" env:"BATCH_DELAY_SECONDS" env-default:"2"`
	FollowupDelayMinutes int    `yaml:"followup_delay_minutes" env:"FOLLOWUP_DELAY_MINUTES" env-default:"30"`
	DryRun               bool   `yaml:"dry_run" env:"DRY_RUN" env-default:"true"`
	MaxRetryAttempts     int    `yaml:"max_retry_attempts" env:"MAX_RETRY_ATTEMPTS" env-default:"3"`
	Channel              string `yaml:"channel" env:"SEND_CHANNEL" env-default:"email"` // email or telegram
}

type Files struct {
	RawCSV     string `yaml:"raw_csv" env:"RAW_CSV" env-default:"participants.csv"`
	CleanedCSV string `yaml:"cleaned_csv" env:"CLEANED_CSV" env-default:"cleaned_output.csv"`
	MessageDir string `yaml:"message_dir" env:"MESSAGE_DIR" env-default:"."`
	QueueJSON  string `yaml:"queue_json" env:"QUEUE_JSON" env-default:"telegram_queue.json"`
}

type SMTP struct {
	Host        string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port        int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SenderEmail string `yaml:"sender_email" env:"GMAIL_EMAIL"`
	Password    string `yaml:"-" env:"GMAIL_APP_PASSWORD"`
	Subject     string `yaml:"subject" env:"SMTP_SUBJECT" env-default:"Follow-up from our recent event"`
}

type Telegram struct {
	BotToken string `yaml:"-" env:"TELEGRAM_BOT_TOKEN"`
	BotName  string `yaml:"bot_name" env:"TELEGRAM_BOT_NAME" env-default:"EventFollowUpBot"`
	BaseURL  string `yaml:"base_url" env:"TELEGRAM_BASE_URL" env-default:"https://api.telegram.org"`
}

type Broker struct {
	URL       string `yaml:"url" env:"AMQP_URL"`
	QueueName string `yaml:"queue_name" env:"AMQP_QUEUE" env-default:"outbound_messages"`
}

type Server struct {
	Addr string `yaml:"addr" env:"SERVER_ADDR" env-default:":8080"`
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the config from the file named by -config (or CONFIG_PATH),
// falling back to environment variables only.
func Load() (*Config, error) {
	var cfg Config
	path := fetchConfigPath()

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fetchConfigPath() string {
	var path string
	flag.StringVar(&path, "config", "", "path to yaml config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

// BatchDelay returns the inter-batch rate-limit pause.
func (c *Config) BatchDelay() time.Duration {
	return time.Duration(c.Pipeline.BatchDelaySeconds) * time.Second
}

// FollowupDelay returns how long non-attendee messages are deferred.
func (c *Config) FollowupDelay() time.Duration {
	return time.Duration(c.Pipeline.FollowupDelayMinutes) * time.Minute
}

// ValidateCredentials fails fast when live mode lacks the credentials for
// the selected channel. Dry runs never need credentials.
func (c *Config) ValidateCredentials() error {
	if c.Pipeline.DryRun {
		return nil
	}

	switch c.Pipeline.Channel {
	case "telegram":
		if c.Telegram.BotToken == "" {
			return appErrors.NewMissingCredentials("TELEGRAM_BOT_TOKEN")
		}
	default:
		var missing []string
		if c.SMTP.SenderEmail == "" {
			missing = append(missing, "GMAIL_EMAIL")
		}
		if c.SMTP.Password == "" {
			missing = append(missing, "GMAIL_APP_PASSWORD")
		}
		if len(missing) > 0 {
			return appErrors.NewMissingCredentials(missing...)
		}
	}
	return nil
}

// Dump renders the config back as YAML for startup logging. Secrets carry
// a `yaml:"-"` tag and never appear in the output.
func (c *Config) Dump() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
