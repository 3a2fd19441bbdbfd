package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:fulfillment.db?_fk=1"`

	Gateway     Gateway     `envPrefix:"GATEWAY_"`
	SMTP        SMTP        `envPrefix:"SMTP_"`
	Messaging   Messaging   `envPrefix:"MESSAGING_"`
	Packaging   Packaging   `envPrefix:"PACKAGING_"`
	Fulfillment Fulfillment `envPrefix:"FULFILLMENT_"`
}

// Gateway holds the shared secret the payment gateway presents on webhook calls.
type Gateway struct {
	WebhookToken string `env:"WEBHOOK_TOKEN,required"`
}

type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

type Messaging struct {
	BaseAPIURL   string `env:"BASE_API_URL"`
	Token        string `env:"TOKEN"`
	DelayMinutes int    `env:"DELAY_MINUTES" envDefault:"30"`
}

type Packaging struct {
	PlansDir  string `env:"PLANS_DIR" envDefault:"./plans"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"./packages"`
}

type Fulfillment struct {
	ReferralBonusRate string `env:"REFERRAL_BONUS_RATE" envDefault:"0.05"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
