package email

// Providers.
const (
	ProviderPostmark = "postmark"
	ProviderSES      = "ses"
	ProviderDev      = "dev"
)

// Config holds email service configuration.
// Provider tokens are optional so development can run with the dev sender,
// which writes messages to DevOutputDir instead of delivering them.
type Config struct {
	Provider     string `env:"EMAIL_PROVIDER" envDefault:"dev"`
	DevOutputDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SESRegion string `env:"SES_REGION" envDefault:"us-east-1"`

	SenderEmail  string `env:"SENDER_EMAIL,required"`
	SenderName   string `env:"SENDER_NAME"`
	SupportEmail string `env:"SUPPORT_EMAIL,required"`
}

func (c Config) from() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return c.SenderName + " <" + c.SenderEmail + ">"
}

func (c Config) validateSender() error {
	if c.SenderEmail == "" {
		return wrapConfig("SenderEmail is required")
	}
	if !validAddress(c.SenderEmail) {
		return wrapConfig("SenderEmail must be a valid email address")
	}
	if c.SupportEmail == "" {
		return wrapConfig("SupportEmail is required")
	}
	if !validAddress(c.SupportEmail) {
		return wrapConfig("SupportEmail must be a valid email address")
	}
	return nil
}
