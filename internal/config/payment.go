package config

type PaymentConfig struct {
	DefaultProvider string        `yaml:"default_provider"`
	Stripe          *StripeConfig `yaml:"stripe"`
	MPesa           *MPesaConfig  `yaml:"mpesa"`
	Currency        string        `yaml:"currency"`
	CommissionRate  float64       `yaml:"commission_rate"`
}

type StripeConfig struct {
	PublishableKey string `yaml:"publishable_key"`
	SecretKey      string `yaml:"secret_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

type MPesaConfig struct {
	APIKey              string `yaml:"api_key"`
	ServiceProviderCode string `yaml:"service_provider_code"`
	WebhookSecret       string `yaml:"webhook_secret"`
	Mode                string `yaml:"mode"` // sandbox or live
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		DefaultProvider: getEnv("PAYMENT_DEFAULT_PROVIDER", "mpesa"),
		Stripe: &StripeConfig{
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		MPesa: &MPesaConfig{
			APIKey:              getEnv("MPESA_API_KEY", ""),
			ServiceProviderCode: getEnv("MPESA_SERVICE_PROVIDER_CODE", ""),
			WebhookSecret:       getEnv("MPESA_WEBHOOK_SECRET", ""),
			Mode:                getEnv("MPESA_MODE", "sandbox"),
		},
		Currency:       getEnv("PAYMENT_CURRENCY", "MZN"),
		CommissionRate: getEnvAsFloat64("PAYMENT_COMMISSION_RATE", 0.05), // 5%
	}
}
