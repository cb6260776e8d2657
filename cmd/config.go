package cmd

// Config carries everything the process reads from its environment.
type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	TelegramBotToken      string
	TelegramWebhookSecret string

	// CatalogTTL and CartMaxIdle are time.ParseDuration strings. Empty means
	// the component defaults (300s catalog staleness, 24h cart idle window).
	CatalogTTL  string
	CartMaxIdle string
}
