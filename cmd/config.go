package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	RabbitURL  string
	// TaxRateBps applies to orders created without an explicit rate,
	// in basis points (1000 = 10%).
	TaxRateBps int64
}

// BoardConfig configures an actor-side board client.
type BoardConfig struct {
	StoreURL  string
	RabbitURL string
	BranchID  string
	ActorRole string
}
