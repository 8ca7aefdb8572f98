package domain

// Config contains the configuration parameters of the swap market.
type Config struct {
	// Owner is the only identity allowed to update the configuration.
	Owner string
}
