package config

// Market bundles the marketplace genesis parameters applied at startup.
type Market struct {
	Admin         string   `toml:"Admin"`
	Denom         string   `toml:"Denom"`
	FeePercent    uint64   `toml:"FeePercent"`
	Collections   []string `toml:"Collections"`
	MarketAccount string   `toml:"MarketAccount"`
}
