package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const keyDelimiter = "::"

// CardPlaceholder is substituted with the card suffix in Accounts.AssetsTemplate
const CardPlaceholder = "{card_number}"

// Config represents the application configuration
type Config struct {
	Currency string   `mapstructure:"currency" yaml:"currency"`
	Accounts Accounts `mapstructure:"accounts" yaml:"accounts"`
	Rules    Rules    `mapstructure:"rules" yaml:"rules"`
}

// Accounts holds the ledger account names used when rendering
type Accounts struct {
	Assets          string `mapstructure:"assets" yaml:"assets"`
	Expenses        string `mapstructure:"expenses" yaml:"expenses"`
	Income          string `mapstructure:"income" yaml:"income"`
	AssetsTemplate  string `mapstructure:"assets_template" yaml:"assets_template"`
	RepaymentSource string `mapstructure:"repayment_source" yaml:"repayment_source"`
}

// Rules holds the categorization rules
type Rules struct {
	Categories map[string]CategoryRule `mapstructure:"categories" yaml:"categories"`
}

// CategoryRule maps description substrings to an account
type CategoryRule struct {
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
	Account  string   `mapstructure:"account" yaml:"account"`
}

// Default returns the configuration materialized when no file exists
func Default() *Config {
	return &Config{
		Currency: "CNY",
		Accounts: Accounts{
			Assets:          "Liabilities:CN:CMB:CreditCard",
			Expenses:        "Expenses:Unknown",
			Income:          "Income:Unknown",
			AssetsTemplate:  "Liabilities:CN:CMB:CreditCard:" + CardPlaceholder,
			RepaymentSource: "Assets:CN:Bank:Checking",
		},
		Rules: Rules{Categories: map[string]CategoryRule{}},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file is
// replaced by the default configuration, which is written to configPath.
// The returned bool reports whether the default was created.
func LoadConfig(configPath string) (*Config, bool, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		config := Default()
		if err := WriteConfig(configPath, config); err != nil {
			return nil, false, err
		}
		return config, true, nil
	}

	// Category names may contain dots, so keys are split on "::" instead
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	def := Default()
	v.SetDefault("currency", def.Currency)
	v.SetDefault("accounts::assets", def.Accounts.Assets)
	v.SetDefault("accounts::expenses", def.Accounts.Expenses)
	v.SetDefault("accounts::income", def.Accounts.Income)
	v.SetDefault("accounts::assets_template", def.Accounts.AssetsTemplate)
	v.SetDefault("accounts::repayment_source", def.Accounts.RepaymentSource)

	if err := v.ReadInConfig(); err != nil {
		return nil, false, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Rules.Categories == nil {
		config.Rules.Categories = map[string]CategoryRule{}
	}

	if err := config.Validate(); err != nil {
		return nil, false, err
	}

	return &config, false, nil
}

// WriteConfig persists config as YAML at configPath
func WriteConfig(configPath string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the settings the renderer depends on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Currency) == "" {
		return errors.New("invalid config: currency is empty")
	}
	if !strings.Contains(c.Accounts.AssetsTemplate, CardPlaceholder) {
		return fmt.Errorf("invalid config: accounts.assets_template must contain %s", CardPlaceholder)
	}
	for name, rule := range c.Rules.Categories {
		if rule.Account == "" {
			return fmt.Errorf("invalid config: category %q has no account", name)
		}
	}
	return nil
}

// CardAccount returns the account name for a card suffix, using "Unknown"
// when the suffix is absent
func (c *Config) CardAccount(cardSuffix string) string {
	if cardSuffix == "" {
		cardSuffix = "Unknown"
	}
	return strings.ReplaceAll(c.Accounts.AssetsTemplate, CardPlaceholder, cardSuffix)
}
