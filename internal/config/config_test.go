package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create a temporary config file
	configContent := `
currency: CNY
accounts:
  assets: Liabilities:CN:CMB:CreditCard
  expenses: Expenses:Misc
  income: Income:Misc
  assets_template: "Liabilities:CN:CMB:{card_number}"
rules:
  categories:
    dining:
      patterns: ["餐厅", "restaurant"]
      account: Expenses:Food:Dining
    groceries:
      patterns: ["超市"]
      account: Expenses:Food:Groceries
`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	// Load the config
	config, created, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.False(t, created)

	// Verify config values
	assert.Equal(t, "CNY", config.Currency)
	assert.Equal(t, "Expenses:Misc", config.Accounts.Expenses)
	assert.Equal(t, "Income:Misc", config.Accounts.Income)
	assert.Equal(t, "Liabilities:CN:CMB:{card_number}", config.Accounts.AssetsTemplate)

	// Unset keys fall back to defaults
	assert.Equal(t, "Assets:CN:Bank:Checking", config.Accounts.RepaymentSource)

	// Check categories
	assert.Len(t, config.Rules.Categories, 2)
	dining := config.Rules.Categories["dining"]
	assert.Equal(t, []string{"餐厅", "restaurant"}, dining.Patterns)
	assert.Equal(t, "Expenses:Food:Dining", dining.Account)
}

func TestLoadConfig_MissingFileCreatesDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	config, created, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Default(), config)
	assert.FileExists(t, configPath)

	// The persisted file loads back to the same settings
	reloaded, created, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, config, reloaded)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("currency: [unterminated"), 0644))

	config, _, err := LoadConfig(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_UnwritableDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing-dir", "config.yaml")

	config, _, err := LoadConfig(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"default is valid", func(c *Config) {}, ""},
		{"empty currency", func(c *Config) { c.Currency = " " }, "currency is empty"},
		{"template without placeholder", func(c *Config) { c.Accounts.AssetsTemplate = "Liabilities:Card" }, "assets_template"},
		{"rule without account", func(c *Config) {
			c.Rules.Categories["food"] = CategoryRule{Patterns: []string{"x"}}
		}, `category "food" has no account`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCardAccount(t *testing.T) {
	c := Default()
	assert.Equal(t, "Liabilities:CN:CMB:CreditCard:1234", c.CardAccount("1234"))
	assert.Equal(t, "Liabilities:CN:CMB:CreditCard:Unknown", c.CardAccount(""))
}

func TestLoadConfig_DottedCategoryName(t *testing.T) {
	configContent := `
currency: CNY
rules:
  categories:
    Food.Dining:
      patterns: ["餐厅"]
      account: Expenses:Food:Dining
    Travel:
      patterns: ["酒店"]
      account: Expenses:Travel
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	config, _, err := LoadConfig(configPath)
	require.NoError(t, err)

	// viper folds keys to lower case
	assert.Len(t, config.Rules.Categories, 2)
	require.Contains(t, config.Rules.Categories, "food.dining")
	assert.Equal(t, "Expenses:Food:Dining", config.Rules.Categories["food.dining"].Account)
	assert.Equal(t, []string{"餐厅"}, config.Rules.Categories["food.dining"].Patterns)
	assert.Equal(t, "Expenses:Travel", config.Rules.Categories["travel"].Account)
	assert.Equal(t, "Assets:CN:Bank:Checking", config.Accounts.RepaymentSource)
}
