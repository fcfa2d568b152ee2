package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration read from the environment.
//
// DynamoDB table names and credentials are read by the repositories and the
// database package themselves.
type Config struct {
	Port                   int
	JWTSecret              string
	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
	LogLevel               string
	PrettyLogs             bool
	CommissionConfigPath   string
	Commission             workflow.CommissionPolicy
}

// commissionFile is the YAML layout of COMMISSION_CONFIG_PATH. Values are
// read as strings so money never passes through float64.
type commissionFile struct {
	SalesTaxRate   string            `yaml:"sales_tax_rate"`
	DefaultPercent string            `yaml:"default_percent"`
	Tiers          map[string]string `yaml:"tiers"`
}

func Load() (Config, error) {
	cfg := Config{
		Port:                   getEnvInt("PORT", 8080),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     IsPaymentGatewayMockEnabled(),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		PrettyLogs:             os.Getenv("PRETTY_LOGS") == "true",
		CommissionConfigPath:   os.Getenv("COMMISSION_CONFIG_PATH"),
	}

	policy, err := LoadCommissionPolicy(cfg.CommissionConfigPath)
	if err != nil {
		return Config{}, err
	}
	cfg.Commission = policy
	return cfg, nil
}

// LoadCommissionPolicy reads the commission policy file at path. Keys absent
// from the file keep their default; an empty path returns the defaults.
func LoadCommissionPolicy(path string) (workflow.CommissionPolicy, error) {
	policy := workflow.DefaultCommissionPolicy()
	if strings.TrimSpace(path) == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return policy, nil
		}
		return policy, err
	}

	var f commissionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return policy, fmt.Errorf("commission config %s: %w", path, err)
	}

	if f.SalesTaxRate != "" {
		rate, err := parseNonNegative("sales_tax_rate", f.SalesTaxRate)
		if err != nil {
			return policy, err
		}
		policy.SalesTaxRate = rate
	}
	if f.DefaultPercent != "" {
		pct, err := parseNonNegative("default_percent", f.DefaultPercent)
		if err != nil {
			return policy, err
		}
		policy.DefaultPercent = pct
	}
	for level, raw := range f.Tiers {
		pct, err := parseNonNegative("tiers."+level, raw)
		if err != nil {
			return policy, err
		}
		policy.Tiers[entities.CommissionLevel(strings.ToLower(strings.TrimSpace(level)))] = pct
	}
	return policy, nil
}

// IsPaymentGatewayMockEnabled reports whether the payment provider is
// replaced by a local approval (PAYMENT_GATEWAY_MOCK or MERCADOPAGO_MOCK).
func IsPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func parseNonNegative(key, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("commission config: invalid %s %q: %w", key, raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("commission config: %s must not be negative", key)
	}
	return d, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
