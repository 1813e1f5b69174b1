package estimator

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prices holds the user-supplied unit prices, in USD.
type Prices struct {
	NATGatewayHourly      float64            `yaml:"nat_gateway_hourly"`
	ALBHourly             float64            `yaml:"alb_hourly"`
	NLBHourly             float64            `yaml:"nlb_hourly"`
	EBSGBMonth            float64            `yaml:"ebs_gb_month"`
	EKSControlPlaneHourly float64            `yaml:"eks_control_plane_hourly"`
	InstanceHourly        map[string]float64 `yaml:"instance_hourly"`
}

// Config is the settings file for one estimation run.
type Config struct {
	ClusterName string  `yaml:"cluster_name"`
	Profile     string  `yaml:"profile"`
	Region      string  `yaml:"region"`
	Prices      *Prices `yaml:"prices"`

	// LookupMissingPrices resolves instance types absent from the price table
	// through the Price List API instead of skipping them.
	LookupMissingPrices bool `yaml:"lookup_missing_prices"`

	// SavingsPlans adds a comparison of the instance fleet cost at 1-year
	// no-upfront EC2Instance savings plan rates.
	SavingsPlans bool `yaml:"savings_plans"`
}

// LoadConfig reads and validates the YAML settings file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("couldn't parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every required setting is present. Values are not
// range-checked beyond what YAML decoding enforces.
func (c *Config) Validate() error {
	var missing []string
	if c.ClusterName == "" {
		missing = append(missing, "cluster_name")
	}
	if c.Profile == "" {
		missing = append(missing, "profile")
	}
	if c.Region == "" {
		missing = append(missing, "region")
	}
	if c.Prices == nil {
		missing = append(missing, "prices")
	}
	if len(missing) != 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
