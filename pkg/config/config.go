package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Ultradistinto/DAO-obligatorio-taller/pkg/dao"
)

// Config is the full node configuration, loadable from daod.yaml and
// overridable through DAOD_* environment variables.
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Governance GovernanceConfig `mapstructure:"governance"`
	Multisig   MultisigRoles    `mapstructure:"multisig"`
}

// APIConfig configures the HTTP surface.
type APIConfig struct {
	Port int `mapstructure:"port"`
}

// GovernanceConfig holds the initial governance parameters. Amounts are
// decimal strings in whole tokens or native units.
type GovernanceConfig struct {
	TokenPrice           string        `mapstructure:"token_price"`
	TokensPerVotingPower string        `mapstructure:"tokens_per_voting_power"`
	MinStakeToVote       string        `mapstructure:"min_stake_to_vote"`
	MinStakeToPropose    string        `mapstructure:"min_stake_to_propose"`
	StakingLockTime      time.Duration `mapstructure:"staking_lock_time"`
	ProposalDuration     time.Duration `mapstructure:"proposal_duration"`
	InitialMint          string        `mapstructure:"initial_mint"`
}

// MultisigRoles configures the two gateway instances by role.
type MultisigRoles struct {
	Admin GatewayConfig `mapstructure:"admin"`
	Panic GatewayConfig `mapstructure:"panic"`
}

// GatewayConfig is one gateway's fixed owner set and threshold.
type GatewayConfig struct {
	Owners                []string `mapstructure:"owners"`
	RequiredConfirmations int      `mapstructure:"required_confirmations"`
}

// Load reads configuration from the given file (optional) with defaults and
// environment overrides applied.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api.port", 8080)
	v.SetDefault("governance.token_price", "0.001")
	v.SetDefault("governance.tokens_per_voting_power", "1000")
	v.SetDefault("governance.min_stake_to_vote", "100")
	v.SetDefault("governance.min_stake_to_propose", "500")
	v.SetDefault("governance.staking_lock_time", "5m")
	v.SetDefault("governance.proposal_duration", "10m")
	v.SetDefault("governance.initial_mint", "1000000")
	v.SetDefault("multisig.admin.required_confirmations", 2)
	v.SetDefault("multisig.panic.required_confirmations", 1)

	v.SetEnvPrefix("DAOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Params converts the configured amounts into governance parameters.
func (c *GovernanceConfig) Params() (dao.Params, error) {
	params := dao.Params{
		StakingLockTime:  c.StakingLockTime,
		ProposalDuration: c.ProposalDuration,
	}

	var err error
	if params.TokenPrice, err = dao.ParseUnits(c.TokenPrice); err != nil {
		return dao.Params{}, err
	}
	if params.TokensPerVotingPower, err = dao.ParseUnits(c.TokensPerVotingPower); err != nil {
		return dao.Params{}, err
	}
	if params.MinStakeToVote, err = dao.ParseUnits(c.MinStakeToVote); err != nil {
		return dao.Params{}, err
	}
	if params.MinStakeToPropose, err = dao.ParseUnits(c.MinStakeToPropose); err != nil {
		return dao.Params{}, err
	}
	return params, nil
}
