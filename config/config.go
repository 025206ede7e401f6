package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Rules    string   `yaml:"rules" env:"RULES" env-default:"standard"` // standard | extended (2x2 sub-squares)
	Strategy Strategy `yaml:"strategy"`
	Store    Store    `yaml:"store"`
}

// Strategy selects and tunes the decision-making backend. The set of
// names is closed: minimax, mcts, or policy.
type Strategy struct {
	Name       string `yaml:"name" env:"STRATEGY" env-default:"minimax"`
	Goroutines int    `yaml:"goroutines" env:"STRATEGY_GOROUTINES" env-default:"8"`
	BudgetMs   int    `yaml:"budget-ms" env:"STRATEGY_BUDGET_MS" env-default:"1000"`
	Depth      int    `yaml:"depth" env:"STRATEGY_DEPTH" env-default:"3"`       // minimax only
	Episodes   int    `yaml:"episodes" env:"STRATEGY_EPISODES" env-default:"0"` // mcts only, 0 = budget-bound
	Cutoff     int    `yaml:"cutoff" env:"STRATEGY_CUTOFF" env-default:"24"`    // mcts only
	PolicyPath string `yaml:"policy-path" env:"STRATEGY_POLICY_PATH" env-default:""`
}

type Store struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:""` // "" | file | redis
	Path    string `yaml:"path" env:"STORE_PATH" env-default:"games"`
	Redis   Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

func (r *Redis) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// MustLoad reads the config file, overlaying environment variables.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to read environment: %w", err))
	}

	return config
}
