// Package config は盤面とサーバーの設定を読み込みます
//
// 優先順位: 埋め込みの既定値 < YAML ファイル < 環境変数 < コマンドラインフラグ
// フラグの上書きは cmd/app 側で行います
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MaxDimension は盤面の一辺の上限です
const MaxDimension = 64

// BoardConfig は新しいゲームの盤面設定です
type BoardConfig struct {
	Rows int `yaml:"rows" json:"rows" validate:"min=1,max=64"`
	Cols int `yaml:"cols" json:"cols" validate:"min=1,max=64"`
	// 範囲チェックはしない。1 以上なら全点灯、0 以下なら全消灯
	LitProbability float64 `yaml:"lit_probability" json:"lit_probability"`
}

// ServerConfig は HTTP サーバーの設定です
type ServerConfig struct {
	Addr        string `yaml:"addr" validate:"required"`
	MaxSessions int    `yaml:"max_sessions" validate:"min=1"`
}

type Config struct {
	Board  BoardConfig  `yaml:"board"`
	Server ServerConfig `yaml:"server"`
}

var validate = validator.New()

// Default は埋め込みの defaults.yaml から設定を作ります
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load は既定値に path の YAML と環境変数を重ねて検証します
// path が空ならファイルは読みません
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate は設定値の範囲を確認します
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate は盤面設定だけを確認します
func (b BoardConfig) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"LIGHTSOUT_ROWS", &c.Board.Rows},
		{"LIGHTSOUT_COLS", &c.Board.Cols},
		{"LIGHTSOUT_MAX_SESSIONS", &c.Server.MaxSessions},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v, ok := lookup("LIGHTSOUT_LIT_PROBABILITY"); ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LIGHTSOUT_LIT_PROBABILITY: %w", err)
		}
		c.Board.LitProbability = p
	}
	if v, ok := lookup("LIGHTSOUT_ADDR"); ok {
		c.Server.Addr = v
	}
	return nil
}
