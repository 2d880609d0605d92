package config

import (
	_ "embed"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultsYAML は埋め込まれた既定の設定ファイルを返します
func DefaultsYAML() []byte {
	return defaultsYAML
}
