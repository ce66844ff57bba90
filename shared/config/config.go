package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do MirrorVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Jogador
	PlayerID   uint16 `json:"player_id"`
	PlayerName string `json:"player_name"`

	// Rede (Cliente)
	ServerAddr string `json:"server_addr"` // endereço UDP do relay
	LocalPort  int    `json:"local_port"`  // 0 = porta efêmera

	// Rede (Servidor)
	RelayAddr      string `json:"relay_addr"`       // endereço UDP de escuta do relay
	TelemetryAddr  string `json:"telemetry_addr"`   // endereço HTTP do hub de telemetria
	RosterPeriodMs int    `json:"roster_period_ms"` // intervalo do broadcast de roster

	// Recursos
	ModelsDir string `json:"models_dir"`
	SavePath  string `json:"save_path"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "MirrorVision",
		Fullscreen:   false,
		TargetFPS:    60,

		PlayerID:   1,
		PlayerName: "jogador",

		ServerAddr: "192.168.1.67:8000",
		LocalPort:  0,

		RelayAddr:      ":8000",
		TelemetryAddr:  ":8080",
		RosterPeriodMs: 500,

		ModelsDir: "Models",
		SavePath:  "mirrorvision.db",

		ShowDebugInfo: true,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações do arquivo ao lado do executável.
// Se o arquivo não existir ou for inválido, retorna as configurações padrão.
func Load() *Config {
	return LoadPath(configPath())
}

// LoadPath carrega as configurações de um arquivo JSON específico.
func LoadPath(path string) *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações ao lado do executável.
func (c *Config) Save() error {
	return c.SaveTo(configPath())
}

// SaveTo salva as configurações em um arquivo JSON específico.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
