package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
)

// ServiceConfig drives both the HTTP service and one-shot rendering.
// Every field is optional; the Get* accessors supply the defaults.
type ServiceConfig struct {
	Name       string   `json:"name"`
	Listen     string   `json:"listen,omitempty"`
	LogFile    string   `json:"log_file,omitempty"`
	OutputFile string   `json:"output_file,omitempty"`
	Size       int      `json:"size,omitempty"`
	Shape      string   `json:"shape,omitempty"`
	FontFamily string   `json:"font_family,omitempty"`
	TextColor  string   `json:"text_color,omitempty"`
	Border     int      `json:"border,omitempty"`
	UpperCase  bool     `json:"upper_case,omitempty"`
	Bold       bool     `json:"bold,omitempty"`
	Palette    []string `json:"palette,omitempty"`
}

type ConfigManager struct {
	configDir string
	configs   map[string]*ServiceConfig
}

func NewConfigManager(configDir string) *ConfigManager {
	return &ConfigManager{
		configDir: configDir,
		configs:   make(map[string]*ServiceConfig),
	}
}

func (cm *ConfigManager) LoadConfig(configName string) (*ServiceConfig, error) {
	if config, exists := cm.configs[configName]; exists {
		return config, nil
	}

	configFile := filepath.Join(cm.configDir, configName+".json")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configFile)
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ServiceConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cm.configs[configName] = &config
	return &config, nil
}

func (cm *ConfigManager) ListConfigs() ([]string, error) {
	files, err := os.ReadDir(cm.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".json" {
			name := file.Name()[:len(file.Name())-5]
			configs = append(configs, name)
		}
	}

	return configs, nil
}

func (config *ServiceConfig) GetListen() string {
	if config.Listen != "" {
		return config.Listen
	}
	return ":8306"
}

func (config *ServiceConfig) GetSize() int {
	if config.Size > 0 {
		return config.Size
	}
	return 256
}

func (config *ServiceConfig) GetShape() string {
	if config.Shape != "" {
		return config.Shape
	}
	return "round"
}

func (config *ServiceConfig) GetOutputFile() string {
	if config.OutputFile != "" {
		return config.OutputFile
	}
	return "avatar.png"
}

// defaultPalette is a set of saturated fills that keep white initials
// readable.
var defaultPalette = []string{
	"#e57373", "#f06292", "#ba68c8", "#9575cd",
	"#7986cb", "#64b5f6", "#4fc3f7", "#4dd0e1",
	"#4db6ac", "#81c784", "#aed581", "#ff8a65",
	"#d4e157", "#ffd54f", "#ffb74d", "#a1887f",
	"#90a4ae",
}

func (config *ServiceConfig) GetPalette() []string {
	if len(config.Palette) > 0 {
		return config.Palette
	}
	return defaultPalette
}

// PickColor deterministically assigns a palette fill to a text, so the
// same initials always render with the same background.
func (config *ServiceConfig) PickColor(text string) string {
	palette := config.GetPalette()
	h := fnv.New32a()
	h.Write([]byte(text))
	return palette[h.Sum32()%uint32(len(palette))]
}
