package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestServiceConfig_Defaults(t *testing.T) {
	config := &ServiceConfig{}

	if got := config.GetListen(); got != ":8306" {
		t.Errorf("GetListen() = %q", got)
	}
	if got := config.GetSize(); got != 256 {
		t.Errorf("GetSize() = %d", got)
	}
	if got := config.GetShape(); got != "round" {
		t.Errorf("GetShape() = %q", got)
	}
	if len(config.GetPalette()) == 0 {
		t.Error("GetPalette() empty")
	}
}

func TestServiceConfig_PickColorStable(t *testing.T) {
	config := &ServiceConfig{}

	first := config.PickColor("AB")
	second := config.PickColor("AB")
	if first != second {
		t.Errorf("PickColor not deterministic: %q vs %q", first, second)
	}

	config.Palette = []string{"#123456"}
	if got := config.PickColor("anything"); got != "#123456" {
		t.Errorf("PickColor = %q, want the only palette entry", got)
	}
}

func TestConfigManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	data := `{"name":"test","listen":":9999","size":128,"shape":"rect"}`
	if err := os.WriteFile(filepath.Join(dir, "test.json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cm := NewConfigManager(dir)
	config, err := cm.LoadConfig("test")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.GetListen() != ":9999" || config.GetSize() != 128 || config.GetShape() != "rect" {
		t.Errorf("unexpected config: %+v", config)
	}

	if _, err := cm.LoadConfig("missing"); err == nil {
		t.Error("LoadConfig(missing) succeeded")
	}

	names, err := cm.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs: %v", err)
	}
	if len(names) != 1 || names[0] != "test" {
		t.Errorf("ListConfigs() = %v", names)
	}
}
