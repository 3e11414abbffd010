package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DisposaBoy/JsonConfigReader"
	yaml "gopkg.in/yaml.v3"
)

// ConfigStructure is structure of main configuration
type ConfigStructure struct {
	// General
	RecipeRoot string `json:"recipeRoot"          yaml:"recipe_root"`
	Repository string `json:"repository"          yaml:"repository"`
	LogLevel   string `json:"logLevel"            yaml:"log_level"`
	LogFormat  string `json:"logFormat"           yaml:"log_format"`

	// Database
	DatabasePath  string `json:"databasePath"        yaml:"database_path"`
	DownloadLimit int64  `json:"downloadSpeedLimit"  yaml:"download_limit"`

	// Source metadata
	SrcinfoCommand string `json:"srcinfoCommand"      yaml:"srcinfo_command"`
	Threads        int    `json:"threads"             yaml:"threads"`

	// Signing
	GpgDisableVerify bool   `json:"gpgDisableVerify"    yaml:"gpg_disable_verify"`
	GpgKeyring       string `json:"gpgKeyring"          yaml:"gpg_keyring"`
}

// Config is the main (and only) configuration for the program
var Config = ConfigStructure{
	RecipeRoot:     "/var/lib/repoaudit/recipes",
	Repository:     "core",
	SrcinfoCommand: "makepkg --printsrcinfo",
	Threads:        20,
	LogLevel:       "info",
	LogFormat:      "default",
}

// LoadConfig loads configuration from a json or yaml file
func LoadConfig(filename string, config *ConfigStructure) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	decJSON := json.NewDecoder(JsonConfigReader.New(f))
	if err = decJSON.Decode(&config); err != nil {
		_, _ = f.Seek(0, 0)
		decYAML := yaml.NewDecoder(f)
		if err2 := decYAML.Decode(&config); err2 != nil {
			err = fmt.Errorf("invalid yaml (%s) or json (%s)", err2, err)
		} else {
			err = nil
		}
	}
	return err
}

// SaveConfig writes configuration to a json file
func SaveConfig(filename string, config *ConfigStructure) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	encoded, err := json.MarshalIndent(&config, "", "  ")
	if err != nil {
		return err
	}

	_, err = f.Write(encoded)
	return err
}
