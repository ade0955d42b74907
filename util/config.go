package util

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const Name = "fanwall"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host              string
		SshPort           int    `yaml:"sshPort"`
		HttpPort          int    `yaml:"httpPort"`
		ApiBaseUrl        string `yaml:"apiBaseUrl"` // empty = local sqlite store
		RpcUrl            string `yaml:"rpcUrl"`
		DbPath            string `yaml:"dbPath"`
		MaxChars          int    `yaml:"maxChars"`
		NoticeTtlSeconds  int    `yaml:"noticeTtlSeconds"`
		TipDefault        string `yaml:"tipDefault"`
		WithJournald     bool   `yaml:"withJournald"`
		SshOnly          bool   `yaml:"sshOnly"`
		NodeDescription  string `yaml:"nodeDescription"`
	}
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	configPath := ConfigFileName

	buf, err := os.ReadFile(configPath)
	if err != nil {
		// Fall back to the embedded defaults when no config file is present
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig
	}

	err = yaml.Unmarshal(buf, c)
	if err != nil {
		return nil, fmt.Errorf("in config file: %w", err)
	}

	envHost := os.Getenv("FANWALL_HOST")
	envSshPort := os.Getenv("FANWALL_SSHPORT")
	envHttpPort := os.Getenv("FANWALL_HTTPPORT")
	envApiBaseUrl := os.Getenv("FANWALL_API_BASE_URL")
	envRpcUrl := os.Getenv("FANWALL_RPC_URL")
	envDbPath := os.Getenv("FANWALL_DB_PATH")
	envMaxChars := os.Getenv("FANWALL_MAX_CHARS")
	envNoticeTtl := os.Getenv("FANWALL_NOTICE_TTL_SECONDS")
	envTipDefault := os.Getenv("FANWALL_TIP_DEFAULT")
	envWithJournald := os.Getenv("FANWALL_WITH_JOURNALD")
	envSshOnly := os.Getenv("FANWALL_SSH_ONLY")
	envNodeDescription := os.Getenv("FANWALL_NODE_DESCRIPTION")

	if envHost != "" {
		c.Conf.Host = envHost
	}

	if envSshPort != "" {
		v, err := strconv.Atoi(envSshPort)
		if err != nil {
			log.Printf("Error parsing FANWALL_SSHPORT: %v", err)
		}
		c.Conf.SshPort = v
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			log.Printf("Error parsing FANWALL_HTTPPORT: %v", err)
		}
		c.Conf.HttpPort = v
	}

	if envApiBaseUrl != "" {
		c.Conf.ApiBaseUrl = envApiBaseUrl
	}

	if envRpcUrl != "" {
		c.Conf.RpcUrl = envRpcUrl
	}

	if envDbPath != "" {
		c.Conf.DbPath = envDbPath
	}

	if envTipDefault != "" {
		c.Conf.TipDefault = envTipDefault
	}

	if envWithJournald == "true" {
		c.Conf.WithJournald = true
	}

	if envSshOnly == "true" {
		c.Conf.SshOnly = true
	}

	if envNodeDescription != "" {
		c.Conf.NodeDescription = envNodeDescription
	}

	if envMaxChars != "" {
		v, err := strconv.Atoi(envMaxChars)
		if err != nil {
			log.Printf("Error parsing FANWALL_MAX_CHARS: %v", err)
		} else {
			c.Conf.MaxChars = v
		}
	}

	if envNoticeTtl != "" {
		v, err := strconv.Atoi(envNoticeTtl)
		if err != nil {
			log.Printf("Error parsing FANWALL_NOTICE_TTL_SECONDS: %v", err)
		} else {
			c.Conf.NoticeTtlSeconds = v
		}
	}

	// Clamp post length to [1, 300], default 150
	if c.Conf.MaxChars == 0 {
		c.Conf.MaxChars = 150
	} else if c.Conf.MaxChars > 300 {
		log.Printf("maxChars value %d exceeds maximum of 300, capping at 300", c.Conf.MaxChars)
		c.Conf.MaxChars = 300
	} else if c.Conf.MaxChars < 1 {
		log.Printf("maxChars value %d is less than minimum of 1, setting to default 150", c.Conf.MaxChars)
		c.Conf.MaxChars = 150
	}

	// Notice lifetime defaults to 5 seconds
	if c.Conf.NoticeTtlSeconds <= 0 {
		c.Conf.NoticeTtlSeconds = 5
	}

	if c.Conf.TipDefault == "" {
		c.Conf.TipDefault = "0.01"
	}

	if c.Conf.DbPath == "" {
		c.Conf.DbPath = "fanwall.db"
	}

	return c, nil
}
