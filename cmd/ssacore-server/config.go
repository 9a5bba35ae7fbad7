package main

import (
	"flag"
	"log"
	"os"
	"strconv"
)

// ServerConfig holds the server's runtime configuration.
type ServerConfig struct {
	Addr     string
	LogLevel string
	Seed     int64
}

// configResolver defines how to resolve one configuration value from a
// flag, falling back to an environment variable, falling back to a
// default — the same resolver-table pattern the teacher uses so adding
// an option never means touching more than one slice entry.
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*ServerConfig, string)
}

func loadServerConfig() ServerConfig {
	cfg := ServerConfig{}

	resolvers := []configResolver{
		{
			flagName:    "addr",
			envVarName:  "SSACORE_ADDR",
			defaultVal:  ":8090",
			description: "HTTP listen address (e.g. :8090, 0.0.0.0:8090)",
			setter:      func(c *ServerConfig, v string) { c.Addr = v },
		},
		{
			flagName:    "log-level",
			envVarName:  "SSACORE_LOG_LEVEL",
			defaultVal:  "info",
			description: "Log level: debug, info, warn, error",
			setter:      func(c *ServerConfig, v string) { c.LogLevel = v },
		},
		{
			flagName:    "seed",
			envVarName:  "SSACORE_SEED",
			defaultVal:  "1",
			description: "default RNG seed for runs that don't specify one",
			setter: func(c *ServerConfig, v string) {
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					c.Seed = n
				} else {
					log.Printf("invalid value for seed: %s, using default 1", v)
					c.Seed = 1
				}
			},
		},
	}

	flagVars := make(map[string]*string, len(resolvers))
	for _, r := range resolvers {
		flagVars[r.flagName] = flag.String(r.flagName, "", r.description)
	}
	flag.Parse()

	for _, r := range resolvers {
		value := r.defaultVal
		if *flagVars[r.flagName] != "" {
			value = *flagVars[r.flagName]
		} else if envValue := os.Getenv(r.envVarName); envValue != "" {
			value = envValue
		}
		r.setter(&cfg, value)
	}

	return cfg
}
