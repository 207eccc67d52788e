package config

import "os"

const defaultPort = ":8080"

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port returns the listen address, ":8080" unless APP_PORT is set.
func Port() string {
	port := os.Getenv("APP_PORT")
	if port == "" {
		return defaultPort
	}
	if port[0] != ':' {
		return ":" + port
	}
	return port
}
