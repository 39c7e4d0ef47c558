package config

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Config carries the server settings read from an ini file. Every key
// has a default so the service runs without any file at all.
type Config struct {
	Addr     string
	CertFile string
	KeyFile  string

	RateLimit float64
	RateBurst int

	HistoryLimit int
}

func Load(path string) Config {
	file, err := ini.Load(path)
	if err != nil {
		log.Warn("Config file not loaded, using defaults: ", err)
		file = ini.Empty()
	}
	return loadCfg(file)
}

func loadCfg(file *ini.File) Config {
	return Config{
		Addr:         file.Section("server").Key("Addr").MustString(":8080"),
		CertFile:     file.Section("server").Key("CertFile").MustString(""),
		KeyFile:      file.Section("server").Key("KeyFile").MustString(""),
		RateLimit:    file.Section("limits").Key("RateLimit").MustFloat64(1),
		RateBurst:    file.Section("limits").Key("RateBurst").MustInt(3),
		HistoryLimit: file.Section("limits").Key("HistoryLimit").MustInt(50),
	}
}
