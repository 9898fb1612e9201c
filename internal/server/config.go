package server

import (
	"time"
)

type Config struct {
	Port            int           `yaml:"port"`
	AntidosBuckets  int           `yaml:"antidosBuckets"`
	AntidosPeriod   time.Duration `yaml:"antidosPeriod"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	// AdminKey guards the routes that modify rings. Empty leaves them open.
	AdminKey string `yaml:"adminKey"`
}
