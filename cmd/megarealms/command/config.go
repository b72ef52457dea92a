package command

import (
	"github.com/pixil98/go-errors"
)

type Config struct {
	Server  ServerConfig  `json:"server"`
	Storage StorageConfig `json:"storage"`
	Catalog CatalogConfig `json:"catalog"`
	Nats    NatsConfig    `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Server.validate())
	el.Add(c.Storage.validate())
	el.Add(c.Catalog.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}
