package server

import "net"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8765" validate:"required,numeric"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// OpenBrowser opens the browse page in the default browser after startup.
	OpenBrowser bool `mapstructure:"open_browser" default:"false"`
}

// Address returns the host:port pair to listen on.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// URL returns the base URL of the browse page.
func (c Config) URL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, c.Port) + "/"
}
