package influxc

import (
	"fmt"
	"net"
	"strconv"
)

// Server identifies a connection target.
type Server struct {
	// Host is the server hostname or IP address.
	Host string `yaml:"host"`
	// Port is the HTTP API port.
	Port int `yaml:"port"`
	// SSL selects https over http.
	SSL bool `yaml:"ssl"`
}

// DefaultServer returns the conventional local endpoint, localhost:8086
// without TLS.
func DefaultServer() Server {
	return Server{Host: "localhost", Port: 8086}
}

// URL returns the base URL for the server, without a trailing slash.
func (s Server) URL() string {
	scheme := "http"
	if s.SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(s.Host, strconv.Itoa(s.Port)))
}

// Credentials is a username and password pair for HTTP basic auth.
type Credentials struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// IsZero reports whether no credentials were provided.
func (c Credentials) IsZero() bool { return c.User == "" && c.Password == "" }
