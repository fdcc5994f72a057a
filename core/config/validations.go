package config

import (
	"net"
	"regexp"

	"github.com/asaskevich/govalidator"
)

// "host:port" or ":port"
func EndpointStringValidation(value string) bool {
	host, port, err := net.SplitHostPort(value)
	return err == nil &&
		(host == "" || govalidator.IsHost(host)) &&
		govalidator.IsPort(port)
}

// pathRegexp is regexp for at least one path component.
// Valid characters are taken from RFC 3986.
var pathRegexp = regexp.MustCompile(`^(/[a-zA-Z0-9._~!$&'()*+,;=:@%-]+)+$`)

func URLPathStringValidation(value string) bool {
	return pathRegexp.MatchString(value)
}
