package entities

import (
	"errors"
	"regexp"
)

// FirewallPolicy describes the packet-filter ruleset to generate: the
// external interface the rules are scoped to and the inbound port
// allow-lists. Everything else (default deny in, pass out, loopback) is
// fixed template policy.
type FirewallPolicy struct {
	Interface InterfaceName
	TCPPorts  []int
	UDPPorts  []int
}

// InterfaceName is a value object for a detected network interface name.
type InterfaceName struct {
	value string
}

var (
	ErrInvalidInterfaceName = errors.New("invalid network interface name")
	ErrInvalidPort          = errors.New("port outside valid range 1-65535")
	ErrEmptyAllowList       = errors.New("firewall policy needs at least one allowed TCP port")
)

var interfaceNameRegex = regexp.MustCompile(`^[a-z][a-z0-9.]{1,14}$`)

// NewInterfaceName validates and wraps an interface name. An empty or
// malformed name is rejected so a ruleset can never be rendered for a
// nameless interface.
func NewInterfaceName(name string) (InterfaceName, error) {
	if !interfaceNameRegex.MatchString(name) {
		return InterfaceName{}, ErrInvalidInterfaceName
	}
	return InterfaceName{value: name}, nil
}

// String returns the raw interface name.
func (n InterfaceName) String() string {
	return n.value
}

// Validate checks the policy for semantic correctness.
func (p *FirewallPolicy) Validate() error {
	if p.Interface.value == "" {
		return ErrInvalidInterfaceName
	}
	if len(p.TCPPorts) == 0 {
		return ErrEmptyAllowList
	}
	for _, port := range append(append([]int{}, p.TCPPorts...), p.UDPPorts...) {
		if port < 1 || port > 65535 {
			return ErrInvalidPort
		}
	}
	return nil
}
