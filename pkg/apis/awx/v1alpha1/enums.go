package v1alpha1

import (
	"fmt"
	"slices"
	"strings"
)

// --- Protocol Types ---

// Protocol is the transport protocol of a port mapping.
type Protocol string

const (
	// ProtocolTCP maps a TCP port.
	ProtocolTCP Protocol = "TCP"
	// ProtocolUDP maps a UDP port.
	ProtocolUDP Protocol = "UDP"
	// ProtocolSCTP maps an SCTP port.
	ProtocolSCTP Protocol = "SCTP"
)

// ValidValues returns all valid protocol values.
func (p *Protocol) ValidValues() []string {
	return []string{string(ProtocolTCP), string(ProtocolUDP), string(ProtocolSCTP)}
}

// Set parses a protocol case-insensitively. It implements pflag.Value.
func (p *Protocol) Set(value string) error {
	upper := Protocol(strings.ToUpper(value))
	if !slices.Contains(p.ValidValues(), string(upper)) {
		return fmt.Errorf("%w: %s (valid options: %s)",
			ErrInvalidProtocol, value, strings.Join(p.ValidValues(), ", "))
	}

	*p = upper

	return nil
}

// String returns the protocol name.
func (p *Protocol) String() string {
	return string(*p)
}

// Type returns the pflag type name.
func (p *Protocol) Type() string {
	return "Protocol"
}

// --- Service Types ---

// ServiceType is how the AWX operator exposes the web service.
type ServiceType string

const (
	// ServiceTypeNodePort exposes AWX on a fixed node port.
	ServiceTypeNodePort ServiceType = "nodeport"
	// ServiceTypeClusterIP keeps AWX cluster-internal.
	ServiceTypeClusterIP ServiceType = "clusterip"
	// ServiceTypeLoadBalancer requests a load balancer.
	ServiceTypeLoadBalancer ServiceType = "loadbalancer"
)

// ValidValues returns all valid service type values.
func (s *ServiceType) ValidValues() []string {
	return []string{
		string(ServiceTypeNodePort),
		string(ServiceTypeClusterIP),
		string(ServiceTypeLoadBalancer),
	}
}

// Set parses a service type case-insensitively. It implements pflag.Value.
func (s *ServiceType) Set(value string) error {
	lower := ServiceType(strings.ToLower(value))
	if !slices.Contains(s.ValidValues(), string(lower)) {
		return fmt.Errorf("%w: %s (valid options: %s)",
			ErrInvalidServiceType, value, strings.Join(s.ValidValues(), ", "))
	}

	*s = lower

	return nil
}

// String returns the service type name.
func (s *ServiceType) String() string {
	return string(*s)
}

// Type returns the pflag type name.
func (s *ServiceType) Type() string {
	return "ServiceType"
}
