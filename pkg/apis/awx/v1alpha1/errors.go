package v1alpha1

import "errors"

// ErrInvalidProtocol is returned when a port mapping names an unknown protocol.
var ErrInvalidProtocol = errors.New("invalid protocol")

// ErrInvalidServiceType is returned when an unknown service type is configured.
var ErrInvalidServiceType = errors.New("invalid service type")

// ErrClusterNameTooLong is returned when the cluster name exceeds the maximum length.
var ErrClusterNameTooLong = errors.New("cluster name is too long")

// ErrClusterNameInvalid is returned when the cluster name is not DNS-1123 compliant.
var ErrClusterNameInvalid = errors.New("cluster name is invalid")

// ErrInvalidPort is returned when a port is outside 1..65535.
var ErrInvalidPort = errors.New("invalid port")

// ErrMissingField is returned when a required configuration field is empty.
var ErrMissingField = errors.New("required field is empty")

// ErrInvalidPolling is returned when a poll has a non-positive attempt budget or negative interval.
var ErrInvalidPolling = errors.New("invalid polling configuration")
