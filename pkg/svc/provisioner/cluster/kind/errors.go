package kindprovisioner

import "errors"

// ErrEmptyClusterName is returned when an operation targets a cluster without a name.
var ErrEmptyClusterName = errors.New("cluster name is empty")
