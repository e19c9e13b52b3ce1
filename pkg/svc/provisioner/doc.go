// Package provisioner provides cluster provisioning services.
//
//   - cluster: the cluster manager contract and its kind implementation
package provisioner
