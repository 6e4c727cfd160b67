// Package services implements the driving ports: the OAuth flow
// controller, the state token manager and the fetch orchestrator.
//
// Services reach the network, the browser and the UI only through
// driven ports.
package services
