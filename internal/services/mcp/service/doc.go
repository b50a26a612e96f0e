// Package service hosts the wallet MCP server over stdio.
package service
