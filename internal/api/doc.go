// Package api provides HTTP handlers for the marketplace API.
package api
