// Package domain defines the core business entities of the services
// marketplace and the validation rules that keep them consistent.
// Entities are plain structs with explicit constructors and Validate
// methods; no persistence concerns live here.
package domain
