// Package utils provides small helper functions shared across the application,
// such as safe type conversion and content type classification.
package utils
