// Package types defines the Recipe entity, the resource addressing scheme,
// the Gateway interface and the standard errors for the recipebox storage
// layer.
package types
