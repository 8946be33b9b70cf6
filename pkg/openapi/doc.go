// Package openapi derives form schemas from the request bodies of OpenAPI 3
// operations. Documents are parsed with kin-openapi; callers only see
// schema.Schema values.
package openapi
