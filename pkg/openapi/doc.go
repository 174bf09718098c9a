// Package openapi bridges flat object schemas and OpenAPI 3 component
// schemas. Import reduces a component to typed leaf properties; export wraps a
// schema in a minimal, valid OpenAPI document.
package openapi
