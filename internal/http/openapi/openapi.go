// Package openapi embeds the OpenAPI document describing V1 and V2.
package openapi

import _ "embed"

// YAML contains the embedded OpenAPI document.
//
//go:embed openapi.yaml
var YAML []byte
