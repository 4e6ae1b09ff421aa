// Package docs holds the hand-maintained OpenAPI 2.0 template normally
// produced by `swag init`. It is registered with swag's global spec
// registry so ServeOpenAPI3Spec can read it back and upgrade it to
// OpenAPI 3.0 for the docs UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cinema Equipment Rental API",
        "description": "Equipment, booking, and client management for a cinema equipment rental house.",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {},
    "definitions": {}
}`

// SwaggerInfo holds exported Swagger metadata, filled in at startup by
// whatever deployment configures the docs host/scheme.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Cinema Equipment Rental API",
	Description:      "Equipment, booking, and client management for a cinema equipment rental house.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
