// Package docs holds the OpenAPI document served at /swagger/* by both
// services. Regenerate with `swag init -g cmd/odontocare/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {"tags": ["auth"], "summary": "Welcome", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "401": {"description": "Password incorrecta", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Usuario no encontrado", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/user": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Create user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createUserRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/user/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get user",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Page out of range"}}
            }
        },
        "/admin/doctor": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["doctors"], "summary": "Create doctor",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createDoctorRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/doctor/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["doctors"], "summary": "Get doctor",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/doctor"}}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/doctor/username": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["doctors"], "summary": "Get doctor by username",
                "parameters": [{"type": "string", "name": "username", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/doctor"}}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/doctors": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["doctors"], "summary": "List doctors",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/patient": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["patients"], "summary": "Create patient",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createPatientRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/patient/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["patients"], "summary": "Get patient",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/patient"}}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/patients": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["patients"], "summary": "List patients",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/center": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["centers"], "summary": "Create medical center",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createCenterRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/center/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["centers"], "summary": "Get medical center",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/center"}}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/centers": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["centers"], "summary": "List medical centers",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/citas/agendar": {
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["citas"], "summary": "Book appointment",
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/appointmentEnvelope"}},
                    "200": {"description": "Idempotent replay", "schema": {"$ref": "#/definitions/appointmentEnvelope"}},
                    "400": {"description": "Bad Request"}, "404": {"description": "Not Found"},
                    "409": {"description": "Double booking"}, "422": {"description": "Inactive patient"},
                    "502": {"description": "Gestión unavailable"}
                }
            }
        },
        "/citas/modificar/{id}": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["citas"], "summary": "Update appointment",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateAppointmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/appointmentEnvelope"}},
                    "400": {"description": "Bad Request"}, "404": {"description": "Not Found"},
                    "409": {"description": "Double booking"}, "422": {"description": "Inactive patient"}
                }
            }
        },
        "/citas/cancelar/{id}": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["citas"], "summary": "Cancel appointment",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/appointmentEnvelope"}}, "404": {"description": "Not Found"}}
            }
        },
        "/citas/listar_citas": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["citas"], "summary": "List appointments",
                "parameters": [
                    {"type": "integer", "name": "id_doctor", "in": "query"},
                    {"type": "string", "name": "fecha", "in": "query", "description": "DD-MM-YYYY HH:MM:SS"},
                    {"type": "integer", "name": "id_paciente", "in": "query"},
                    {"type": "integer", "name": "id_centro", "in": "query"},
                    {"type": "string", "name": "estado", "in": "query", "enum": ["activa", "cancelada"]}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "No filters"}, "403": {"description": "Filter not allowed for role"}}
            }
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {
            "error": {"type": "string"},
            "campos": {"type": "object", "additionalProperties": {"type": "string"}}
        }},
        "loginRequest": {"type": "object", "required": ["username", "password"], "properties": {
            "username": {"type": "string"}, "password": {"type": "string"}
        }},
        "loginResponse": {"type": "object", "properties": {
            "token": {"type": "string"}, "rol": {"type": "string"}, "expires_at": {"type": "string"}
        }},
        "createUserRequest": {"type": "object", "required": ["username", "password", "rol"], "properties": {
            "username": {"type": "string"}, "password": {"type": "string"},
            "rol": {"type": "string", "enum": ["admin", "medico", "secretaria", "paciente"]}
        }},
        "createDoctorRequest": {"type": "object", "required": ["username", "password", "nombre", "especialidad"], "properties": {
            "username": {"type": "string"}, "password": {"type": "string"},
            "nombre": {"type": "string"}, "especialidad": {"type": "string"}
        }},
        "createPatientRequest": {"type": "object", "required": ["username", "password", "nombre", "telefono"], "properties": {
            "username": {"type": "string"}, "password": {"type": "string"},
            "nombre": {"type": "string"}, "telefono": {"type": "string"},
            "estado": {"type": "string", "enum": ["activo", "inactivo"]}
        }},
        "createCenterRequest": {"type": "object", "required": ["nombre", "direccion"], "properties": {
            "nombre": {"type": "string"}, "direccion": {"type": "string"}
        }},
        "doctor": {"type": "object", "properties": {
            "id_doctor": {"type": "integer"}, "id_usuario": {"type": "integer"},
            "nombre": {"type": "string"}, "especialidad": {"type": "string"}
        }},
        "patient": {"type": "object", "properties": {
            "id_paciente": {"type": "integer"}, "id_usuario": {"type": "integer"},
            "nombre": {"type": "string"}, "telefono": {"type": "string"}, "estado": {"type": "string"}
        }},
        "center": {"type": "object", "properties": {
            "id_centro": {"type": "integer"}, "nombre": {"type": "string"}, "direccion": {"type": "string"}
        }},
        "createAppointmentRequest": {"type": "object",
            "required": ["fecha", "motivo", "id_usuario", "id_paciente", "id_doctor", "id_centro"],
            "properties": {
                "fecha": {"type": "string", "example": "10-03-2025 09:30"},
                "motivo": {"type": "string"}, "estado": {"type": "string", "enum": ["activa"]},
                "id_usuario": {"type": "integer"}, "id_paciente": {"type": "integer"},
                "id_doctor": {"type": "integer"}, "id_centro": {"type": "integer"}
            }
        },
        "updateAppointmentRequest": {"type": "object", "properties": {
            "fecha": {"type": "string"}, "motivo": {"type": "string"},
            "id_paciente": {"type": "integer"}, "id_doctor": {"type": "integer"}, "id_centro": {"type": "integer"}
        }},
        "appointment": {"type": "object", "properties": {
            "id_cita": {"type": "integer"}, "fecha": {"type": "string"}, "motivo": {"type": "string"},
            "estado": {"type": "string"}, "id_paciente": {"type": "integer"}, "id_doctor": {"type": "integer"},
            "id_centro": {"type": "integer"}, "id_usuario": {"type": "integer"}
        }},
        "appointmentEnvelope": {"type": "object", "properties": {
            "message": {"type": "string"}, "Cita": {"$ref": "#/definitions/appointment"}
        }}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "OdontoCare API",
	Description:      "Gestión (users, doctors, patients, centers) and citas (appointments) services.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
