// Package docs registra el documento OpenAPI servido en /swagger/*.
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
        "/functions/v1/translate-pet-sound": {
            "post": {
                "description": "Sube el audio (opcional), transcribe, llama al modelo y otorga 1 treat point.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Traducir sonido de mascota",
                "parameters": [
                    {"type": "string", "description": "Bearer token en producción", "name": "Authorization", "in": "header"},
                    {"description": "Contexto de la traducción", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/translations.translateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/translations.translateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/translations.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/translations.errorResponse"}},
                    "429": {"description": "cupo diario agotado", "schema": {"$ref": "#/definitions/translations.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/translations.errorResponse"}}
                }
            }
        },
        "/functions/v1/translate-pet-sound-demo": {
            "post": {
                "description": "Frase aleatoria por especie y mood. Otorga 10 treat points, actualiza racha y badges.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Traducción demo (sin modelo)",
                "parameters": [
                    {"description": "Contexto de la traducción", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/translations.translateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/translations.cannedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/translations.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/translations.errorResponse"}}
                }
            }
        },
        "/functions/v1/increment-treat-points": {
            "post": {
                "description": "Suma atómica. Requiere service key (apikey o Authorization: Bearer).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Sumar treat points",
                "parameters": [
                    {"type": "string", "description": "Service role key", "name": "apikey", "in": "header", "required": true},
                    {"description": "Usuario y puntos (> 0)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/points.incrementRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/points.incrementResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/pets": {
            "get": {
                "description": "Más nuevas primero. Las desactivadas no aparecen.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Mascotas activas del usuario",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Datos de la mascota", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid json / type inválido", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}": {
            "patch": {
                "description": "PATCH parcial. birthday: null limpia la fecha.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Actualizar mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/me/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Perfil del usuario actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profiles.profileResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Actualizar perfil",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profiles.profileResponse"}}
                }
            }
        },
        "/me/badges": {
            "get": {
                "produces": ["application/json"],
                "tags": ["badges"],
                "summary": "Badges ganados",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/badges": {
            "get": {
                "produces": ["application/json"],
                "tags": ["badges"],
                "summary": "Catálogo de badges",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/translations": {
            "get": {
                "description": "Más nuevas primero. limit opcional (default 20, máx 100).",
                "produces": ["application/json"],
                "tags": ["translations"],
                "summary": "Historial de traducciones",
                "parameters": [
                    {"type": "integer", "description": "Máximo de resultados", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/stats": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Totales para el dashboard de admin",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.Stats"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "translations.translateRequest": {
            "type": "object",
            "properties": {
                "petType": {"type": "string", "enum": ["dog", "cat", "bird", "rabbit", "hamster", "other"]},
                "petId": {"type": "string"},
                "mode": {"type": "string"},
                "audioData": {"type": "string"}
            }
        },
        "translations.translateResponse": {
            "type": "object",
            "properties": {
                "translation": {"type": "string"},
                "treatPoints": {"type": "integer"},
                "translationId": {"type": "string"},
                "audioUrl": {"type": "string"},
                "transcription": {"type": "string"}
            }
        },
        "translations.cannedResponse": {
            "type": "object",
            "properties": {
                "translation": {"type": "string"},
                "treatPointsEarned": {"type": "integer"},
                "translationId": {"type": "string"},
                "audioUrl": {"type": "string"}
            }
        },
        "translations.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "points.incrementRequest": {
            "type": "object",
            "properties": {
                "user_uuid": {"type": "string"},
                "points": {"type": "integer"}
            }
        },
        "points.incrementResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "newTotal": {"type": "integer"}
            }
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["dog", "cat", "bird", "rabbit", "hamster", "other"]},
                "breed": {"type": "string"},
                "birthday": {"type": "string"},
                "photo_url": {"type": "string"},
                "favorite_mode": {"type": "string"},
                "personality_traits": {"type": "array", "items": {"type": "string"}}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"},
                "breed": {"type": "string"},
                "birthday": {"type": "string"},
                "photo_url": {"type": "string"},
                "is_active": {"type": "boolean"},
                "favorite_mode": {"type": "string"},
                "personality_traits": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "profiles.profileResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "avatar_url": {"type": "string"},
                "treat_points": {"type": "integer"},
                "is_premium": {"type": "boolean"},
                "daily_streak": {"type": "integer"}
            }
        },
        "stats.Stats": {
            "type": "object",
            "properties": {
                "total_users": {"type": "integer"},
                "total_pets": {"type": "integer"},
                "total_translations": {"type": "integer"},
                "total_badges_awarded": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Translator API",
	Description:      "Traducciones de sonidos de mascotas, treat points, rachas y badges.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
