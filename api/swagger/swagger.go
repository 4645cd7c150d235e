package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Guardia API",
        "description": "Substitute coverage engine for teacher absences",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Absences", "description": "Absence registration and queries"},
        {"name": "Coverages", "description": "Coverage lifecycle and queries"},
        {"name": "Counters", "description": "Fairness counters"},
        {"name": "Exports", "description": "Daily coverage sheets"}
    ],
    "paths": {
        "/absences": {
            "get": {
                "tags": ["Absences"],
                "summary": "List a date's absences grouped by hour",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Absences"],
                "summary": "Register an absence and assign coverage",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterAbsenceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Absence already registered for this teacher and date"}
                }
            }
        },
        "/absences/history": {
            "get": {
                "tags": ["Absences"],
                "summary": "Full absence history grouped by date and hour",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/absences/teacher/{email}": {
            "get": {
                "tags": ["Absences"],
                "summary": "One teacher's absence history",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/absences/{id}": {
            "get": {
                "tags": ["Absences"],
                "summary": "Fetch one absence with its coverages",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Absences"],
                "summary": "Withdraw an absence and rebalance its slots",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Withdrawn"},
                    "409": {"description": "Absence has validated coverage"}
                }
            }
        },
        "/coverages": {
            "get": {
                "tags": ["Coverages"],
                "summary": "List a date's coverages",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["ASSIGNED", "VALIDATED", "CANCELLED"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/coverages/pending": {
            "get": {
                "tags": ["Coverages"],
                "summary": "List every coverage awaiting validation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/coverages/stats": {
            "get": {
                "tags": ["Coverages"],
                "summary": "Per-state tallies for a date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/coverages/teacher/{email}": {
            "get": {
                "tags": ["Coverages"],
                "summary": "List a teacher's coverages",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/coverages/supervision/preview": {
            "get": {
                "tags": ["Coverages"],
                "summary": "Preview the supervision pick for a slot",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "hour", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No on-duty teachers for the slot"}
                }
            }
        },
        "/coverages/{id}": {
            "get": {
                "tags": ["Coverages"],
                "summary": "Fetch one coverage",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/coverages/{id}/validate": {
            "post": {
                "tags": ["Coverages"],
                "summary": "Confirm a coverage was performed",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Validated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already validated or cancelled"}
                }
            }
        },
        "/coverages/{id}/cancel": {
            "post": {
                "tags": ["Coverages"],
                "summary": "Cancel a coverage",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CancelCoverageRequest"}}
                ],
                "responses": {
                    "200": {"description": "Cancelled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already validated or cancelled"}
                }
            }
        },
        "/coverages/validate-day": {
            "post": {
                "tags": ["Coverages"],
                "summary": "Validate every assigned coverage of a date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateDayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/coverages/redistribute": {
            "post": {
                "tags": ["Coverages"],
                "summary": "Recompute coverage for specific slots",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RedistributeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/counters/{email}": {
            "get": {
                "tags": ["Counters"],
                "summary": "Every materialized counter row for a teacher",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Counters"],
                "summary": "Wipe a teacher's counters",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/counters/{email}/slot": {
            "get": {
                "tags": ["Counters"],
                "summary": "Counter for one (teacher, weekday, hour) key",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "weekday", "in": "query", "required": true, "type": "integer"},
                    {"name": "hour", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/coverage-sheet": {
            "post": {
                "tags": ["Exports"],
                "summary": "Schedule generation of a daily coverage sheet",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CoverageSheetRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/coverage-sheet/status": {
            "get": {
                "tags": ["Exports"],
                "summary": "Whether a coverage sheet has been generated",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/coverage-sheet/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a generated coverage sheet",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "404": {"description": "Sheet not generated yet"}
                }
            }
        }
    },
    "definitions": {
        "RegisterAbsenceRequest": {
            "type": "object",
            "required": ["teacher_email", "date", "hours"],
            "properties": {
                "teacher_email": {"type": "string"},
                "date": {"type": "string", "example": "2026-09-14"},
                "hours": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AbsenceHourRequest"}
                }
            }
        },
        "AbsenceHourRequest": {
            "type": "object",
            "required": ["hour", "group_code", "room"],
            "properties": {
                "hour": {"type": "integer", "minimum": 1, "maximum": 8},
                "group_code": {"type": "string"},
                "room": {"type": "string"},
                "task": {"type": "string"}
            }
        },
        "CancelCoverageRequest": {
            "type": "object",
            "required": ["reason"],
            "properties": {
                "reason": {"type": "string"}
            }
        },
        "ValidateDayRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "date": {"type": "string"}
            }
        },
        "RedistributeRequest": {
            "type": "object",
            "required": ["date", "hours"],
            "properties": {
                "date": {"type": "string"},
                "hours": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "CoverageSheetRequest": {
            "type": "object",
            "required": ["date", "format"],
            "properties": {
                "date": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
