package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Univ EDT API",
        "description": "University timetable and roster engine",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Session management"},
        {"name": "Profile", "description": "Own account management"},
        {"name": "Classrooms", "description": "Classroom inventory"},
        {"name": "Classes", "description": "Student cohorts"},
        {"name": "Teachers", "description": "Teacher accounts and workload"},
        {"name": "Students", "description": "Student accounts and timetables"},
        {"name": "Subjects", "description": "Subjects, groups and scheduling"},
        {"name": "Occupancies", "description": "Global timetable and audit trail"},
        {"name": "Exports", "description": "Asynchronous workload exports"},
        {"name": "Admin", "description": "Operational endpoints"}
    ],
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
