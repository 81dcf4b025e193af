package catalog

// JSON schemas for the three catalog documents. Validation happens once at
// load time so lookup code never has to deal with missing keys.

const streamsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["description", "combinations"],
    "properties": {
      "description": {"type": "string"},
      "combinations": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "courses"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "name": {"type": "string"},
            "courses": {"type": "array", "items": {"type": "string"}},
            "new_courses": {"type": "array", "items": {"type": "string"}}
          }
        }
      }
    }
  }
}`

const questionsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["core_questions"],
  "properties": {
    "core_questions": {
      "type": "array",
      "items": {"$ref": "#/definitions/question"}
    },
    "stream_specific_questions": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {"$ref": "#/definitions/question"}
      }
    }
  },
  "definitions": {
    "question": {
      "type": "object",
      "required": ["id", "text", "criterion", "options"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "text": {"type": "string", "minLength": 1},
        "criterion": {"type": "string", "minLength": 1},
        "options": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["text", "value"],
            "properties": {
              "text": {"type": "string"},
              "value": {"type": "number"}
            }
          }
        }
      }
    }
  }
}`

const matrixSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "additionalProperties": {"type": "number"}
  }
}`
