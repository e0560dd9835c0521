package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/icco/movies/models"
	"github.com/xeipuuv/gojsonschema"
)

// movieProperties is shared by the create and update schemas. Only the
// required list differs between them.
const movieProperties = `{
	"id": {"type": "integer", "minimum": 0},
	"title": {"type": "string", "minLength": 1, "maxLength": 255},
	"description": {"type": ["string", "null"], "maxLength": 255},
	"trailer": {"type": ["string", "null"], "maxLength": 255},
	"year": {"type": ["integer", "null"]},
	"rating": {"type": ["number", "null"]},
	"genre_id": {"type": ["integer", "null"]},
	"director_id": {"type": ["integer", "null"]}
}`

var (
	// createSchema validates POST /movies/ bodies.
	createSchema = mustCompile(movieSchema(`["id", "title"]`))
	// updateSchema validates PUT /movies/{id} bodies. An id in the body is
	// accepted and ignored.
	updateSchema = mustCompile(movieSchema(`["title"]`))
)

func movieSchema(required string) string {
	return fmt.Sprintf(`{
	"type": "object",
	"properties": %s,
	"required": %s,
	"additionalProperties": false
}`, movieProperties, required)
}

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid movie schema: %v", err))
	}
	return s
}

// movieRequest mirrors the movie JSON body. Pointers tell an absent or null
// field apart from a zero value.
type movieRequest struct {
	ID          *int     `json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int     `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreID     *int     `json:"genre_id"`
	DirectorID  *int     `json:"director_id"`
}

// ParseMovie validates a movie body and extracts it field by field. When
// requireID is false the body's id is ignored and the result has ID 0.
// Optional fields that are absent or null come back nil.
func ParseMovie(jsonData []byte, requireID bool) (*models.Movie, error) {
	schema := updateSchema
	if requireID {
		schema = createSchema
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, &Error{Problems: []string{"request body must be a JSON object"}}
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, &Error{Problems: problems}
	}

	var req movieRequest
	if err := json.Unmarshal(jsonData, &req); err != nil {
		return nil, decodeError(err)
	}

	m := &models.Movie{
		Title:       *req.Title,
		Description: req.Description,
		Trailer:     req.Trailer,
		Year:        req.Year,
		Rating:      req.Rating,
		GenreID:     req.GenreID,
		DirectorID:  req.DirectorID,
	}
	if requireID {
		m.ID = *req.ID
	}
	if strings.TrimSpace(m.Title) == "" {
		return nil, &Error{Problems: []string{"title: must not be blank"}}
	}

	return m, nil
}

// decodeError reports a decode failure the way schema errors are reported.
// The schema counts 2.0 as an integer, but the decoder does not.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &Error{Problems: []string{fmt.Sprintf("%s: Invalid type. Expected: integer, given: %s", typeErr.Field, typeErr.Value)}}
	}
	return &Error{Problems: []string{"request body must be a JSON object"}}
}
