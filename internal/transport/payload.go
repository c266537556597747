package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Protocol selects how board responses are interpreted.
type Protocol string

const (
	// ProtocolV2 requires both rows and score.
	ProtocolV2 Protocol = "v2"
	// ProtocolV1 is the earlier wire format that carries rows only.
	// Score is fixed at 0 in this mode.
	ProtocolV1 Protocol = "v1"
)

// ParseProtocol validates a protocol name.
func ParseProtocol(s string) (Protocol, error) {
	switch Protocol(s) {
	case ProtocolV2, ProtocolV1:
		return Protocol(s), nil
	case "":
		return ProtocolV2, nil
	default:
		return "", fmt.Errorf("transport: unknown protocol %q", s)
	}
}

// boardPayload is the v2 response body.
type boardPayload struct {
	Rows  [][]*int `json:"rows" validate:"required,min=1,dive,min=1,dive,required,min=0"`
	Score *int     `json:"score" validate:"required,min=0"`
}

// legacyPayload is the v1 response body.
type legacyPayload struct {
	Rows [][]*int `json:"rows" validate:"required,min=1,dive,min=1,dive,required,min=0"`
}

// moveRequest is the body of POST /board/move.
type moveRequest struct {
	Action string `json:"action"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeBoard parses and validates a response body into a BoardState.
func decodeBoard(op string, protocol Protocol, body io.Reader) (core.BoardState, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return core.BoardState{}, err
	}

	var cells [][]*int
	score := 0

	switch protocol {
	case ProtocolV1:
		var p legacyPayload
		if err := unmarshal(op, data, &p); err != nil {
			return core.BoardState{}, err
		}
		if err := check(op, p); err != nil {
			return core.BoardState{}, err
		}
		cells = p.Rows
	default:
		var p boardPayload
		if err := unmarshal(op, data, &p); err != nil {
			return core.BoardState{}, err
		}
		if err := check(op, p); err != nil {
			return core.BoardState{}, err
		}
		cells = p.Rows
		score = *p.Score
	}

	width := len(cells[0])
	rows := make([][]int, len(cells))
	for i, row := range cells {
		if len(row) != width {
			return core.BoardState{}, &ProtocolError{
				Op:     op,
				Field:  "rows",
				Reason: fmt.Sprintf("row %d has %d cells, want %d", i, len(row), width),
			}
		}
		rows[i] = make([]int, width)
		for j, v := range row {
			rows[i][j] = *v // non-nil after check
		}
	}

	return core.FromRows(rows, score), nil
}

// unmarshal separates broken JSON (transport failure) from JSON of the wrong shape.
func unmarshal(op string, data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ProtocolError{
			Op:     op,
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
		}
	}
	return errMalformed{err}
}

// errMalformed marks a body that could not be parsed as JSON.
type errMalformed struct{ err error }

func (e errMalformed) Error() string { return "malformed JSON: " + e.err.Error() }
func (e errMalformed) Unwrap() error { return e.err }

// check runs struct validation and converts failures to a ProtocolError.
func check(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ProtocolError{Op: op, Reason: err.Error()}
	}

	first := verrs[0]
	field := strings.ToLower(first.StructField())
	if strings.HasPrefix(first.Namespace(), "boardPayload.Rows") || strings.HasPrefix(first.Namespace(), "legacyPayload.Rows") {
		field = "rows"
	}

	reason := "invalid value"
	switch first.Tag() {
	case "required":
		reason = "missing required field"
	case "min":
		if first.Kind() == reflect.Int {
			reason = "negative value"
		} else {
			reason = "must not be empty"
		}
	}
	return &ProtocolError{Op: op, Field: field, Reason: reason}
}
