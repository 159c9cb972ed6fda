package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

type skillsQuery struct {
	Grade   string `validate:"required,max=32"`
	Refresh bool
}

type teamEventsQuery struct {
	SeasonID int `validate:"gte=0"`
	Refresh  bool
}

type liveEventQuery struct {
	Override string `validate:"omitempty,max=64"`
}

type pruneArchiveQuery struct {
	OlderThan time.Duration `validate:"gte=0"`
}

type collapseFavoriteRequest struct {
	ProgramID int    `json:"program_id" validate:"required,gt=0"`
	UIID      string `json:"ui_id" validate:"required,max=64"`
}

var gradeAliases = map[string]program.Grade{
	"es":                program.GradeElementary,
	"elementary school": program.GradeElementary,
	"ms":                program.GradeMiddle,
	"middle school":     program.GradeMiddle,
	"hs":                program.GradeHigh,
	"high school":       program.GradeHigh,
	"college":           program.GradeCollege,
}

func (h *Handler) validateRequest(payload any) error {
	if err := h.validator.Struct(payload); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("%w: %s failed %s", usecase.ErrInvalidInput, strings.ToLower(first.Field()), first.Tag())
		}
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// programFromPath resolves {programID} against the catalog.
func (h *Handler) programFromPath(r *http.Request) (program.Descriptor, error) {
	id, err := pathInt(r, "programID")
	if err != nil {
		return program.Descriptor{}, err
	}
	return h.catalog.Program(id)
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func queryBool(values url.Values, name string) (bool, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func queryInt(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func parseGrade(raw string) program.Grade {
	trimmed := strings.TrimSpace(raw)
	if grade, ok := gradeAliases[strings.ToLower(trimmed)]; ok {
		return grade
	}
	return program.Grade(trimmed)
}

func decodeJSONBody(r *http.Request, target any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)
	defer body.Close()

	if err := sonic.ConfigDefault.NewDecoder(body).Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
