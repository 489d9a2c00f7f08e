package collector

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/agbru/gradecalc/internal/errors"
	"github.com/agbru/gradecalc/internal/grades"
)

// Prompts and messages shown to the person typing.
const (
	SectionHeading = "=== Ingreso de materias y calificaciones ==="

	PromptSubject  = "Ingrese el nombre de la materia: "
	PromptGrade    = "Ingrese la calificación (0 a 10): "
	PromptContinue = "¿Desea ingresar otra materia? (S/N): "

	MsgNotANumber    = "Entrada inválida. Ingrese un número (ej. 7.5)."
	MsgOutOfRange    = "La calificación debe estar entre 0 y 10. Intente de nuevo."
	MsgEmptySubject  = "El nombre de la materia no puede estar vacío."
	MsgInvalidAnswer = "Respuesta no válida. Escriba S para sí o N para no."
)

// Field names carried by validation errors and rejection metrics.
const (
	FieldSubject = "subject"
	FieldGrade   = "grade"
	FieldAnswer  = "answer"
)

var (
	affirmative = map[string]bool{"s": true, "si": true, "sí": true}
	negative    = map[string]bool{"n": true, "no": true}
)

// ParseSubject trims s and rejects blank names.
func ParseSubject(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", apperrors.NewValidationError(FieldSubject, apperrors.ErrEmptySubject, MsgEmptySubject)
	}
	return name, nil
}

// ParseGrade parses a grade written with either '.' or ',' as decimal
// separator and checks it lies within [grades.MinGrade, grades.MaxGrade].
// Only decimal notation is accepted; hexadecimal floats such as "0x1p3"
// are not numbers here.
func ParseGrade(s string) (float64, error) {
	text := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if strings.ContainsAny(text, "xX") {
		return 0, apperrors.NewValidationError(FieldGrade, apperrors.ErrNotANumber, MsgNotANumber)
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, apperrors.NewValidationError(FieldGrade, apperrors.ErrOutOfRange, MsgOutOfRange)
		}
		return 0, apperrors.NewValidationError(FieldGrade, apperrors.ErrNotANumber, MsgNotANumber)
	}
	if !grades.InRange(value) {
		return 0, apperrors.NewValidationError(FieldGrade, apperrors.ErrOutOfRange, MsgOutOfRange)
	}
	return value, nil
}

// ParseContinue interprets an answer to the continue prompt. Matching is
// case-insensitive and tolerant of decomposed accents, so "Sí", "SI" and
// "sí" are all affirmative.
func ParseContinue(s string) (bool, error) {
	answer := norm.NFC.String(cases.Fold().String(strings.TrimSpace(s)))
	switch {
	case affirmative[answer]:
		return true, nil
	case negative[answer]:
		return false, nil
	}
	return false, apperrors.NewValidationError(FieldAnswer, apperrors.ErrInvalidAnswer, MsgInvalidAnswer)
}

// userMessage extracts the message meant for the person typing.
func userMessage(err error) string {
	var validationErr apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}
