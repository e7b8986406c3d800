package core

// error_messages.go maps errors to user-facing messages with codes for
// support reference. Messages and actions are in Spanish, like the page.
//
// # Load Errors (LOAD001-LOAD099)
//
//	LOAD001 - Unreadable spreadsheet: the Excel file could not be opened
//	          Action: re-save as .xlsx or export as CSV
//	LOAD002 - Ambiguous delimiter: the separator could not be detected
//	          Action: Choose the separator manually
//	LOAD003 - Parse failure: the file could not be read with the chosen separator
//	          Action: Try a different separator or check the file format
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - Missing input: file A or B was not uploaded
//	RUN002 - Missing column: no column chosen, or the column does not exist
//	RUN003 - Invalid option: unknown separator or header mode
//
// # File, Upload and Rate Errors
//
//	FILE001 - File too large
//	FILE004 - No file provided
//	UPL002  - Too many runs in progress
//	UPL005  - Run timed out
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Returned when nothing matches. Check the application log for the original
// error when a user reports ERR000.
//
// Typed errors are matched with errors.Is first; free-form errors fall back
// to case-insensitive substring patterns. The first match wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// ErrInvalidOption marks a form value that names no known mode.
var ErrInvalidOption = errors.New("invalid option")

type errorKind struct {
	target error
	msg    UserMessage
}

var errorKinds = []errorKind{
	{ErrUnreadableSpreadsheet, UserMessage{
		Message: "No se pudo leer el archivo Excel",
		Action:  "Guárdalo de nuevo como .xlsx o expórtalo como CSV",
		Code:    "LOAD001",
	}},
	{ErrAmbiguousDelimiter, UserMessage{
		Message: "No se pudo inferir el delimitador automáticamente",
		Action:  "Selecciónalo manualmente o carga el archivo como Excel",
		Code:    "LOAD002",
	}},
	{ErrParseFailure, UserMessage{
		Message: "No se pudo leer el archivo con el separador elegido",
		Action:  "Prueba con otro separador o revisa el formato del archivo",
		Code:    "LOAD003",
	}},
	{ErrMissingInput, UserMessage{
		Message: "Debes subir el Archivo A y el Archivo B",
		Action:  "Sube ambos archivos y vuelve a ejecutar la limpieza",
		Code:    "RUN001",
	}},
	{ErrMissingColumnSelection, UserMessage{
		Message: "Debes elegir una columna en A y otra en B",
		Action:  "Elige la columna a comparar en A y la columna con los números en B",
		Code:    "RUN002",
	}},
	{ErrInvalidOption, UserMessage{
		Message: "Una de las opciones no es válida",
		Action:  "Elige el separador y los encabezados desde las listas",
		Code:    "RUN003",
	}},
	{ErrTooManyRuns, UserMessage{
		Message: "Hay demasiadas limpiezas en curso",
		Action:  "Espera un momento y vuelve a intentarlo",
		Code:    "UPL002",
	}},
	{context.DeadlineExceeded, UserMessage{
		Message: "La limpieza tardó demasiado",
		Action:  "Prueba con archivos más pequeños o inténtalo más tarde",
		Code:    "UPL005",
	}},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{"request body too large", UserMessage{
		Message: "El archivo supera el tamaño máximo permitido",
		Action:  "Divide el archivo en partes más pequeñas",
		Code:    "FILE001",
	}},
	{"file too large", UserMessage{
		Message: "El archivo supera el tamaño máximo permitido",
		Action:  "Divide el archivo en partes más pequeñas",
		Code:    "FILE001",
	}},
	{"no file provided", UserMessage{
		Message: "No se seleccionó ningún archivo",
		Action:  "Selecciona un archivo CSV, TXT o Excel",
		Code:    "FILE004",
	}},
	{"rate limit", UserMessage{
		Message: "Demasiadas solicitudes",
		Action:  "Espera un momento antes de volver a intentarlo",
		Code:    "RATE001",
	}},
}

var defaultMessage = UserMessage{
	Message: "Ocurrió un error inesperado",
	Action:  "Inténtalo de nuevo o contacta a soporte",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Mensaje (Código: XXX). Acción". Load errors append which delimiter was
// tried and the underlying detail so the user can correct the input.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	out := fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
	if d := ErrorDetail(err); d != "" {
		out += ". " + d
	}
	return out
}

// ErrorDetail returns the input-specific part of a load or engine error:
// the file, the delimiter tried, the missing side or column.
func ErrorDetail(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		var parts []string
		if le.File != "" {
			parts = append(parts, "archivo "+le.File)
		}
		if le.Delimiter != "" {
			parts = append(parts, fmt.Sprintf("separador %q", le.Delimiter))
		}
		if le.Err != nil {
			parts = append(parts, le.Err.Error())
		}
		return strings.Join(parts, ", ")
	}

	var ee *EngineError
	if errors.As(err, &ee) {
		switch {
		case ee.Input != "" && ee.Column != "":
			return fmt.Sprintf("entrada %s, columna %q", ee.Input, ee.Column)
		case ee.Input != "":
			return "entrada " + ee.Input
		}
	}
	return ""
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
