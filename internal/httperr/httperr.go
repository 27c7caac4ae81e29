package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

var messages = map[string]string{
	CodeNotAuthorized:          "Sem acesso a este agendamento.",
	CodeForbidden:              "Operação não permitida para o seu perfil.",
	CodeInvalidStateTransition: "O agendamento não pode mudar para este status.",
	CodeNotFound:               "Registro não encontrado.",
	CodeAppointmentNotFound:    "Agendamento não encontrado.",
	CodeOfferingNotFound:       "Serviço não encontrado.",
	CodeRescheduleDateNotFound: "Nova data do reagendamento não encontrada.",
	CodeRecoveryAmbiguous:      "Não foi possível determinar o status anterior.",
	CodeTimeConflict:           "Conflito de horário.",
	CodeOutsideAvailability:    "Horário fora da disponibilidade.",
	CodeConcurrentModification: "O agendamento foi alterado por outra operação. Tente novamente.",
	CodeInvalidRequest:         "Dados inválidos.",
}

// FromError escreve a resposta de erro correspondente; erros que não são
// de negócio viram 500 com mensagem genérica.
func FromError(c *gin.Context, err error) {
	code := CodeOf(err)
	if code == "" {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg, ok := messages[code]
	if !ok {
		msg = code
	}
	Write(c, StatusFor(code), code, msg)
}
