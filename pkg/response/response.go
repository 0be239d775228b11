package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Write endpoints answer with a {success, message, ...} envelope; read
// endpoints return their payload as-is. Both shapes are part of the
// frontend contract.

// Data writes a 200 with the payload as-is.
func Data(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Success writes a 200 success envelope.
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// SuccessWith writes a 200 success envelope with extra fields merged in.
func SuccessWith(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Created writes a 201 with the payload as-is.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// Fail writes a failure envelope with the given HTTP status.
// Note httpStatus may be 200: a duplicate QR scan is a benign, expected
// outcome and is reported as success:false on a 200.
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"success": false, "message": message})
}

// ValidationFailed writes a 422 with a per-field error map.
func ValidationFailed(c *gin.Context, err error) {
	fields := gin.H{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
		}
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  fields,
	})
}

// NotFound writes a 404 failure envelope.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// BadRequest writes a 400 failure envelope.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 failure envelope.
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 failure envelope.
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

// InternalError writes a generic 500 failure envelope. Details stay in
// the server log only.
func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Internal server error")
}
