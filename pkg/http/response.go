package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DataResponse writes the envelope with statusCode as both the HTTP status and the body status.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

// JSONResponse writes a bare 200 JSON body without the envelope.
func JSONResponse(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusOK, body)
}

// ValidationErrorResponse writes a 422 with field-level details.
func ValidationErrorResponse(c echo.Context, errs []ValidationError) error {
	return c.JSON(http.StatusUnprocessableEntity, APIResponse422Err{
		Status:  http.StatusUnprocessableEntity,
		Message: http.StatusText(http.StatusUnprocessableEntity),
		Data:    errs,
	})
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return DataResponse(c, http.StatusInternalServerError, "Something went wrong")
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return DataResponse(c, appErr.Status, []*AppError{appErr})
	}
	return InternalServerErrorResponse(c)
}
