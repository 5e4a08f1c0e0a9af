package response

import (
	"encoding/json"
	"errors"
	"net/http"

	cmd_handler "github.com/RoyceAzure/lab/pos/internal/command/handler"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

// Response 統一回應格式
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ErrorData struct {
	Error string `json:"error"`
}

var ErrBadRequest = errors.New("bad request")

func JSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Code: status, Message: message, Data: data})
}

func SuccessJSON(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, "success", data)
}

func CreatedJSON(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, "created", data)
}

// ErrorJSON 依錯誤類型決定status
func ErrorJSON(w http.ResponseWriter, err error) {
	status, kind := Classify(err)
	JSON(w, status, err.Error(), ErrorData{Error: kind})
}

// Classify 錯誤對應 http status 與錯誤名稱
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "BadRequest"
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthenticated"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "NotFound"
	case errors.Is(err, service.ErrOutOfStock):
		return http.StatusConflict, "OutOfStock"
	case errors.Is(err, service.ErrStockConflict):
		return http.StatusConflict, "StockConflict"
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, "AlreadyExists"
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "EmptyCart"
	case errors.Is(err, service.ErrNoPaymentMethodSelected):
		return http.StatusUnprocessableEntity, "NoPaymentMethodSelected"
	case errors.Is(err, service.ErrInsufficientPayment):
		return http.StatusUnprocessableEntity, "InsufficientPayment"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusUnprocessableEntity, "InvalidArgument"
	case errors.Is(err, service.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, "PersistenceUnavailable"
	case errors.Is(err, cmd_handler.ErrHandlerNotFound), errors.Is(err, cmd_handler.ErrCommandFormat):
		// 命令沒註冊或格式錯是程式接線問題，不是使用者輸入
		return http.StatusInternalServerError, "CommandDispatch"
	default:
		return http.StatusInternalServerError, "InternalError"
	}
}
