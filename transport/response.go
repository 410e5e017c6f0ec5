package transport

import (
	"encoding/json"
	"net/http"

	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/utils/errors"
)

type apiResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Status: "success",
		Data:   data,
	})
}

// writeError maps CustomError to its HTTP status and wire code; anything else
// is treated as an internal error so raw details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	custom, ok := err.(errors.CustomError)
	if !ok {
		custom = errors.SetCustomError(constant.ErrInternal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(custom.ErrorHTTPCode())
	_ = json.NewEncoder(w).Encode(apiResponse{
		Status: "error",
		Error:  custom.Error(),
		Code:   custom.ErrorCode(),
	})
}
