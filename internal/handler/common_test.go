package handler_test

import (
	"bytes"
	"encoding/json"
	"go-gin-ticket-inventory/internal/handler"
	"go-gin-ticket-inventory/internal/service/mocks"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	InvalidJSON = `{"invalid": json}`
)

func setupTestRouter(mockService *mocks.MockBoxOfficeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler.NewOfferHandler(mockService).RegisterRoutes(router)
	handler.NewPurchaseHandler(mockService).RegisterRoutes(router)
	handler.NewUnitHandler(mockService).RegisterRoutes(router)

	return router
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(body *bytes.Buffer) map[string]interface{} {
	var out map[string]interface{}
	_ = json.Unmarshal(body.Bytes(), &out)
	return out
}
