package models

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type Error struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
