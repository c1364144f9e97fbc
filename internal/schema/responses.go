package schema

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CalendarTestResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

type StatusResponse struct {
	Uptime float64 `json:"uptime"`
}
