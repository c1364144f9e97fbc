package schema

type ErrorResponse struct {
	Error   string  `json:"error"`
	Details *string `json:"details,omitempty"`
}

func NewErrorResponse(message string, err error) ErrorResponse {
	response := ErrorResponse{
		Error: message,
	}

	if err != nil {
		details := err.Error()
		response.Details = &details
	}

	return response
}
