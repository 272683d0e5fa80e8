package models

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Cursor  string      `json:"cursor,omitempty"`
	HasMore bool        `json:"has_more,omitempty"`
	Count   int         `json:"count,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

func PaginatedResponse(page *EventPage) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    page.Events,
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
		Count:   page.Count,
	}
}
