package httptransport

type ErrorResponse struct {
	Message string `json:"message" example:"Both robot_id and item_id are required"`
}

type CreatePickRequest struct {
	RobotID string `json:"robot_id" example:"Robot-A"`
	ItemID  string `json:"item_id" example:"Item-123"`
}

type PickEventDTO struct {
	RobotID   string `json:"robot_id" example:"Robot-A"`
	ItemID    string `json:"item_id" example:"Item-123"`
	Timestamp string `json:"timestamp" example:"2025-01-02T03:04:05.678Z"`
}

type CreatePickResponse struct {
	Message string       `json:"message" example:"Pick event logged successfully"`
	Event   PickEventDTO `json:"event"`
}

// ListEventsResponse is written to the wire as the bare Items array; Total and
// Capacity travel as response headers.
type ListEventsResponse struct {
	Items    []PickEventDTO
	Total    int
	Capacity int
}
