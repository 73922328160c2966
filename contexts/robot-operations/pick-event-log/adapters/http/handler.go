package httpadapter

import (
	"context"
	"log/slog"

	application "picklog/contexts/robot-operations/pick-event-log/application"
	"picklog/contexts/robot-operations/pick-event-log/application/commands"
	"picklog/contexts/robot-operations/pick-event-log/application/queries"
	"picklog/contexts/robot-operations/pick-event-log/domain/entities"
	httptransport "picklog/contexts/robot-operations/pick-event-log/transport/http"
)

const PickLoggedMessage = "Pick event logged successfully"

type Handler struct {
	LogPick   commands.LogPickUseCase
	ListPicks queries.ListPicksUseCase
	Logger    *slog.Logger
}

// CreatePickHandler godoc
// @Summary Log a pick event
// @Description Appends a pick event to the bounded log and returns the stored event.
// @Tags pick-event-log
// @Accept json
// @Produce json
// @Param X-Request-Id header string false "Request correlation id"
// @Param request body httptransport.CreatePickRequest true "Pick to log"
// @Success 201 {object} httptransport.CreatePickResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 405 {object} httptransport.ErrorResponse
// @Failure 429 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /pick [post]
func (h Handler) CreatePickHandler(
	ctx context.Context,
	correlationID string,
	req httptransport.CreatePickRequest,
) (httptransport.CreatePickResponse, error) {
	result, err := h.LogPick.Execute(ctx, commands.LogPickCommand{
		RobotID:       req.RobotID,
		ItemID:        req.ItemID,
		CorrelationID: correlationID,
	})
	if err != nil {
		application.ResolveLogger(h.Logger).Debug("create pick request failed",
			"event", "http_create_pick_failed",
			"module", "robot-operations/pick-event-log",
			"layer", "transport",
			"correlation_id", correlationID,
			"error", err.Error(),
		)
		return httptransport.CreatePickResponse{}, err
	}
	return httptransport.CreatePickResponse{
		Message: PickLoggedMessage,
		Event:   mapPickEvent(result.Event),
	}, nil
}

// ListEventsHandler godoc
// @Summary List recent pick events
// @Description Returns the stored pick events, oldest first. At most the log capacity (10 by default) is kept.
// @Tags pick-event-log
// @Produce json
// @Param robot_id query string false "Case-insensitive robot id substring filter"
// @Success 200 {array} httptransport.PickEventDTO
// @Failure 405 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /events [get]
func (h Handler) ListEventsHandler(ctx context.Context, robotFilter string) (httptransport.ListEventsResponse, error) {
	result, err := h.ListPicks.Execute(ctx, queries.ListPicksQuery{RobotFilter: robotFilter})
	if err != nil {
		return httptransport.ListEventsResponse{}, err
	}
	items := make([]httptransport.PickEventDTO, 0, len(result.Items))
	for _, event := range result.Items {
		items = append(items, mapPickEvent(event))
	}
	return httptransport.ListEventsResponse{
		Items:    items,
		Total:    result.Total,
		Capacity: result.Capacity,
	}, nil
}

func mapPickEvent(event entities.PickEvent) httptransport.PickEventDTO {
	return httptransport.PickEventDTO{
		RobotID:   event.RobotID,
		ItemID:    event.ItemID,
		Timestamp: event.FormattedTimestamp(),
	}
}
