package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// assignDelivery handles POST /api/v1/stores/{storeId}/deliveries.
func (s *Server) assignDelivery(c echo.Context) error {
	actor, storeID, err := storeScope(c)
	if err != nil {
		return err
	}

	var req assignDeliveryRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	orderID, err := parseUUIDField("order_id", req.OrderID)
	if err != nil {
		return err
	}
	routeID, err := parseUUIDField("route_id", req.RouteID)
	if err != nil {
		return err
	}
	truckID, err := parseUUIDField("truck_id", req.TruckID)
	if err != nil {
		return err
	}
	driverID, err := parseUUIDField("driver_id", req.DriverID)
	if err != nil {
		return err
	}
	var assistantID *kernel.UUID
	if req.AssistantID != nil {
		id, parseErr := parseUUIDField("assistant_id", *req.AssistantID)
		if parseErr != nil {
			return parseErr
		}
		assistantID = &id
	}

	cmd, err := commands.NewAssignDeliveryCommand(
		actor,
		storeID, orderID, routeID, truckID, driverID,
		assistantID,
		req.ScheduledDeparture.UTC(), s.now(),
	)
	if err != nil {
		return err
	}
	d, err := s.commands.AssignDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newDeliveryResponse(queries.NewDeliveryView(d)))
}

// listDeliveries handles GET /api/v1/stores/{storeId}/deliveries?route_id=&status=.
func (s *Server) listDeliveries(c echo.Context) error {
	actor, storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	routeID, err := queryUUID(c, "route_id")
	if err != nil {
		return err
	}
	raw, err := queryString(c, "status")
	if err != nil {
		return err
	}
	var status *delivery.Status
	if raw != nil {
		parsed, parseErr := delivery.ParseStatus(*raw)
		if parseErr != nil {
			return parseErr
		}
		status = &parsed
	}

	query, err := queries.NewListDeliveriesQuery(actor, storeID, routeID, status)
	if err != nil {
		return err
	}
	views, err := s.queries.ListDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	response := make([]deliveryResponse, 0, len(views))
	for _, v := range views {
		response = append(response, newDeliveryResponse(v))
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) startDelivery(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return err
	}
	var req startDeliveryRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewStartDeliveryCommand(actor, deliveryID, req.ActualDeparture.UTC())
	if err != nil {
		return err
	}
	d, err := s.commands.StartDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(queries.NewDeliveryView(d)))
}

// cancelDelivery releases the truck and crew of a Scheduled or InTransit delivery.
func (s *Server) cancelDelivery(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelDeliveryCommand(actor, deliveryID, s.now())
	if err != nil {
		return err
	}
	d, err := s.commands.CancelDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(queries.NewDeliveryView(d)))
}

// completeDelivery reports the arrival and returns the crew fatigue receipt.
func (s *Server) completeDelivery(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathUUID(c, "deliveryId")
	if err != nil {
		return err
	}
	var req completeDeliveryRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	finalStatus, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteDeliveryCommand(actor, deliveryID, req.ActualArrival.UTC(), finalStatus)
	if err != nil {
		return err
	}
	receipt, err := s.commands.CompleteDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCompletionReceiptResponse(receipt))
}
