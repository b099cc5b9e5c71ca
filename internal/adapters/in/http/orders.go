package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// allocate handles POST /api/v1/orders/{orderId}/allocations. The caller must be
// allowed to act for the destination store named in the body.
func (s *Server) allocate(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	var req allocateRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	trainID, err := parseUUIDField("train_id", req.TrainID)
	if err != nil {
		return err
	}
	productID, err := parseUUIDField("product_id", req.ProductID)
	if err != nil {
		return err
	}
	storeID, err := parseUUIDField("store_id", req.StoreID)
	if err != nil {
		return err
	}
	if err = actor.CanActFor(storeID); err != nil {
		return err
	}

	var unitSpace *kernel.Space
	if req.UnitSpace != nil {
		space, spaceErr := kernel.NewSpace(*req.UnitSpace)
		if spaceErr != nil {
			return spaceErr
		}
		unitSpace = &space
	}

	cmd, err := commands.NewAllocateCommand(trainID, orderID, productID, storeID, req.Quantity, unitSpace, s.now())
	if err != nil {
		return err
	}
	result, err := s.commands.Allocate.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newAllocateResponse(result))
}

// getOrderAllocations handles GET /api/v1/orders/{orderId}/allocations.
func (s *Server) getOrderAllocations(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderAllocationsQuery(actor, orderID)
	if err != nil {
		return err
	}
	view, err := s.queries.GetOrderAllocations.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderAllocationsResponse(view))
}
