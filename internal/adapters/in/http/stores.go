package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// storeScope resolves the caller and the {storeId} path parameter. Store checks
// happen in the query handlers.
func storeScope(c echo.Context) (kernel.Actor, kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	storeID, err := pathUUID(c, "storeId")
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	return actor, storeID, nil
}

func (s *Server) listPendingAllocations(c echo.Context) error {
	actor, storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListPendingAllocationsQuery(actor, storeID)
	if err != nil {
		return err
	}
	views, err := s.queries.ListPendingAllocations.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAllocationResponses(views))
}

func (s *Server) listStagedOrders(c echo.Context) error {
	actor, storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListStagedOrdersQuery(actor, storeID)
	if err != nil {
		return err
	}
	views, err := s.queries.ListStagedOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newStagedOrderResponses(views))
}

func (s *Server) listRoutes(c echo.Context) error {
	actor, storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListRoutesQuery(actor, storeID)
	if err != nil {
		return err
	}
	views, err := s.queries.ListRoutes.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newRouteResponses(views))
}

// listEligibleCrew evaluates eligibility at ?at=, defaulting to now.
func (s *Server) listEligibleCrew(c echo.Context) error {
	actor, storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	routeID, err := pathUUID(c, "routeId")
	if err != nil {
		return err
	}
	at, err := queryTime(c, "at", s.now())
	if err != nil {
		return err
	}

	query, err := queries.NewListEligibleCrewQuery(actor, storeID, routeID, at)
	if err != nil {
		return err
	}
	view, err := s.queries.ListEligibleCrew.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newEligibleCrewResponse(view))
}

func (s *Server) listCrew(c echo.Context) error {
	actor, storeID, err := storeScope(c)
	if err != nil {
		return err
	}
	raw, err := queryString(c, "role")
	if err != nil {
		return err
	}
	var role *employee.Role
	if raw != nil {
		parsed, parseErr := employee.ParseRole(*raw)
		if parseErr != nil {
			return parseErr
		}
		role = &parsed
	}

	query, err := queries.NewListCrewQuery(actor, storeID, role)
	if err != nil {
		return err
	}
	views, err := s.queries.ListCrew.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCrewResponses(views))
}
