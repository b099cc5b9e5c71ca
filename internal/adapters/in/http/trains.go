package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/train"

	"github.com/labstack/echo/v4"
)

// createTrain handles POST /api/v1/trains.
func (s *Server) createTrain(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err = requireCrossStore(actor); err != nil {
		return err
	}

	var req createTrainRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	capacity, err := kernel.NewSpace(*req.Capacity)
	if err != nil {
		return err
	}

	trainID := kernel.NewUUID()
	cmd, err := commands.NewCreateTrainCommand(trainID, req.Code, capacity, req.DepartureTime.UTC(), req.ArrivalTime.UTC())
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err = s.commands.CreateTrain.Handle(ctx, cmd); err != nil {
		return err
	}

	detail, err := s.loadTrain(c, trainID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newTrainResponse(detail.TrainView))
}

// listTrains handles GET /api/v1/trains?status=.
func (s *Server) listTrains(c echo.Context) error {
	raw, err := queryString(c, "status")
	if err != nil {
		return err
	}
	var status *train.Status
	if raw != nil {
		parsed, parseErr := train.ParseStatus(*raw)
		if parseErr != nil {
			return parseErr
		}
		status = &parsed
	}

	query, err := queries.NewListTrainsQuery(status)
	if err != nil {
		return err
	}
	views, err := s.queries.ListTrains.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]trainResponse, 0, len(views))
	for _, v := range views {
		response = append(response, newTrainResponse(v))
	}
	return c.JSON(http.StatusOK, response)
}

// getTrain handles GET /api/v1/trains/{trainId}.
func (s *Server) getTrain(c echo.Context) error {
	trainID, err := pathUUID(c, "trainId")
	if err != nil {
		return err
	}
	detail, err := s.loadTrain(c, trainID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trainDetailResponse{
		trainResponse: newTrainResponse(detail.TrainView),
		Allocations:   newAllocationResponses(detail.Allocations),
	})
}

// cancelTrain handles POST /api/v1/trains/{trainId}/cancel.
func (s *Server) cancelTrain(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err = requireCrossStore(actor); err != nil {
		return err
	}
	trainID, err := pathUUID(c, "trainId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelTrainCommand(trainID, s.now())
	if err != nil {
		return err
	}
	released, err := s.commands.CancelTrain.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Affected: released})
}

// markArrived handles POST /api/v1/trains/{trainId}/arrival.
func (s *Server) markArrived(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err = requireCrossStore(actor); err != nil {
		return err
	}
	trainID, err := pathUUID(c, "trainId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkArrivedCommand(trainID, s.now())
	if err != nil {
		return err
	}
	staged, err := s.commands.MarkArrived.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Affected: staged})
}

func (s *Server) loadTrain(c echo.Context, trainID kernel.UUID) (queries.TrainDetail, error) {
	query, err := queries.NewGetTrainQuery(trainID)
	if err != nil {
		return queries.TrainDetail{}, err
	}
	return s.queries.GetTrain.Handle(c.Request().Context(), query)
}
