package http

import (
	"net/http"
	"strconv"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createParcelHandler    commands.CreateParcelCommandHandler
	updateStatusHandler    commands.UpdateParcelStatusCommandHandler
	cancelHandler          commands.CancelParcelCommandHandler
	confirmHandler         commands.ConfirmDeliveryCommandHandler
	returnHandler          commands.ReturnParcelCommandHandler
	flagHandler            commands.FlagParcelCommandHandler
	holdHandler            commands.HoldParcelCommandHandler
	blockHandler           commands.BlockParcelCommandHandler
	unblockHandler         commands.UnblockParcelCommandHandler
	assignPersonnelHandler commands.AssignPersonnelCommandHandler
	deleteHandler          commands.DeleteParcelCommandHandler

	trackHandler queries.TrackParcelQueryHandler
	getHandler   queries.GetParcelQueryHandler
	listHandler  queries.ListParcelsQueryHandler
	statsHandler queries.ParcelStatsQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	updateStatusHandler commands.UpdateParcelStatusCommandHandler,
	cancelHandler commands.CancelParcelCommandHandler,
	confirmHandler commands.ConfirmDeliveryCommandHandler,
	returnHandler commands.ReturnParcelCommandHandler,
	flagHandler commands.FlagParcelCommandHandler,
	holdHandler commands.HoldParcelCommandHandler,
	blockHandler commands.BlockParcelCommandHandler,
	unblockHandler commands.UnblockParcelCommandHandler,
	assignPersonnelHandler commands.AssignPersonnelCommandHandler,
	deleteHandler commands.DeleteParcelCommandHandler,
	trackHandler queries.TrackParcelQueryHandler,
	getHandler queries.GetParcelQueryHandler,
	listHandler queries.ListParcelsQueryHandler,
	statsHandler queries.ParcelStatsQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:    createParcelHandler,
		updateStatusHandler:    updateStatusHandler,
		cancelHandler:          cancelHandler,
		confirmHandler:         confirmHandler,
		returnHandler:          returnHandler,
		flagHandler:            flagHandler,
		holdHandler:            holdHandler,
		blockHandler:           blockHandler,
		unblockHandler:         unblockHandler,
		assignPersonnelHandler: assignPersonnelHandler,
		deleteHandler:          deleteHandler,
		trackHandler:           trackHandler,
		getHandler:             getHandler,
		listHandler:            listHandler,
		statsHandler:           statsHandler,
	}
}

// RegisterRoutes wires all endpoints under /api/v1 with their role guards.
// Tracking by code is the only unauthenticated endpoint.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	api := e.Group("/api/v1")

	api.GET("/parcels/track/:trackingId", s.TrackParcel)

	auth := api.Group("", JWTAuth(jwtSecret))

	auth.POST("/parcels", s.CreateParcel, RequireRoles(user.RoleSender))
	auth.GET("/parcels/me", s.ListOwnParcels, RequireRoles(user.RoleSender, user.RoleReceiver))
	auth.GET("/parcels/stats", s.GetStats, RequireRoles(user.RoleAdmin))
	auth.GET("/parcels/:id", s.GetParcel)
	auth.GET("/parcels", s.ListParcels, RequireRoles(user.RoleAdmin))

	auth.PATCH("/parcels/cancel/:id", s.CancelParcel, RequireRoles(user.RoleSender, user.RoleAdmin))
	auth.PATCH("/parcels/:id/confirm-delivery", s.ConfirmDelivery, RequireRoles(user.RoleReceiver))

	admin := auth.Group("", RequireRoles(user.RoleAdmin))
	admin.PATCH("/parcels/:id/status", s.UpdateStatus)
	admin.PATCH("/parcels/:id/return", s.ReturnParcel)
	admin.PATCH("/parcels/:id/flag", s.FlagParcel)
	admin.PATCH("/parcels/:id/hold", s.HoldParcel)
	admin.PATCH("/parcels/:id/block-status", s.BlockParcel)
	admin.PATCH("/parcels/:id/unblock", s.UnblockParcel)
	admin.PATCH("/parcels/:id/assign-personnel", s.AssignPersonnel)
	admin.DELETE("/parcels/:id", s.DeleteParcel)
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req createParcelRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	parcelType, err := parcel.TypeFromString(req.ParcelType)
	if err != nil {
		return writeError(c, err)
	}
	receiver, err := parcel.NewPartyInfo(req.Receiver.Name, req.Receiver.Email, req.Receiver.Phone, req.Receiver.Address)
	if err != nil {
		return writeError(c, err)
	}
	details, err := parcel.NewDetails(parcelType, req.WeightKg, req.Dimensions, req.Description, req.DeclaredValue)
	if err != nil {
		return writeError(c, err)
	}
	preferences, err := parcel.NewPreferences(req.PreferredDeliveryDate, req.Instructions, req.Urgent, time.Now().UTC())
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), actor.ID(), receiver, details, preferences)
	if err != nil {
		return writeError(c, err)
	}

	created, err := s.createParcelHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, createdFrom(created))
}

// TrackParcel handles GET /api/v1/parcels/track/:trackingId.
func (s *Server) TrackParcel(c echo.Context) error {
	query, err := queries.NewTrackParcelQuery(c.Param("trackingId"))
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.trackHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetParcel handles GET /api/v1/parcels/:id.
func (s *Server) GetParcel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetParcelQuery(actor, parcelID)
	if err != nil {
		return writeError(c, err)
	}

	view, err := s.getHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// ListOwnParcels handles GET /api/v1/parcels/me. The query layer scopes the
// listing to the actor's own parcels.
func (s *Server) ListOwnParcels(c echo.Context) error {
	return s.list(c)
}

// ListParcels handles GET /api/v1/parcels.
func (s *Server) ListParcels(c echo.Context) error {
	return s.list(c)
}

func (s *Server) list(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	filter, page, pageSize, err := parseListParams(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewListParcelsQuery(actor, filter, page, pageSize)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.listHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, listResponse{
		Items:    result.Items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

// GetStats handles GET /api/v1/parcels/stats.
func (s *Server) GetStats(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	query, err := queries.NewParcelStatsQuery(actor)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.statsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// UpdateStatus handles PATCH /api/v1/parcels/:id/status.
func (s *Server) UpdateStatus(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req updateStatusRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	target, err := parcel.StatusFromString(req.Status)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(actor, parcelID, target, req.Location, req.Note)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.updateStatusHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelParcel handles PATCH /api/v1/parcels/cancel/:id.
func (s *Server) CancelParcel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req noteRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewCancelParcelCommand(actor, parcelID, req.Note)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.cancelHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles PATCH /api/v1/parcels/:id/confirm-delivery.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req noteRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewConfirmDeliveryCommand(actor, parcelID, req.Note)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.confirmHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReturnParcel handles PATCH /api/v1/parcels/:id/return.
func (s *Server) ReturnParcel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req noteRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewReturnParcelCommand(actor, parcelID, req.Note)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.returnHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// FlagParcel handles PATCH /api/v1/parcels/:id/flag.
func (s *Server) FlagParcel(c echo.Context) error {
	return s.gate(c, func(actor user.Actor, id kernel.UUID, req gateRequest) error {
		cmd, err := commands.NewFlagParcelCommand(actor, id, req.Set, req.Note)
		if err != nil {
			return err
		}
		return s.flagHandler.Handle(c.Request().Context(), cmd)
	})
}

// HoldParcel handles PATCH /api/v1/parcels/:id/hold.
func (s *Server) HoldParcel(c echo.Context) error {
	return s.gate(c, func(actor user.Actor, id kernel.UUID, req gateRequest) error {
		cmd, err := commands.NewHoldParcelCommand(actor, id, req.Set, req.Note)
		if err != nil {
			return err
		}
		return s.holdHandler.Handle(c.Request().Context(), cmd)
	})
}

// BlockParcel handles PATCH /api/v1/parcels/:id/block-status.
func (s *Server) BlockParcel(c echo.Context) error {
	return s.gate(c, func(actor user.Actor, id kernel.UUID, req gateRequest) error {
		cmd, err := commands.NewBlockParcelCommand(actor, id, req.Set, req.Note)
		if err != nil {
			return err
		}
		return s.blockHandler.Handle(c.Request().Context(), cmd)
	})
}

func (s *Server) gate(c echo.Context, apply func(user.Actor, kernel.UUID, gateRequest) error) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req gateRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	if err = apply(actor, parcelID, req); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UnblockParcel handles PATCH /api/v1/parcels/:id/unblock.
func (s *Server) UnblockParcel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req noteRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewUnblockParcelCommand(actor, parcelID, req.Note)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.unblockHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AssignPersonnel handles PATCH /api/v1/parcels/:id/assign-personnel.
func (s *Server) AssignPersonnel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req assignPersonnelRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewAssignPersonnelCommand(actor, parcelID, req.Personnel)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.assignPersonnelHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteParcel handles DELETE /api/v1/parcels/:id.
func (s *Server) DeleteParcel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewDeleteParcelCommand(actor, parcelID)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.deleteHandler.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// parseListParams reads the listing filter and pagination from query
// parameters. Malformed values fail the request rather than being silently
// dropped.
func parseListParams(c echo.Context) (queries.ParcelFilter, int, int, error) {
	var filter queries.ParcelFilter

	if raw := c.QueryParam("status"); raw != "" {
		status, err := parcel.StatusFromString(raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("urgent"); raw != "" {
		urgent, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, 0, 0, errs.NewValueIsInvalidError("urgent")
		}
		filter.Urgent = &urgent
	}
	if raw := c.QueryParam("createdFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, 0, 0, errs.NewValueIsInvalidError("createdFrom")
		}
		filter.CreatedFrom = &from
	}
	if raw := c.QueryParam("createdTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, 0, 0, errs.NewValueIsInvalidError("createdTo")
		}
		filter.CreatedTo = &to
	}
	filter.Search = c.QueryParam("search")

	if raw := c.QueryParam("senderId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.SenderID = &id
	}
	if raw := c.QueryParam("receiverId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.ReceiverID = &id
	}
	for name, dst := range map[string]**bool{
		"flagged": &filter.Flagged,
		"held":    &filter.Held,
		"blocked": &filter.Blocked,
	} {
		if raw := c.QueryParam(name); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				return filter, 0, 0, errs.NewValueIsInvalidError(name)
			}
			*dst = &value
		}
	}

	page, err := intParam(c, "page")
	if err != nil {
		return filter, 0, 0, err
	}
	pageSize, err := intParam(c, "pageSize")
	if err != nil {
		return filter, 0, 0, err
	}

	return filter, page, pageSize, nil
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return value, nil
}
