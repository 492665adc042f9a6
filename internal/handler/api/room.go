package api

import (
	"net/http"

	reqdto "hotel-reservation/internal/handler/dto/request"
	resdto "hotel-reservation/internal/handler/dto/response"
	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	cmds         commands.RoomCommands
	q            queries.RoomQueries
	reservations queries.ReservationQueries
}

func NewRoomHandler(cmds commands.RoomCommands, q queries.RoomQueries, reservations queries.ReservationQueries) *RoomHandler {
	return &RoomHandler{cmds: cmds, q: q, reservations: reservations}
}

// @Summary List rooms
// @Tags rooms
// @Produce json
// @Param includeInactive query bool false "Include deactivated rooms"
// @Success 200 {array} resdto.RoomResponse
// @Router /api/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var req reqdto.ListRoomsRequest
	if !bindQuery(c, &req) {
		return
	}

	views, err := h.q.ListRooms(c.Request.Context(), req.IncludeInactive)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(views))
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetRoom(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary List room types
// @Tags rooms
// @Produce json
// @Success 200 {array} resdto.RoomTypeResponse
// @Router /api/room-types [get]
func (h *RoomHandler) ListTypes(c *gin.Context) {
	views, err := h.q.ListRoomTypes(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomTypeViews(views))
}

// @Summary Create room type
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomTypeRequest true "Room type"
// @Success 201 {object} resdto.RoomTypeResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/room-types [post]
func (h *RoomHandler) CreateType(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req reqdto.CreateRoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cmds.CreateRoomType(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRoomTypeView(*view))
}

// @Summary Create room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room"
// @Success 201 {object} resdto.RoomResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req reqdto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cmds.CreateRoom(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRoomView(view))
}

// @Summary Activate room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 422 {object} httperr.Response
// @Router /api/rooms/{id}/activate [post]
func (h *RoomHandler) Activate(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.cmds.ActivateRoom(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary Deactivate room
// @Description A deactivated room keeps its reservations but cannot be booked
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 422 {object} httperr.Response
// @Router /api/rooms/{id}/deactivate [post]
func (h *RoomHandler) Deactivate(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.cmds.DeactivateRoom(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary Change room price
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.ChangeRoomPriceRequest true "New nightly price"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Router /api/rooms/{id}/price [patch]
func (h *RoomHandler) ChangePrice(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ChangeRoomPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cmds.ChangeRoomPrice(c.Request.Context(), actor, id, *req.Amount)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary List reservations of a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id}/reservations [get]
func (h *RoomHandler) ListReservations(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	views, err := h.reservations.ListByRoom(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}
