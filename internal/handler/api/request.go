package api

import (
	"errors"
	"net/http"

	"printmarket/internal/domain/request"
	"printmarket/internal/domain/user"
	reqdto "printmarket/internal/handler/dto/request"
	resdto "printmarket/internal/handler/dto/response"
	"printmarket/internal/handler/httperr"
	"printmarket/internal/handler/middleware"
	"printmarket/internal/pkg/errs"
	"printmarket/internal/usecase/commands"
	"printmarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	requestCommands commands.RequestCommands
	requestQueries  queries.RequestQueries
}

func NewRequestHandler(requestCommands commands.RequestCommands, requestQueries queries.RequestQueries) *RequestHandler {
	return &RequestHandler{
		requestCommands: requestCommands,
		requestQueries:  requestQueries,
	}
}

// @Summary Create print request
// @Description Submit a new print request as a customer
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRequestRequest true "Print request"
// @Success 201 {object} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Router /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, role, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if role.IsProvider() {
		httperr.AbortWithError(c, http.StatusForbidden, errs.ErrForbidden, "Only customers can create print requests", nil)
		return
	}

	var req reqdto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.requestCommands.CreateRequest(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		h.handleCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRequestView(view))
}

// @Summary Get print request
// @Description Get a print request visible to the caller
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 404 {object} httperr.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, role, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format", nil)
		return
	}

	actor := request.Actor{ID: userID, Provider: role.IsProvider()}
	view, err := h.requestQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.handleCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary List print requests
// @Description Role-scoped request listing. scope=mine lists the caller's own
// @Description requests (customer) or assigned orders (provider); scope=assigned
// @Description and scope=available are provider-only.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param scope query string false "mine, assigned or available" default(mine)
// @Param material query string false "Filter by material"
// @Param status query string false "Filter by status"
// @Success 200 {array} resdto.RequestListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	userID, role, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	filter, err := listFilterFromQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter parameter", nil)
		return
	}

	scope := c.DefaultQuery("scope", "mine")
	var items []*queries.RequestListItem
	switch scope {
	case "mine":
		if role.IsProvider() {
			items, err = h.requestQueries.ListAssigned(c.Request.Context(), userID, filter)
		} else {
			items, err = h.requestQueries.ListMine(c.Request.Context(), userID, filter)
		}
	case "assigned":
		if !role.IsProvider() {
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrForbidden, "Assigned scope is provider-only", nil)
			return
		}
		items, err = h.requestQueries.ListAssigned(c.Request.Context(), userID, filter)
	case "available":
		if !role.IsProvider() {
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrForbidden, "Available pool is provider-only", nil)
			return
		}
		items, err = h.requestQueries.ListAvailable(c.Request.Context(), userID, filter)
	default:
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrValidation, "Unknown scope", nil)
		return
	}
	if err != nil {
		h.handleCommandError(c, err)
		return
	}

	response := make([]*resdto.RequestListResponse, 0, len(items))
	for _, item := range items {
		response = append(response, resdto.FromRequestListItem(item))
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Apply lifecycle action
// @Description Invoke one state machine action (submit_quote, accept_quote,
// @Description reject, start_print, complete) against a print request.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.RequestActionRequest true "Action"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/actions [post]
func (h *RequestHandler) ApplyAction(c *gin.Context) {
	userID, role, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format", nil)
		return
	}

	var req reqdto.RequestActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	actor := request.Actor{ID: userID, Provider: role.IsProvider()}
	view, err := h.requestCommands.ApplyAction(c.Request.Context(), id, actor, req.ToParams())
	if err != nil {
		h.handleCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

func (h *RequestHandler) handleCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Print request not found", nil)
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errors.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Action not permitted", nil)
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Action is not legal for the current status", nil)
	case errors.Is(err, errs.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request was modified concurrently", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func actorFromContext(c *gin.Context) (uuid.UUID, user.Role, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, role, true
}

func listFilterFromQuery(c *gin.Context) (queries.ListFilter, error) {
	var filter queries.ListFilter
	if material := c.Query("material"); material != "" {
		filter.Material = &material
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := request.Status(statusStr)
		if !status.IsValid() {
			return queries.ListFilter{}, errs.ErrValidation
		}
		filter.Status = &status
	}
	return filter, nil
}
