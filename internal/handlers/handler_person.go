package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/dealership_ledger/internal/core/ports/services"
	"github.com/SscSPs/dealership_ledger/internal/dto"
	"github.com/SscSPs/dealership_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// personHandler handles HTTP requests related to the person directory.
type personHandler struct {
	personService portssvc.PersonSvcFacade
}

// newPersonHandler creates a new personHandler.
func newPersonHandler(ps portssvc.PersonSvcFacade) *personHandler {
	return &personHandler{
		personService: ps,
	}
}

// registerPersonRoutes registers all person-related routes.
func registerPersonRoutes(rg *gin.RouterGroup, personService portssvc.PersonSvcFacade) {
	h := newPersonHandler(personService)

	persons := rg.Group("/persons")
	{
		persons.GET("", h.listPersons)
		persons.GET("/:id", h.getPerson)
		persons.PUT("/:id", h.updatePerson)
		persons.POST("", h.createPerson)
	}
}

// createPerson godoc
// @Summary Create a person
// @Description Registers a customer, broker or middle man with a zero balance
// @Tags persons
// @Accept  json
// @Produce  json
// @Param   person body dto.CreatePersonRequest true "Person details"
// @Success 201 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create person"
// @Security BearerAuth
// @Router /persons [post]
func (h *personHandler) createPerson(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create person request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	person, err := h.personService.CreatePerson(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create person")
		return
	}

	logger.Info("Person created successfully", slog.String("person_id", person.PersonID))
	c.JSON(http.StatusCreated, dto.ToPersonResponse(person))
}

// getPerson godoc
// @Summary Get a person by ID
// @Description Retrieves a person with the current ledger balance
// @Tags persons
// @Produce  json
// @Param   id path string true "Person ID"
// @Success 200 {object} dto.PersonResponse
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 500 {object} map[string]string "Failed to retrieve person"
// @Security BearerAuth
// @Router /persons/{id} [get]
func (h *personHandler) getPerson(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	person, err := h.personService.GetPersonByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve person")
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}

// listPersons godoc
// @Summary List persons
// @Tags persons
// @Produce  json
// @Param   type query string false "Person type" Enums(CUSTOMER, BROKER, MIDDLE_MAN)
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListPersonsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list persons"
// @Security BearerAuth
// @Router /persons [get]
func (h *personHandler) listPersons(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPersonsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for list persons", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	persons, err := h.personService.ListPersons(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list persons")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPersonsResponse(persons))
}

// updatePerson godoc
// @Summary Update a person
// @Description Updates name, type or phone. The balance is owned by the ledger.
// @Tags persons
// @Accept  json
// @Produce  json
// @Param   id path string true "Person ID"
// @Param   person body dto.UpdatePersonRequest true "Fields to update"
// @Success 200 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Person not found"
// @Failure 500 {object} map[string]string "Failed to update person"
// @Security BearerAuth
// @Router /persons/{id} [put]
func (h *personHandler) updatePerson(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	personID := c.Param("id")
	var req dto.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update person request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := userOrAbort(c, logger)
	if !ok {
		return
	}

	person, err := h.personService.UpdatePerson(c.Request.Context(), personID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("person_id", personID)), err, "Failed to update person")
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}
