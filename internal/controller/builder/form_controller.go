package builder

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openformlab/formbuilder/internal/dto"
	"github.com/openformlab/formbuilder/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// FormController serves the form builder's management endpoints.
type FormController struct {
	formService     service.FormService
	responseService service.ResponseService
}

func NewFormController(formService service.FormService, responseService service.ResponseService) *FormController {
	return &FormController{formService: formService, responseService: responseService}
}

// CreateForm godoc
// @Summary (Builder) Create a new form
// @Description Create a form with its ordered questions. Question order follows the request array.
// @Tags Builder - Forms
// @Accept json
// @Produce json
// @Param form_data body dto.FormCreateDTO true "Form definition including questions"
// @Success 201 {object} dto.FormResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid form definition"
// @Failure 500 {object} dto.ErrorResponse
// @Router /builder/forms [post]
func (c *FormController) CreateForm(ctx *gin.Context) {
	var req dto.FormCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateForm: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	formResp, err := c.formService.CreateForm(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateForm: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create form", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, formResp)
}

// UpdateForm godoc
// @Summary (Builder) Replace a form
// @Description Full-document replace: form metadata is overwritten and the question set is rebuilt. Existing responses keep their original scores.
// @Tags Builder - Forms
// @Accept json
// @Produce json
// @Param form_id path int true "Form ID"
// @Param form_data body dto.FormCreateDTO true "Replacement form definition"
// @Success 200 {object} dto.FormResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /builder/forms/{form_id} [put]
func (c *FormController) UpdateForm(ctx *gin.Context) {
	formID, ok := pathID(ctx, "form_id")
	if !ok {
		return
	}
	var req dto.FormCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateForm: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	formResp, err := c.formService.ReplaceForm(formID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("formID", formID).Msg("UpdateForm: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to update form", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, formResp)
}

// SetAcceptingResponses godoc
// @Summary (Builder) Toggle whether a form accepts responses
// @Tags Builder - Forms
// @Accept json
// @Produce json
// @Param form_id path int true "Form ID"
// @Param toggle body dto.AcceptingResponsesDTO true "New accepting-responses value"
// @Success 200 {object} dto.FormResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /builder/forms/{form_id}/accepting-responses [patch]
func (c *FormController) SetAcceptingResponses(ctx *gin.Context) {
	formID, ok := pathID(ctx, "form_id")
	if !ok {
		return
	}
	var req dto.AcceptingResponsesDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	formResp, err := c.formService.SetAcceptingResponses(formID, *req.AcceptingResponses)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, formResp)
}

// DeleteForm godoc
// @Summary (Builder) Delete a form
// @Description Deletes the form together with all of its collected responses.
// @Tags Builder - Forms
// @Produce json
// @Param form_id path int true "Form ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /builder/forms/{form_id} [delete]
func (c *FormController) DeleteForm(ctx *gin.Context) {
	formID, ok := pathID(ctx, "form_id")
	if !ok {
		return
	}
	if err := c.formService.DeleteForm(formID); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Form deleted"})
}

// GetFormResponses godoc
// @Summary (Builder) List a form's responses with statistics
// @Description Every submission with its percentage, aggregate statistics, and each question paired with all collected answers.
// @Tags Builder - Forms
// @Produce json
// @Param form_id path int true "Form ID"
// @Success 200 {object} dto.FormResponsesDTO
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /builder/forms/{form_id}/responses [get]
func (c *FormController) GetFormResponses(ctx *gin.Context) {
	formID, ok := pathID(ctx, "form_id")
	if !ok {
		return
	}
	view, err := c.responseService.GetFormResponses(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("formID", formID).Msg("GetFormResponses: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve responses", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
