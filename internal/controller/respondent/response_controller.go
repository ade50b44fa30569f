package respondent

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openformlab/formbuilder/internal/dto"
	"github.com/openformlab/formbuilder/internal/scoring"
	"github.com/openformlab/formbuilder/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResponseController serves the respondent-facing endpoints: browsing
// forms, submitting responses, and viewing one's own scored result.
type ResponseController struct {
	formService       service.FormService
	submissionService service.SubmissionService
}

func NewResponseController(formService service.FormService, submissionService service.SubmissionService) *ResponseController {
	return &ResponseController{formService: formService, submissionService: submissionService}
}

// ListForms godoc
// @Summary List all forms
// @Description List forms with their question and response counts.
// @Tags Respondent - Forms & Responses
// @Produce json
// @Success 200 {array} dto.FormSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /forms [get]
func (c *ResponseController) ListForms(ctx *gin.Context) {
	forms, err := c.formService.ListForms()
	if err != nil {
		log.Error().Err(err).Msg("ListForms: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve forms", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, forms)
}

// GetForm godoc
// @Summary Get a form
// @Description Full form definition with its ordered questions, for rendering and filling in.
// @Tags Respondent - Forms & Responses
// @Produce json
// @Param form_id path int true "Form ID"
// @Success 200 {object} dto.FormResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Form ID format"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{form_id} [get]
func (c *ResponseController) GetForm(ctx *gin.Context) {
	formID, ok := pathID(ctx, "form_id")
	if !ok {
		return
	}
	form, err := c.formService.GetForm(formID)
	if err != nil {
		log.Warn().Err(err).Uint("formID", formID).Msg("GetForm: form not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, form)
}

// SubmitResponse godoc
// @Summary Submit a response to a form
// @Description Validates the submission, scores it server-side against the form's answer keys, and stores it. The response body carries the computed score.
// @Tags Respondent - Forms & Responses
// @Accept json
// @Produce json
// @Param form_id path int true "Form ID"
// @Param submission body dto.ResponseSubmitDTO true "Answers and optional respondent info"
// @Success 201 {object} dto.ResponseDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid submission (missing responses, respondent info, bad email, unanswered required question)"
// @Failure 403 {object} dto.ErrorResponse "Form is not accepting responses"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /forms/{form_id}/responses [post]
func (c *ResponseController) SubmitResponse(ctx *gin.Context) {
	formID, ok := pathID(ctx, "form_id")
	if !ok {
		return
	}
	var req dto.ResponseSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitResponse: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	detail, err := c.submissionService.SubmitResponse(formID, req)
	if err != nil {
		var vErr *scoring.ValidationError
		switch {
		case errors.As(err, &vErr):
			status := http.StatusBadRequest
			if vErr.Reason == scoring.ReasonFormClosed {
				status = http.StatusForbidden
			}
			ctx.JSON(status, dto.ErrorResponse{Message: vErr.Error(), Details: []string{string(vErr.Reason)}})
		case isNotFound(err):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Uint("formID", formID).Msg("SubmitResponse: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit response", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusCreated, detail)
}

// GetResponse godoc
// @Summary Get one submitted response
// @Description The confirmation view: the stored answers plus the server-computed score and percentage.
// @Tags Respondent - Forms & Responses
// @Produce json
// @Param response_id path int true "Response ID"
// @Success 200 {object} dto.ResponseDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Response ID format"
// @Failure 404 {object} dto.ErrorResponse "Response not found"
// @Router /responses/{response_id} [get]
func (c *ResponseController) GetResponse(ctx *gin.Context) {
	responseID, ok := pathID(ctx, "response_id")
	if !ok {
		return
	}
	detail, err := c.submissionService.GetResponse(responseID)
	if err != nil {
		log.Warn().Err(err).Uint("responseID", responseID).Msg("GetResponse: response not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
