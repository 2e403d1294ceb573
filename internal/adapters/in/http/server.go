// Package http exposes the production execution engine over a JSON API.
// Handlers translate requests into commands and queries, and map domain
// rule violations onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/telemetry"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned on failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	planBatchHandler           commands.PlanBatchCommandHandler
	splitJobCardHandler        commands.SplitJobCardCommandHandler
	startStepHandler           commands.StartStepCommandHandler
	completeStepHandler        commands.CompleteStepCommandHandler
	toggleSubStepHandler       commands.ToggleSubStepCommandHandler
	acceptOpenJobHandler       commands.AcceptOpenJobCommandHandler
	assignStepHandler          commands.AssignStepCommandHandler
	submitFQCHandler           commands.SubmitFQCCommandHandler
	recordOutwardSentHandler   commands.RecordOutwardSentCommandHandler
	recordOutwardReturnHandler commands.RecordOutwardReturnCommandHandler
	setOrderStageHandler       commands.SetOrderStageCommandHandler
	holdOrderHandler           commands.HoldOrderCommandHandler
	resumeOrderHandler         commands.ResumeOrderCommandHandler
	recomputeStageHandler      commands.RecomputeOrderStageCommandHandler

	// Query handlers
	getOpenJobsHandler      queries.GetOpenJobsQueryHandler
	getOrderProgressHandler queries.GetOrderProgressQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	planBatchHandler commands.PlanBatchCommandHandler,
	splitJobCardHandler commands.SplitJobCardCommandHandler,
	startStepHandler commands.StartStepCommandHandler,
	completeStepHandler commands.CompleteStepCommandHandler,
	toggleSubStepHandler commands.ToggleSubStepCommandHandler,
	acceptOpenJobHandler commands.AcceptOpenJobCommandHandler,
	assignStepHandler commands.AssignStepCommandHandler,
	submitFQCHandler commands.SubmitFQCCommandHandler,
	recordOutwardSentHandler commands.RecordOutwardSentCommandHandler,
	recordOutwardReturnHandler commands.RecordOutwardReturnCommandHandler,
	setOrderStageHandler commands.SetOrderStageCommandHandler,
	holdOrderHandler commands.HoldOrderCommandHandler,
	resumeOrderHandler commands.ResumeOrderCommandHandler,
	recomputeStageHandler commands.RecomputeOrderStageCommandHandler,
	getOpenJobsHandler queries.GetOpenJobsQueryHandler,
	getOrderProgressHandler queries.GetOrderProgressQueryHandler,
) *Server {
	return &Server{
		planBatchHandler:           planBatchHandler,
		splitJobCardHandler:        splitJobCardHandler,
		startStepHandler:           startStepHandler,
		completeStepHandler:        completeStepHandler,
		toggleSubStepHandler:       toggleSubStepHandler,
		acceptOpenJobHandler:       acceptOpenJobHandler,
		assignStepHandler:          assignStepHandler,
		submitFQCHandler:           submitFQCHandler,
		recordOutwardSentHandler:   recordOutwardSentHandler,
		recordOutwardReturnHandler: recordOutwardReturnHandler,
		setOrderStageHandler:       setOrderStageHandler,
		holdOrderHandler:           holdOrderHandler,
		resumeOrderHandler:         resumeOrderHandler,
		recomputeStageHandler:      recomputeStageHandler,
		getOpenJobsHandler:         getOpenJobsHandler,
		getOrderProgressHandler:    getOrderProgressHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders/:orderID/batches", s.PlanBatch)
	api.PUT("/orders/:orderID/stage", s.SetOrderStage)
	api.POST("/orders/:orderID/stage/recompute", s.RecomputeOrderStage)
	api.POST("/orders/:orderID/hold", s.HoldOrder)
	api.POST("/orders/:orderID/resume", s.ResumeOrder)
	api.GET("/orders/:orderID/progress", s.GetOrderProgress)

	api.POST("/job-cards/:cardID/split", s.SplitJobCard)
	api.POST("/job-cards/:cardID/steps/:stepIndex/start", s.StartStep)
	api.POST("/job-cards/:cardID/steps/:stepIndex/complete", s.CompleteStep)
	api.POST("/job-cards/:cardID/steps/:stepIndex/claim", s.AcceptOpenJob)
	api.POST("/job-cards/:cardID/steps/:stepIndex/assign", s.AssignStep)
	api.POST("/job-cards/:cardID/steps/:stepIndex/fqc", s.SubmitFQC)
	api.POST("/job-cards/:cardID/steps/:stepIndex/outward/sent", s.RecordOutwardSent)
	api.POST("/job-cards/:cardID/steps/:stepIndex/outward/return", s.RecordOutwardReturn)
	api.POST("/job-cards/:cardID/steps/:stepIndex/sub-steps/:subIndex/toggle", s.ToggleSubStep)

	api.GET("/open-jobs", s.GetOpenJobs)
}

// StepOverride is one entry of a per-batch route override.
type StepOverride struct {
	Name      string   `json:"name"`
	StepType  string   `json:"stepType"`
	SubSteps  []string `json:"subSteps"`
	IsOpenJob bool     `json:"isOpenJob"`
}

// PlanBatchRequest is the body of POST /orders/:orderID/batches.
type PlanBatchRequest struct {
	ItemID          string         `json:"itemId"`
	BatchQty        int            `json:"batchQty"`
	ExtraQty        int            `json:"extraQty"`
	StepOverrides   []StepOverride `json:"stepOverrides"`
	IgnoreShortages bool           `json:"ignoreShortages"`
}

// ShortageResponse is one raw-material warning returned from planning.
type ShortageResponse struct {
	MaterialID   string  `json:"materialId"`
	MaterialName string  `json:"materialName"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
}

// PlanBatchResponse is the body returned from a successful planning call.
type PlanBatchResponse struct {
	JobCardID string             `json:"jobCardId"`
	Shortages []ShortageResponse `json:"shortages"`
}

// PlanBatch handles POST /api/v1/orders/:orderID/batches - plans a batch
// of an order item into a new job card.
func (s *Server) PlanBatch(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request PlanBatchRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	itemID, err := kernel.UUIDFromString(request.ItemID)
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	overrides, err := toStepTemplates(request.StepOverrides)
	if err != nil {
		return badRequest(ctx, "Invalid step overrides: "+err.Error())
	}

	jobCardID := kernel.NewUUID()
	cmd, err := commands.NewPlanBatchCommand(
		orderID, itemID, jobCardID,
		request.BatchQty, request.ExtraQty,
		overrides, request.IgnoreShortages,
	)
	if err != nil {
		return badRequest(ctx, "Invalid batch data: "+err.Error())
	}

	shortages, err := s.planBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}
	telemetry.BatchesPlanned.Inc()

	response := PlanBatchResponse{
		JobCardID: jobCardID.String(),
		Shortages: make([]ShortageResponse, 0, len(shortages)),
	}
	for _, shortage := range shortages {
		response.Shortages = append(response.Shortages, ShortageResponse{
			MaterialID:   shortage.MaterialID.String(),
			MaterialName: shortage.MaterialName,
			Required:     shortage.Required,
			Available:    shortage.Available,
		})
	}

	return ctx.JSON(http.StatusCreated, response)
}

// SplitJobCardRequest is the body of POST /job-cards/:cardID/split.
type SplitJobCardRequest struct {
	SplitQty int `json:"splitQty"`
}

// SplitJobCardResponse returns the sibling card created by a split.
type SplitJobCardResponse struct {
	NewJobCardID string `json:"newJobCardId"`
}

// SplitJobCard handles POST /api/v1/job-cards/:cardID/split - carves a
// sibling card off an unstarted job card.
func (s *Server) SplitJobCard(ctx echo.Context) error {
	cardID, err := parseUUIDParam(ctx, "cardID")
	if err != nil {
		return badRequest(ctx, "Invalid job card id")
	}

	var request SplitJobCardRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newJobCardID := kernel.NewUUID()
	cmd, err := commands.NewSplitJobCardCommand(cardID, newJobCardID, request.SplitQty)
	if err != nil {
		return badRequest(ctx, "Invalid split data: "+err.Error())
	}

	if err = s.splitJobCardHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SplitJobCardResponse{NewJobCardID: newJobCardID.String()})
}

// EmployeeActionRequest carries the acting employee for step operations.
type EmployeeActionRequest struct {
	EmployeeID string `json:"employeeId"`
}

// StartStep handles POST /api/v1/job-cards/:cardID/steps/:stepIndex/start.
func (s *Server) StartStep(ctx echo.Context) error {
	cardID, stepIndex, err := parseStepParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request EmployeeActionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employeeID, err := kernel.UUIDFromString(request.EmployeeID)
	if err != nil {
		return badRequest(ctx, "Invalid employee id")
	}

	cmd, err := commands.NewStartStepCommand(cardID, stepIndex, employeeID)
	if err != nil {
		return badRequest(ctx, "Invalid step data: "+err.Error())
	}

	if err = s.startStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteStepRequest is the body of POST .../steps/:stepIndex/complete.
type CompleteStepRequest struct {
	Processed  int    `json:"processed"`
	Rejected   int    `json:"rejected"`
	Remarks    string `json:"remarks"`
	EmployeeID string `json:"employeeId"`
}

// CompleteStep handles POST /api/v1/job-cards/:cardID/steps/:stepIndex/complete.
func (s *Server) CompleteStep(ctx echo.Context) error {
	cardID, stepIndex, err := parseStepParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request CompleteStepRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employeeID, err := kernel.UUIDFromString(request.EmployeeID)
	if err != nil {
		return badRequest(ctx, "Invalid employee id")
	}

	cmd, err := commands.NewCompleteStepCommand(
		cardID, stepIndex, request.Processed, request.Rejected, request.Remarks, employeeID)
	if err != nil {
		return badRequest(ctx, "Invalid step data: "+err.Error())
	}

	if err = s.completeStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	telemetry.StepsCompleted.Inc()
	telemetry.PiecesRejected.Add(float64(request.Rejected))

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOpenJob handles POST /api/v1/job-cards/:cardID/steps/:stepIndex/claim.
func (s *Server) AcceptOpenJob(ctx echo.Context) error {
	cardID, stepIndex, err := parseStepParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request EmployeeActionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employeeID, err := kernel.UUIDFromString(request.EmployeeID)
	if err != nil {
		return badRequest(ctx, "Invalid employee id")
	}

	cmd, err := commands.NewAcceptOpenJobCommand(cardID, stepIndex, employeeID)
	if err != nil {
		return badRequest(ctx, "Invalid claim data: "+err.Error())
	}

	if err = s.acceptOpenJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	telemetry.OpenJobsClaimed.Inc()

	return ctx.NoContent(http.StatusNoContent)
}

// AssignStep handles POST /api/v1/job-cards/:cardID/steps/:stepIndex/assign.
func (s *Server) AssignStep(ctx echo.Context) error {
	cardID, stepIndex, err := parseStepParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request EmployeeActionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employeeID, err := kernel.UUIDFromString(request.EmployeeID)
	if err != nil {
		return badRequest(ctx, "Invalid employee id")
	}

	cmd, err := commands.NewAssignStepCommand(cardID, stepIndex, employeeID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if err = s.assignStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ToggleSubStep handles POST .../steps/:stepIndex/sub-steps/:subIndex/toggle.
func (s *Server) ToggleSubStep(ctx echo.Context) error {
	cardID, stepIndex, err := parseStepParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	subIndex, err := strconv.Atoi(ctx.Param("subIndex"))
	if err != nil {
		return badRequest(ctx, "Invalid sub-step index")
	}

	cmd, err := commands.NewToggleSubStepCommand(cardID, stepIndex, subIndex)
	if err != nil {
		return badRequest(ctx, "Invalid checklist data: "+err.Error())
	}

	if err = s.toggleSubStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ParameterReadingRequest carries one parameter's sample readings.
type ParameterReadingRequest struct {
	Name    string   `json:"name"`
	Samples []string `json:"samples"`
	Remarks string   `json:"remarks"`
}

// SubmitFQCRequest is the body of POST .../steps/:stepIndex/fqc.
type SubmitFQCRequest struct {
	Processed int                       `json:"processed"`
	Rejected  int                       `json:"rejected"`
	Readings  []ParameterReadingRequest `json:"readings"`
	Confirmed string                    `json:"confirmed"`
}

// SubmitFQC handles POST /api/v1/job-cards/:cardID/steps/:stepIndex/fqc -
// submits the sampling step with the inspector's confirmed disposition.
func (s *Server) SubmitFQC(ctx echo.Context) error {
	cardID, stepIndex, err := parseStepParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request SubmitFQCRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	confirmed, err := parseDisposition(request.Confirmed)
	if err != nil {
		return badRequest(ctx, "Invalid confirmed disposition")
	}

	readings := make([]commands.ParameterReading, 0, len(request.Readings))
	for _, reading := range request.Readings {
		readings = append(readings, commands.ParameterReading{
			Name:    reading.Name,
			Samples: reading.Samples,
			Remarks: reading.Remarks,
		})
	}

	cmd, err := commands.NewSubmitFQCCommand(
		cardID, stepIndex, request.Processed, request.Rejected, readings, confirmed)
	if err != nil {
		return badRequest(ctx, "Invalid FQC data: "+err.Error())
	}

	if err = s.submitFQCHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordOutwardSentRequest is the body of POST .../outward/sent.
type RecordOutwardSentRequest struct {
	VendorName string    `json:"vendorName"`
	SentDate   time.Time `json:"sentDate"`
}

// RecordOutwardSent handles POST .../steps/:stepIndex/outward/sent.
func (s *Server) RecordOutwardSent(ctx echo.Context) error {
	cardID, stepIndex, err := parseStepParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request RecordOutwardSentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordOutwardSentCommand(cardID, stepIndex, request.VendorName, request.SentDate)
	if err != nil {
		return badRequest(ctx, "Invalid dispatch data: "+err.Error())
	}

	if err = s.recordOutwardSentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordOutwardReturnRequest is the body of POST .../outward/return.
type RecordOutwardReturnRequest struct {
	ReturnDate time.Time `json:"returnDate"`
}

// RecordOutwardReturn handles POST .../steps/:stepIndex/outward/return.
func (s *Server) RecordOutwardReturn(ctx echo.Context) error {
	cardID, stepIndex, err := parseStepParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request RecordOutwardReturnRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordOutwardReturnCommand(cardID, stepIndex, request.ReturnDate)
	if err != nil {
		return badRequest(ctx, "Invalid return data: "+err.Error())
	}

	if err = s.recordOutwardReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderStageRequest is the body of PUT /orders/:orderID/stage.
type SetOrderStageRequest struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// SetOrderStage handles PUT /api/v1/orders/:orderID/stage - the manual
// stage override with its audit reason.
func (s *Server) SetOrderStage(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request SetOrderStageRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	stage, err := order.StageFromString(request.Stage)
	if err != nil {
		return badRequest(ctx, "Invalid stage")
	}

	cmd, err := commands.NewSetOrderStageCommand(orderID, stage, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid stage data: "+err.Error())
	}

	if err = s.setOrderStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// HoldOrderRequest is the body of POST /orders/:orderID/hold.
type HoldOrderRequest struct {
	Reason string `json:"reason"`
}

// HoldOrder handles POST /api/v1/orders/:orderID/hold.
func (s *Server) HoldOrder(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request HoldOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewHoldOrderCommand(orderID, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid hold data: "+err.Error())
	}

	if err = s.holdOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResumeOrder handles POST /api/v1/orders/:orderID/resume.
func (s *Server) ResumeOrder(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewResumeOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid resume data: "+err.Error())
	}

	if err = s.resumeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecomputeOrderStage handles POST /api/v1/orders/:orderID/stage/recompute.
func (s *Server) RecomputeOrderStage(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRecomputeOrderStageCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid recompute data: "+err.Error())
	}

	if err = s.recomputeStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OpenJobResponse is one claimable open job listing.
type OpenJobResponse struct {
	JobCardID string `json:"jobCardId"`
	OrderID   string `json:"orderId"`
	StepIndex int    `json:"stepIndex"`
	StepName  string `json:"stepName"`
	Quantity  int    `json:"quantity"`
}

// GetOpenJobs handles GET /api/v1/open-jobs - retrieves claimable open jobs.
func (s *Server) GetOpenJobs(ctx echo.Context) error {
	query := queries.NewGetOpenJobsQuery()

	jobs, err := s.getOpenJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve open jobs",
		})
	}

	response := make([]OpenJobResponse, len(jobs))
	for i, job := range jobs {
		response[i] = OpenJobResponse{
			JobCardID: job.JobCardID.String(),
			OrderID:   job.OrderID.String(),
			StepIndex: job.StepIndex,
			StepName:  job.StepName,
			Quantity:  job.Quantity,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StepProgressResponse is one step's execution snapshot.
type StepProgressResponse struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Processed int    `json:"processed"`
	Rejected  int    `json:"rejected"`
}

// JobCardProgressResponse is one job card's execution snapshot.
type JobCardProgressResponse struct {
	ID       string                 `json:"id"`
	Status   string                 `json:"status"`
	Quantity int                    `json:"quantity"`
	ExtraQty int                    `json:"extraQty"`
	Steps    []StepProgressResponse `json:"steps"`
}

// OrderProgressResponse is the order tracking read model.
type OrderProgressResponse struct {
	OrderID string                    `json:"orderId"`
	Stage   string                    `json:"stage"`
	Cards   []JobCardProgressResponse `json:"cards"`
}

// GetOrderProgress handles GET /api/v1/orders/:orderID/progress.
func (s *Server) GetOrderProgress(ctx echo.Context) error {
	orderID, err := parseUUIDParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderProgressQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid progress query: "+err.Error())
	}

	progress, err := s.getOrderProgressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := OrderProgressResponse{
		OrderID: progress.OrderID.String(),
		Stage:   progress.Stage,
		Cards:   make([]JobCardProgressResponse, 0, len(progress.Cards)),
	}
	for _, card := range progress.Cards {
		steps := make([]StepProgressResponse, 0, len(card.Steps))
		for _, step := range card.Steps {
			steps = append(steps, StepProgressResponse{
				Index:     step.Index,
				Name:      step.Name,
				Status:    step.Status,
				Processed: step.Processed,
				Rejected:  step.Rejected,
			})
		}
		response.Cards = append(response.Cards, JobCardProgressResponse{
			ID:       card.ID.String(),
			Status:   card.Status,
			Quantity: card.Quantity,
			ExtraQty: card.ExtraQty,
			Steps:    steps,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// parseUUIDParam extracts and parses a UUID path parameter.
func parseUUIDParam(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// parseStepParams extracts the job card id and step index path parameters.
func parseStepParams(ctx echo.Context) (kernel.UUID, int, error) {
	cardID, err := parseUUIDParam(ctx, "cardID")
	if err != nil {
		return kernel.UUID{}, 0, errors.New("invalid job card id")
	}

	stepIndex, err := strconv.Atoi(ctx.Param("stepIndex"))
	if err != nil {
		return kernel.UUID{}, 0, errors.New("invalid step index")
	}

	return cardID, stepIndex, nil
}

// parseDisposition parses the inspector's confirmed verdict.
func parseDisposition(s string) (jobcard.Disposition, error) {
	switch s {
	case "Passed":
		return jobcard.Passed, nil
	case "Failed":
		return jobcard.Failed, nil
	default:
		return jobcard.NoDisposition, errors.New("disposition must be Passed or Failed")
	}
}

// badRequest renders a 400 with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps a rejected operation onto the HTTP status that fits
// its rule class: lost races and duplicates are conflicts, execution
// rule violations are unprocessable, unknown aggregates are not found.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, jobcard.ErrAlreadyClaimed),
		errors.Is(err, jobcard.ErrAlreadyCompleted):
		code = http.StatusConflict
	case errors.Is(err, jobcard.ErrSequenceViolation),
		errors.Is(err, jobcard.ErrQuantityViolation),
		errors.Is(err, jobcard.ErrChecklistIncomplete),
		errors.Is(err, jobcard.ErrValidation),
		errors.Is(err, jobcard.ErrEmployeeNotAssigned),
		errors.Is(err, order.ErrOverAllocation),
		errors.Is(err, order.ErrHoldNotAllowed),
		errors.Is(err, commands.ErrRawMaterialShortage),
		errors.Is(err, commands.ErrEmployeeCannotWork):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, commands.ErrStepIndexIsInvalid),
		errors.Is(err, commands.ErrConfirmedResultIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

// toStepTemplates converts request overrides into domain step templates.
func toStepTemplates(overrides []StepOverride) ([]jobcard.StepTemplate, error) {
	if len(overrides) == 0 {
		return nil, nil
	}

	templates := make([]jobcard.StepTemplate, 0, len(overrides))
	for _, override := range overrides {
		stepType, err := jobcard.StepTypeFromString(override.StepType)
		if err != nil {
			return nil, err
		}
		tmpl, err := jobcard.NewStepTemplate(override.Name, stepType, override.SubSteps, override.IsOpenJob)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, nil
}
