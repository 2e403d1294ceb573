package cmd

import (
	"log/slog"
	"time"

	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/postgres/employeerepo"
	"production/internal/adapters/out/postgres/stockrepo"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/ports"
	"production/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	directory   *employeerepo.GormEmployeeDirectory
	stockLedger *stockrepo.GormStockLedger
	notifier    ports.Notifier
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, notifier ports.Notifier) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:   employeerepo.NewGormEmployeeDirectory(gormDB),
		stockLedger: stockrepo.NewGormStockLedger(gormDB),
		notifier:    notifier,
	}
}

func (c *CompositionRoot) CreatePlanBatchCommandHandler() commands.PlanBatchCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlanBatchCommandHandler(f, c.stockLedger, c.notifier)
}

func (c *CompositionRoot) CreateSplitJobCardCommandHandler() commands.SplitJobCardCommandHandler {
	return commands.NewSplitJobCardCommandHandler(c.jobCardUoWFactory())
}

func (c *CompositionRoot) CreateStartStepCommandHandler() commands.StartStepCommandHandler {
	return commands.NewStartStepCommandHandler(c.jobCardUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateCompleteStepCommandHandler() commands.CompleteStepCommandHandler {
	return commands.NewCompleteStepCommandHandler(c.jobCardUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateToggleSubStepCommandHandler() commands.ToggleSubStepCommandHandler {
	return commands.NewToggleSubStepCommandHandler(c.jobCardUoWFactory())
}

func (c *CompositionRoot) CreateAcceptOpenJobCommandHandler() commands.AcceptOpenJobCommandHandler {
	return commands.NewAcceptOpenJobCommandHandler(c.jobCardUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateAssignStepCommandHandler() commands.AssignStepCommandHandler {
	return commands.NewAssignStepCommandHandler(c.jobCardUoWFactory(), c.directory)
}

func (c *CompositionRoot) CreateSubmitFQCCommandHandler() commands.SubmitFQCCommandHandler {
	return commands.NewSubmitFQCCommandHandler(c.jobCardUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRecordOutwardSentCommandHandler() commands.RecordOutwardSentCommandHandler {
	return commands.NewRecordOutwardSentCommandHandler(c.jobCardUoWFactory())
}

func (c *CompositionRoot) CreateRecordOutwardReturnCommandHandler() commands.RecordOutwardReturnCommandHandler {
	return commands.NewRecordOutwardReturnCommandHandler(c.jobCardUoWFactory())
}

func (c *CompositionRoot) CreateSetOrderStageCommandHandler() commands.SetOrderStageCommandHandler {
	return commands.NewSetOrderStageCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateHoldOrderCommandHandler() commands.HoldOrderCommandHandler {
	return commands.NewHoldOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateResumeOrderCommandHandler() commands.ResumeOrderCommandHandler {
	return commands.NewResumeOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRecomputeOrderStageCommandHandler() commands.RecomputeOrderStageCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecomputeOrderStageCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOpenJobsQueryHandler() queries.GetOpenJobsQueryHandler {
	return queries.NewGetOpenJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	return queries.NewGetOrderProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOutwardStepsQueryHandler() queries.GetOverdueOutwardStepsQueryHandler {
	return queries.NewGetOverdueOutwardStepsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(outwardOverdueAfter time.Duration, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetOpenJobsQueryHandler(),
		c.CreateGetOverdueOutwardStepsQueryHandler(),
		c.notifier,
		outwardOverdueAfter,
		logger,
	)
}

func (c *CompositionRoot) jobCardUoWFactory() commands.JobCardUoWFactory {
	return FuncJobCardUoWFactory(func() commands.JobCardUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncJobCardUoWFactory func() commands.JobCardUoW

func (f FuncJobCardUoWFactory) Create() commands.JobCardUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
