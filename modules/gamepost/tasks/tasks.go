package tasks

import (
	"gclub-api/core/config"
	"gclub-api/core/constants"
	"gclub-api/core/worker"
	"gclub-api/modules/gamepost/service"
)

// Register wires the recruitment sweeps onto the periodic worker.
func Register(w *worker.Worker, svc *service.RecruitService) error {
	cfg := config.Get()

	if err := w.RegisterPeriodic(constants.TaskSweepPromoteDue, cfg.Recruit.PromoteDueCron, svc.PromoteDueTimeWaiting); err != nil {
		return err
	}
	return w.RegisterPeriodic(constants.TaskSweepAdvancePosts, cfg.Recruit.AdvancePostsCron, svc.AdvanceStalePosts)
}
