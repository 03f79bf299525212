package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/cyberdash/internal/scheduler"
	"github.com/wonny/cyberdash/internal/scheduler/jobs"
	"github.com/wonny/cyberdash/pkg/config"
	"github.com/wonny/cyberdash/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the refresh scheduler",
	Long: `Starts the scheduler daemon or manages its jobs.

Registered jobs:
  score_refresh - full pipeline refresh, weekdays after US market close

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - run a job immediately
  status  - show job execution history

Example:
  go run ./cmd/cyberdash scheduler start
  go run ./cmd/cyberdash scheduler run score_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		Long: `Starts the scheduler and schedules all registered jobs.

The refresh schedule comes from REFRESH_SCHEDULE (cron with seconds,
default "0 30 22 * * 1-5"). Stop with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show job execution history",
		RunE:  showJobStatus,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== cyberdash Scheduler ===")

	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	if err := sched.RunJobAndWait(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	fmt.Println("Job completed")
	return nil
}

func showJobStatus(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	fmt.Println("Job history:")
	fmt.Println()

	for _, jobName := range sched.GetAllJobs() {
		history, err := sched.GetJobHistory(jobName)
		if err != nil {
			continue
		}

		fmt.Printf("📊 %s\n", jobName)
		fmt.Printf("   Total Runs: %d\n", len(history.Results))
		fmt.Printf("   Success Rate: %.1f%%\n", history.SuccessRate()*100)

		if result, ok := history.LastResult(); ok {
			fmt.Printf("   Last Run: %s (%s)\n",
				result.StartTime.Format("2006-01-02 15:04:05"), result.Duration)
			if !result.Success {
				fmt.Printf("   Last Error: %s\n", result.Error)
			}
		}

		fmt.Println()
	}

	return nil
}

func initScheduler() (*scheduler.Scheduler, func(), error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Build the refresh service
	service, cleanup, err := initService(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	// 4. Create scheduler and register jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewRefreshJob(service, cfg.RefreshSchedule, log)); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("register refresh job: %w", err)
	}

	return sched, cleanup, nil
}
