package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/macrosig/internal/scheduler/jobs"
)

// calendarCmd represents the calendar command
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "경제 캘린더 1회 갱신",
	Long: `경제 캘린더를 1회 갱신하고 종료합니다.

이 명령어는:
- 설정된 피드 소스를 순서대로 시도 (첫 성공 채택)
- 통화/임팩트/만료 필터링 및 중복 제거
- 고정일 미국 공휴일 병합 (설정 시)
- CSV 파일로 전체 교체 기록

모든 소스가 실패하면 기존 파일을 유지합니다.

Example:
  go run ./cmd/macro calendar`,
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	PrintDoubleSeparator()
	fmt.Println("  Economic Calendar Update")
	PrintSeparator()

	a, err := initApp()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	start := time.Now()

	n, err := a.calendarJob.Execute(context.Background(), time.Now().UTC())
	if err != nil {
		if errors.Is(err, jobs.ErrFetchFailed) {
			PrintWarning("All calendar sources unavailable, existing file kept")
			return nil
		}
		PrintError("Calendar update failed")
		return err
	}

	PrintSeparator()
	PrintSuccess(fmt.Sprintf("%d events written to %s in %.2fs", n, a.cfg.CalendarPath, time.Since(start).Seconds()))

	return nil
}
