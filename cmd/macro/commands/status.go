package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "현재 시그널/캘린더 상태 조회",
	Long: `디스크에 기록된 마지막 시그널 스냅샷과 캘린더 상태를 표시합니다.

표시 정보:
- 마지막 스냅샷 시각과 신선도
- 종목별 시그널과 총점
- 임팩트 윈도우 플래그
- 캘린더 이벤트 수와 다음 고임팩트 이벤트

Example:
  go run ./cmd/macro status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := initApp()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	now := time.Now().UTC()

	PrintDoubleSeparator()
	fmt.Println("  macrosig Status")
	PrintSeparator()

	snap, err := a.signals.Read()
	if err != nil {
		PrintWarning(fmt.Sprintf("No signal snapshot available: %v", err))
	} else {
		age := now.Sub(snap.Timestamp).Round(time.Second)
		PrintKeyValue("snapshot_at", fmt.Sprintf("%s (%s ago)", snap.Timestamp.Format("2006-01-02 15:04:05"), age), 14)
		for _, key := range a.rules.Keys() {
			sig, _ := snap.Get(key)
			PrintKeyValue(key, signalLabel(int(sig)), 14)
		}
		PrintKeyValue("total_score", fmt.Sprintf("%d", snap.TotalScore), 14)
		PrintKeyValue("high_impact", fmt.Sprintf("%t", snap.HighImpact), 14)
	}

	PrintSeparator()

	events, err := a.calendar.Read()
	if err != nil {
		PrintWarning(fmt.Sprintf("Calendar unreadable: %v", err))
		return nil
	}
	if events == nil {
		PrintInfo("No calendar file yet, run: go run ./cmd/macro calendar")
		return nil
	}

	upcoming := 0
	var next *time.Time
	var nextTitle string
	for _, ev := range events {
		if ev.Time.After(now) {
			upcoming++
			if next == nil || ev.Time.Before(*next) {
				t := ev.Time
				next = &t
				nextTitle = ev.Title
			}
		}
	}

	PrintKeyValue("events", fmt.Sprintf("%d total, %d upcoming", len(events), upcoming), 14)
	if next != nil {
		PrintKeyValue("next_event", fmt.Sprintf("%s (%s)", nextTitle, next.Format("2006-01-02 15:04")), 14)
	}

	return nil
}
